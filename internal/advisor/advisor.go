// Package advisor turns a user question plus live banking data into a
// prompt for a text-generation provider and returns the generated advice.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/finbuzz/finbuzz/internal/llm"
	"github.com/finbuzz/finbuzz/internal/model"
)

// BankClient provides the account data the advisor reasons over.
type BankClient interface {
	GetBalance(ctx context.Context) (model.Balance, error)
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
}

// Advisory thresholds for the rule-based notes added to the prompt context.
const (
	// LowBalanceThreshold triggers the low-balance warning.
	LowBalanceThreshold = 1000.0
	// HighAverageThreshold triggers the high-average-transaction warning.
	HighAverageThreshold = 100.0
)

// ApologyPrefix starts every response produced through the degraded path,
// where financial data could not be fetched.
const ApologyPrefix = "I apologize, but I'm having trouble accessing your financial data at the moment. Here's some general advice based on your question:\n\n"

const systemPrompt = "You are an AI financial advisor. Provide specific, actionable advice considering the user's current financial situation."

// Generator composes advice prompts and forwards them to an LLM.
type Generator struct {
	bank   BankClient
	client llm.Client
	logger *slog.Logger
}

// New creates an advice generator.
func New(bank BankClient, client llm.Client, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{bank: bank, client: client, logger: logger}
}

// Advise answers a free-text question using the user's balance and recent
// transactions as context. If gathering data or the contextual generation
// fails at any stage, it falls back to answering the raw question alone,
// prefixed with an apology; an error from that fallback propagates.
func (g *Generator) Advise(ctx context.Context, query string) (string, error) {
	text, err := g.adviseWithContext(ctx, query)
	if err == nil {
		return text, nil
	}

	g.logger.Warn("contextual advice failed, falling back to plain query", "error", err)

	fallback, err := g.client.Generate(ctx, query)
	if err != nil {
		return "", fmt.Errorf("advice fallback failed: %w", err)
	}
	return ApologyPrefix + fallback, nil
}

func (g *Generator) adviseWithContext(ctx context.Context, query string) (string, error) {
	balance, transactions, err := g.fetchFinancials(ctx)
	if err != nil {
		return "", err
	}

	prompt := buildPrompt(balance, transactions, query)

	text, err := g.client.GenerateWithSystem(ctx, systemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("advice generation failed: %w", err)
	}
	return text, nil
}

// fetchFinancials fetches balance and transactions concurrently. The two
// calls are independent; both are awaited before composing the prompt.
func (g *Generator) fetchFinancials(ctx context.Context) (model.Balance, []model.Transaction, error) {
	var (
		wg           sync.WaitGroup
		balance      model.Balance
		transactions []model.Transaction
		balanceErr   error
		txErr        error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		balance, balanceErr = g.bank.GetBalance(ctx)
	}()
	go func() {
		defer wg.Done()
		transactions, txErr = g.bank.GetTransactions(ctx)
	}()
	wg.Wait()

	if balanceErr != nil {
		return model.Balance{}, nil, fmt.Errorf("balance fetch failed: %w", balanceErr)
	}
	if txErr != nil {
		return model.Balance{}, nil, fmt.Errorf("transaction fetch failed: %w", txErr)
	}

	return balance, transactions, nil
}

func buildPrompt(balance model.Balance, transactions []model.Transaction, query string) string {
	var sb strings.Builder

	sb.WriteString("As an AI financial advisor, please provide advice based on the following context and user question:\n\n")
	sb.WriteString("Financial Context:\n")
	fmt.Fprintf(&sb, "Current balance: %.2f %s\n", balance.Amount, balance.Currency)

	if len(transactions) > 0 {
		sb.WriteString(AnalyzeTransactions(transactions))
	}
	sb.WriteString(advisoryNotes(balance, transactions))

	sb.WriteString("\nUser Question:\n")
	sb.WriteString(query)
	sb.WriteString("\n\nPlease provide specific, actionable advice considering the user's current financial situation.")

	return sb.String()
}

// AnalyzeTransactions renders a per-category spend breakdown.
func AnalyzeTransactions(transactions []model.Transaction) string {
	totals := make(map[string]float64)
	for _, tx := range transactions {
		category := tx.Category
		if category == "" {
			category = "Uncategorized"
		}
		totals[category] += tx.Amount
	}

	categories := make([]string, 0, len(totals))
	for category := range totals {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	sb.WriteString("Based on your recent transactions:\n\n")
	for _, category := range categories {
		fmt.Fprintf(&sb, "- %s: $%.2f\n", category, totals[category])
	}
	return sb.String()
}

// advisoryNotes applies the fixed rule set to balance and spending.
func advisoryNotes(balance model.Balance, transactions []model.Transaction) string {
	var sb strings.Builder

	if balance.Amount < LowBalanceThreshold {
		sb.WriteString("Warning: the balance is getting low. Consider reducing non-essential expenses.\n")
	}

	if len(transactions) > 0 {
		var total float64
		for _, tx := range transactions {
			total += tx.Amount
		}
		if total/float64(len(transactions)) > HighAverageThreshold {
			sb.WriteString("Note: the average transaction is relatively high. Look for opportunities to save on regular purchases.\n")
		}
	}

	return sb.String()
}
