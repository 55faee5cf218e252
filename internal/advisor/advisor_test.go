package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbuzz/finbuzz/internal/llm"
	"github.com/finbuzz/finbuzz/internal/model"
)

func TestAdviseWithContext(t *testing.T) {
	bank := &MockBank{
		Balance: model.Balance{Amount: 2500, Currency: "USD"},
		Transactions: []model.Transaction{
			{Description: "Groceries", Category: "Food", Amount: 150},
			{Description: "Gas", Category: "Transport", Amount: 45},
		},
	}
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			return "contextual advice", nil
		},
	}
	g := New(bank, client, nil)

	text, err := g.Advise(context.Background(), "how can I save more?")

	require.NoError(t, err)
	assert.Equal(t, "contextual advice", text, "successful contextual advice is returned verbatim")

	require.Len(t, client.Prompts(), 1)
	prompt := client.Prompts()[0]
	assert.Contains(t, prompt, "Current balance: 2500.00 USD")
	assert.Contains(t, prompt, "- Food: $150.00")
	assert.Contains(t, prompt, "how can I save more?")
}

func TestAdviseFallsBackWhenBankFails(t *testing.T) {
	bank := &MockBank{BalanceErr: errors.New("bank down")}
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			return "general advice", nil
		},
	}
	g := New(bank, client, nil)

	text, err := g.Advise(context.Background(), "budget tips?")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, ApologyPrefix))
	assert.True(t, strings.HasSuffix(text, "general advice"))

	// The fallback prompt is the raw question with no financial context.
	require.Len(t, client.Prompts(), 1)
	assert.Equal(t, "budget tips?", client.Prompts()[0])
}

func TestAdviseFallsBackWhenGenerationFails(t *testing.T) {
	bank := &MockBank{Balance: model.Balance{Amount: 100, Currency: "USD"}}
	calls := 0
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, prompt string) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("model overloaded")
			}
			return "plain advice", nil
		},
	}
	g := New(bank, client, nil)

	text, err := g.Advise(context.Background(), "help")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, ApologyPrefix))
	assert.Equal(t, 2, calls)
}

func TestAdvisePropagatesDoubleFailure(t *testing.T) {
	bank := &MockBank{TransactionsErr: errors.New("bank down")}
	client := &llm.MockClient{
		GenerateFunc: func(context.Context, string) (string, error) {
			return "", errors.New("model down")
		},
	}
	g := New(bank, client, nil)

	_, err := g.Advise(context.Background(), "help")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "advice fallback failed")
}

func TestBuildPromptAdvisoryNotes(t *testing.T) {
	tests := []struct {
		name         string
		balance      model.Balance
		transactions []model.Transaction
		wantLow      bool
		wantHigh     bool
	}{
		{
			name:    "low balance warns",
			balance: model.Balance{Amount: 999.99, Currency: "USD"},
			wantLow: true,
		},
		{
			name:    "threshold balance does not warn",
			balance: model.Balance{Amount: 1000, Currency: "USD"},
		},
		{
			name:    "high average transaction warns",
			balance: model.Balance{Amount: 5000, Currency: "USD"},
			transactions: []model.Transaction{
				{Category: "Shopping", Amount: 150},
				{Category: "Shopping", Amount: 90},
			},
			wantHigh: true,
		},
		{
			name:    "modest average does not warn",
			balance: model.Balance{Amount: 5000, Currency: "USD"},
			transactions: []model.Transaction{
				{Category: "Food", Amount: 20},
				{Category: "Food", Amount: 30},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildPrompt(tt.balance, tt.transactions, "q")

			assert.Equal(t, tt.wantLow, strings.Contains(prompt, "balance is getting low"))
			assert.Equal(t, tt.wantHigh, strings.Contains(prompt, "average transaction is relatively high"))
		})
	}
}

func TestAnalyzeTransactions(t *testing.T) {
	out := AnalyzeTransactions([]model.Transaction{
		{Category: "Food", Amount: 100},
		{Category: "", Amount: 25},
		{Category: "Bills", Amount: 200},
		{Category: "Food", Amount: 50},
	})

	// Categories render sorted, with blanks folded into Uncategorized.
	foodIdx := strings.Index(out, "- Food: $150.00")
	billsIdx := strings.Index(out, "- Bills: $200.00")
	uncatIdx := strings.Index(out, "- Uncategorized: $25.00")
	require.GreaterOrEqual(t, foodIdx, 0)
	require.GreaterOrEqual(t, billsIdx, 0)
	require.GreaterOrEqual(t, uncatIdx, 0)
	assert.Less(t, billsIdx, foodIdx)
	assert.Less(t, foodIdx, uncatIdx)
}
