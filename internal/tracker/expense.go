// Package tracker holds the per-session feature state containers and their
// derived metrics. Entities live in memory for the lifetime of a session;
// derived values are recomputed from current state on every read.
package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// ExpenseTracker owns the session's recorded expenses.
type ExpenseTracker struct {
	expenses []model.Expense
	mu       sync.Mutex
}

// NewExpenseTracker creates an empty expense tracker.
func NewExpenseTracker() *ExpenseTracker {
	return &ExpenseTracker{}
}

// Add validates and records a new expense, assigning its id and date.
// Invalid input leaves the tracker unchanged.
func (t *ExpenseTracker) Add(amount float64, category, description string) (model.Expense, error) {
	expense := model.Expense{
		ID:          uuid.NewString(),
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        time.Now(),
	}
	if err := expense.Validate(); err != nil {
		return model.Expense{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.expenses = append(t.expenses, expense)
	return expense, nil
}

// Reset clears all recorded expenses.
func (t *ExpenseTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expenses = nil
}

// Expenses returns a copy of the recorded expenses in insertion order.
func (t *ExpenseTracker) Expenses() []model.Expense {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Expense, len(t.expenses))
	copy(out, t.expenses)
	return out
}

// Total returns the sum of all expense amounts.
func (t *ExpenseTracker) Total() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total float64
	for _, e := range t.expenses {
		total += e.Amount
	}
	return total
}

// CategoryTotals returns per-category expense sums. Categories with no
// expenses are absent from the result.
func (t *ExpenseTracker) CategoryTotals() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	totals := make(map[string]float64)
	for _, e := range t.expenses {
		totals[e.Category] += e.Amount
	}
	return totals
}
