// Package model defines the domain records shared across the application.
package model

import (
	"fmt"
	"time"
)

// ExpenseCategories is the fixed set of categories an expense may carry.
var ExpenseCategories = []string{
	"Housing",
	"Transportation",
	"Food",
	"Utilities",
	"Healthcare",
	"Entertainment",
	"Shopping",
	"Other",
}

// Expense represents a single recorded expense. Expenses are immutable after
// creation; a tracker reset is the only way to remove them.
type Expense struct {
	Date        time.Time
	ID          string
	Category    string
	Description string
	Amount      float64
}

// ValidCategory reports whether category is in the fixed category set.
func ValidCategory(category string) bool {
	for _, c := range ExpenseCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Validate checks the expense invariants.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive, got %.2f", e.Amount)
	}
	if !ValidCategory(e.Category) {
		return fmt.Errorf("unknown expense category: %q", e.Category)
	}
	if e.Description == "" {
		return fmt.Errorf("expense description is required")
	}
	return nil
}
