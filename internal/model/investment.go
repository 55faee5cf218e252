package model

import (
	"fmt"
	"time"
)

// InvestmentTypes is the fixed set of investment types.
var InvestmentTypes = []string{
	"Savings",
	"Stocks",
	"Mutual Funds",
	"Bonds",
	"Crypto",
}

// Investment represents a single investment position. Immutable after
// creation; removed only by a portfolio reset.
type Investment struct {
	Date   time.Time
	ID     string
	Type   string
	Amount float64
}

// ValidInvestmentType reports whether t is in the fixed type set.
func ValidInvestmentType(t string) bool {
	for _, it := range InvestmentTypes {
		if it == t {
			return true
		}
	}
	return false
}

// Validate checks the investment invariants.
func (i *Investment) Validate() error {
	if i.Amount <= 0 {
		return fmt.Errorf("investment amount must be positive, got %.2f", i.Amount)
	}
	if !ValidInvestmentType(i.Type) {
		return fmt.Errorf("unknown investment type: %q", i.Type)
	}
	return nil
}
