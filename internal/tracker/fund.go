package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// Emergency fund seed defaults.
const (
	DefaultFundCurrent      = 5000.0
	DefaultFundTarget       = 15000.0
	DefaultFundContribution = 500.0
)

// FundTracker owns the session's emergency fund.
type FundTracker struct {
	fund model.EmergencyFund
	mu   sync.Mutex
}

// NewFundTracker creates a fund tracker with the seed defaults.
func NewFundTracker() *FundTracker {
	return &FundTracker{
		fund: model.EmergencyFund{
			CurrentAmount:       DefaultFundCurrent,
			TargetAmount:        DefaultFundTarget,
			MonthlyContribution: DefaultFundContribution,
			LastContribution:    time.Now(),
		},
	}
}

// Fund returns the current fund state.
func (t *FundTracker) Fund() model.EmergencyFund {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fund
}

// AddContribution adds one monthly contribution and stamps the time.
func (t *FundTracker) AddContribution() model.EmergencyFund {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fund.CurrentAmount += t.fund.MonthlyContribution
	t.fund.LastContribution = time.Now()
	return t.fund
}

// SetTarget updates the fund's target amount.
func (t *FundTracker) SetTarget(target float64) error {
	if target <= 0 {
		return fmt.Errorf("%w: fund target must be positive, got %.2f", common.ErrInvalidInput, target)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fund.TargetAmount = target
	return nil
}

// SetMonthlyContribution updates the fixed monthly contribution.
func (t *FundTracker) SetMonthlyContribution(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: monthly contribution must be positive, got %.2f", common.ErrInvalidInput, amount)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fund.MonthlyContribution = amount
	return nil
}

// Reset zeroes the current amount, keeping the target and contribution at
// their defaults.
func (t *FundTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fund = model.EmergencyFund{
		CurrentAmount:       0,
		TargetAmount:        DefaultFundTarget,
		MonthlyContribution: DefaultFundContribution,
		LastContribution:    time.Now(),
	}
}
