package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// Portfolio owns the session's investment positions.
type Portfolio struct {
	investments []model.Investment
	mu          sync.Mutex
}

// NewPortfolio creates an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{}
}

// Add validates and records a new investment.
func (p *Portfolio) Add(investmentType string, amount float64) (model.Investment, error) {
	investment := model.Investment{
		ID:     uuid.NewString(),
		Type:   investmentType,
		Amount: amount,
		Date:   time.Now(),
	}
	if err := investment.Validate(); err != nil {
		return model.Investment{}, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.investments = append(p.investments, investment)
	return investment, nil
}

// Reset removes all positions.
func (p *Portfolio) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.investments = nil
}

// Investments returns a copy of the positions in insertion order.
func (p *Portfolio) Investments() []model.Investment {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Investment, len(p.investments))
	copy(out, p.investments)
	return out
}

// Total returns the sum of all invested amounts.
func (p *Portfolio) Total() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	var total float64
	for _, i := range p.investments {
		total += i.Amount
	}
	return total
}

// TypeTotals returns per-type invested sums.
func (p *Portfolio) TypeTotals() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	totals := make(map[string]float64)
	for _, i := range p.investments {
		totals[i.Type] += i.Amount
	}
	return totals
}
