package openbank

import (
	"context"
	"time"

	"github.com/finbuzz/finbuzz/internal/model"
)

// DemoClient serves a fixed demo dataset. It is used when no sandbox
// credentials are configured, so the advisor flow works out of the box.
type DemoClient struct{}

// NewDemoClient creates a demo banking client.
func NewDemoClient() *DemoClient {
	return &DemoClient{}
}

// GetBalance returns the fixed demo balance.
func (c *DemoClient) GetBalance(_ context.Context) (model.Balance, error) {
	return model.Balance{Amount: 5000.00, Currency: "USD"}, nil
}

// GetTransactions returns the fixed demo transaction set.
func (c *DemoClient) GetTransactions(_ context.Context) ([]model.Transaction, error) {
	now := time.Now()
	return []model.Transaction{
		{ID: "1", Amount: 150.00, Currency: "USD", Description: "Grocery Shopping", Date: now, Category: "Food"},
		{ID: "2", Amount: 45.00, Currency: "USD", Description: "Transportation", Date: now, Category: "Transport"},
		{ID: "3", Amount: 200.00, Currency: "USD", Description: "Utilities", Date: now, Category: "Bills"},
	}, nil
}
