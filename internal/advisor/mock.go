package advisor

import (
	"context"

	"github.com/finbuzz/finbuzz/internal/model"
)

// MockBank is a test double for the BankClient interface.
type MockBank struct {
	Balance         model.Balance
	Transactions    []model.Transaction
	BalanceErr      error
	TransactionsErr error
}

// GetBalance returns the configured balance or error.
func (m *MockBank) GetBalance(_ context.Context) (model.Balance, error) {
	if m.BalanceErr != nil {
		return model.Balance{}, m.BalanceErr
	}
	return m.Balance, nil
}

// GetTransactions returns the configured transactions or error.
func (m *MockBank) GetTransactions(_ context.Context) ([]model.Transaction, error) {
	if m.TransactionsErr != nil {
		return nil, m.TransactionsErr
	}
	return m.Transactions, nil
}
