package model

import "time"

// Balance is an account balance as reported by the banking collaborator.
type Balance struct {
	Currency string
	Amount   float64
}

// Transaction is a single bank transaction used for spend analysis.
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	Category    string
	Currency    string
	Amount      float64
}
