package openbank

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	accountsJSON = `{"accounts": [{
		"id": "acc-1",
		"bank_id": "bank-x",
		"label": "Current",
		"balance": {"currency": "USD", "amount": "-2500.75"}
	}]}`

	transactionsJSON = `{"transactions": [
		{"id": "tx-1", "details": {
			"type": "Food",
			"description": "Groceries",
			"posted": "2024-03-01T10:00:00Z",
			"value": {"currency": "USD", "amount": "-150.00"}
		}},
		{"id": "tx-2", "details": {
			"type": "Transport",
			"description": "Fuel",
			"posted": "2024-03-02T10:00:00Z",
			"value": {"currency": "USD", "amount": "-45.50"}
		}}
	]}`
)

// newSandbox runs a fake OBP endpoint serving DirectLogin, accounts, and
// transactions. logins counts token exchanges.
func newSandbox(t *testing.T, logins *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/my/logins/direct":
			auth := r.Header.Get("Authorization")
			assert.Contains(t, auth, `DirectLogin username="alice"`)
			assert.Contains(t, auth, `consumer_key="ck-123"`)
			logins.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
		case "/obp/v4.0.0/my/accounts":
			assert.Equal(t, `DirectLogin token="tok-abc"`, r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(accountsJSON))
		case "/obp/v4.0.0/my/banks/bank-x/accounts/acc-1/transactions":
			_, _ = w.Write([]byte(transactionsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(Config{
		BaseURL:     baseURL,
		Username:    "alice",
		Password:    "secret",
		ConsumerKey: "ck-123",
	})
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "https://example.com"})
	require.Error(t, err)

	_, err = NewClient(Config{Username: "u", Password: "p", ConsumerKey: "k"})
	require.Error(t, err)
}

func TestGetBalance(t *testing.T) {
	var logins atomic.Int32
	srv := newSandbox(t, &logins)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	balance, err := client.GetBalance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "USD", balance.Currency)
	assert.InDelta(t, 2500.75, balance.Amount, 0.001, "amounts come back as magnitudes")
}

func TestGetTransactions(t *testing.T) {
	var logins atomic.Int32
	srv := newSandbox(t, &logins)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	transactions, err := client.GetTransactions(context.Background())

	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "tx-1", transactions[0].ID)
	assert.Equal(t, "Groceries", transactions[0].Description)
	assert.Equal(t, "Food", transactions[0].Category)
	assert.InDelta(t, 150.00, transactions[0].Amount, 0.001)
	assert.InDelta(t, 45.50, transactions[1].Amount, 0.001)
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	var logins atomic.Int32
	srv := newSandbox(t, &logins)
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetBalance(context.Background())
	require.NoError(t, err)
	_, err = client.GetTransactions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), logins.Load(), "one DirectLogin exchange serves all calls")
}

func TestUnauthorizedInvalidatesToken(t *testing.T) {
	var logins atomic.Int32
	var accountCalls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/my/logins/direct":
			logins.Add(1)
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
		case "/obp/v4.0.0/my/accounts":
			if accountCalls.Add(1) == 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = w.Write([]byte(accountsJSON))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetBalance(context.Background())
	require.Error(t, err)

	// The stale token was dropped, so the retry logs in again and succeeds.
	_, err = client.GetBalance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), logins.Load())
}

func TestGetBalanceNoAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/my/logins/direct":
			_ = json.NewEncoder(w).Encode(map[string]string{"token": "tok-abc"})
		default:
			_, _ = w.Write([]byte(`{"accounts": []}`))
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GetBalance(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no accounts")
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{input: "100.50", want: 100.50},
		{input: "-42.25", want: 42.25},
		{input: "0", want: 0},
		{input: "not-a-number", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestDemoClient(t *testing.T) {
	demo := NewDemoClient()

	balance, err := demo.GetBalance(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 5000.00, balance.Amount, 0.001)
	assert.Equal(t, "USD", balance.Currency)

	transactions, err := demo.GetTransactions(context.Background())
	require.NoError(t, err)
	assert.Len(t, transactions, 3)
}
