// Package openbank is a client for the Open Bank Project sandbox API.
//
// Authentication uses OBP DirectLogin: a username/password/consumer-key
// exchange yields a bearer token used on subsequent calls. The live
// responses are parsed and returned as-is; demo data only exists in the
// separate DemoClient.
package openbank

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

const apiVersion = "v4.0.0"

// Config holds the sandbox connection settings.
type Config struct {
	BaseURL     string
	Username    string
	Password    string
	ConsumerKey string
}

// Client talks to the Open Bank Project sandbox.
type Client struct {
	httpClient *http.Client
	cfg        Config
	mu         sync.Mutex
	token      string
}

// OBP wire types. Amounts arrive as decimal strings.
type accountsResponse struct {
	Accounts []account `json:"accounts"`
}

type account struct {
	ID      string `json:"id"`
	BankID  string `json:"bank_id"`
	Label   string `json:"label"`
	Balance struct {
		Currency string `json:"currency"`
		Amount   string `json:"amount"`
	} `json:"balance"`
}

type transactionsResponse struct {
	Transactions []transaction `json:"transactions"`
}

type transaction struct {
	ID      string `json:"id"`
	Details struct {
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Posted      time.Time `json:"posted"`
		Value       struct {
			Currency string `json:"currency"`
			Amount   string `json:"amount"`
		} `json:"value"`
	} `json:"details"`
}

// NewClient creates a sandbox client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("openbank base URL is required: %w", common.ErrMissingConfig)
	}
	if cfg.Username == "" || cfg.Password == "" || cfg.ConsumerKey == "" {
		return nil, fmt.Errorf("openbank DirectLogin credentials are required: %w", common.ErrMissingConfig)
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// directLogin exchanges the configured credentials for a bearer token. The
// token is cached until a call comes back 401.
func (c *Client) directLogin(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" {
		return c.token, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/my/logins/direct", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf(
		`DirectLogin username=%q,password=%q,consumer_key=%q`,
		c.cfg.Username, c.cfg.Password, c.cfg.ConsumerKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrBankUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("DirectLogin failed: %d - %s", resp.StatusCode, string(body))
	}

	var tokenResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrBadResponse, err)
	}
	if tokenResp.Token == "" {
		return "", fmt.Errorf("%w: empty DirectLogin token", common.ErrBadResponse)
	}

	c.token = tokenResp.Token
	return c.token, nil
}

// invalidateToken drops the cached token so the next call re-authenticates.
func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	token, err := c.directLogin(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("DirectLogin token=%q", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrBankUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidateToken()
		return fmt.Errorf("openbank API error: %d (token expired)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("openbank API error: %d - %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", common.ErrBadResponse, err)
	}
	return nil
}

// GetBalance returns the balance of the first account.
func (c *Client) GetBalance(ctx context.Context) (model.Balance, error) {
	var accounts accountsResponse
	if err := c.get(ctx, "/obp/"+apiVersion+"/my/accounts", &accounts); err != nil {
		return model.Balance{}, err
	}
	if len(accounts.Accounts) == 0 {
		return model.Balance{}, fmt.Errorf("%w: no accounts returned", common.ErrBadResponse)
	}

	acct := accounts.Accounts[0]
	amount, err := parseAmount(acct.Balance.Amount)
	if err != nil {
		return model.Balance{}, fmt.Errorf("failed to parse balance %q: %w", acct.Balance.Amount, err)
	}

	return model.Balance{
		Amount:   amount,
		Currency: acct.Balance.Currency,
	}, nil
}

// GetTransactions returns the recent transactions of the first account.
func (c *Client) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	var accounts accountsResponse
	if err := c.get(ctx, "/obp/"+apiVersion+"/my/accounts", &accounts); err != nil {
		return nil, err
	}
	if len(accounts.Accounts) == 0 {
		return nil, fmt.Errorf("%w: no accounts returned", common.ErrBadResponse)
	}

	acct := accounts.Accounts[0]
	path := fmt.Sprintf("/obp/%s/my/banks/%s/accounts/%s/transactions", apiVersion, acct.BankID, acct.ID)

	var txResp transactionsResponse
	if err := c.get(ctx, path, &txResp); err != nil {
		return nil, err
	}

	slog.Debug("Fetched openbank transactions",
		"account", acct.ID,
		"count", len(txResp.Transactions))

	transactions := make([]model.Transaction, 0, len(txResp.Transactions))
	for _, tx := range txResp.Transactions {
		amount, err := parseAmount(tx.Details.Value.Amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount %q: %w", tx.Details.Value.Amount, err)
		}

		transactions = append(transactions, model.Transaction{
			ID:          tx.ID,
			Amount:      amount,
			Currency:    tx.Details.Value.Currency,
			Description: tx.Details.Description,
			Date:        tx.Details.Posted,
			Category:    tx.Details.Type,
		})
	}

	return transactions, nil
}

// parseAmount converts an OBP decimal string to float64. Debits arrive
// negative; spend analysis works on magnitudes.
func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Abs().InexactFloat64(), nil
}
