package profile

import (
	"context"
	"sync"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/model"
)

// MockAuthenticator is a test double for Authenticator.
type MockAuthenticator struct {
	CreateUserFunc        func(ctx context.Context, email, password string) (Identity, error)
	SignInFunc            func(ctx context.Context, email, password string) (Identity, error)
	UpdateDisplayNameFunc func(ctx context.Context, uid, displayName string) error

	mu                 sync.Mutex
	displayNameUpdates []string
}

func (m *MockAuthenticator) CreateUser(ctx context.Context, email, password string) (Identity, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, email, password)
	}
	return Identity{UID: "mock-uid", Email: email}, nil
}

func (m *MockAuthenticator) SignIn(ctx context.Context, email, password string) (Identity, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return Identity{UID: "mock-uid", Email: email}, nil
}

func (m *MockAuthenticator) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	m.mu.Lock()
	m.displayNameUpdates = append(m.displayNameUpdates, displayName)
	m.mu.Unlock()
	if m.UpdateDisplayNameFunc != nil {
		return m.UpdateDisplayNameFunc(ctx, uid, displayName)
	}
	return nil
}

// DisplayNameUpdates returns the display names passed to UpdateDisplayName.
func (m *MockAuthenticator) DisplayNameUpdates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.displayNameUpdates...)
}

// MockStore is an in-memory Store with optional error injection.
type MockStore struct {
	GetErr error
	PutErr error

	mu       sync.Mutex
	profiles map[string]model.UserProfile
	puts     int
}

func NewMockStore() *MockStore {
	return &MockStore{profiles: make(map[string]model.UserProfile)}
}

func (m *MockStore) Get(ctx context.Context, uid string) (model.UserProfile, error) {
	if m.GetErr != nil {
		return model.UserProfile{}, m.GetErr
	}
	if err := ctx.Err(); err != nil {
		return model.UserProfile{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[uid]
	if !ok {
		return model.UserProfile{}, common.ErrNotFound
	}
	return p, nil
}

func (m *MockStore) Put(ctx context.Context, p model.UserProfile) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UID] = p
	m.puts++
	return nil
}

// Puts returns the number of successful Put calls.
func (m *MockStore) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}

// Seed stores p directly without counting it as a Put.
func (m *MockStore) Seed(p model.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.UID] = p
}
