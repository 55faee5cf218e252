// Package session bundles the per-user application state: the signed-in
// profile, the in-memory trackers, and the chat orchestrator. A session is
// created at sign-in and discarded at sign-out; trackers start empty except
// for the emergency fund, which carries its standard seed values.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/finbuzz/finbuzz/internal/chat"
	"github.com/finbuzz/finbuzz/internal/model"
	"github.com/finbuzz/finbuzz/internal/tracker"
)

// Session is the unit of per-user state held by the server.
type Session struct {
	ID        string
	Profile   model.UserProfile
	Expenses  *tracker.ExpenseTracker
	Goals     *tracker.GoalTracker
	Portfolio *tracker.Portfolio
	Fund      *tracker.FundTracker
	Chat      *chat.Orchestrator
}

// New creates a session for profile with fresh trackers.
func New(profile model.UserProfile, adviser chat.Adviser) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Profile:   profile,
		Expenses:  tracker.NewExpenseTracker(),
		Goals:     tracker.NewGoalTracker(),
		Portfolio: tracker.NewPortfolio(),
		Fund:      tracker.NewFundTracker(),
		Chat:      chat.New(adviser),
	}
}

// Close releases the session's state. Trackers are per-session, so
// clearing them makes any lingering references harmless.
func (s *Session) Close() {
	s.Expenses.Reset()
	s.Goals.Reset()
	s.Portfolio.Reset()
	s.Fund.Reset()
}

// Manager tracks live sessions by token. Tokens are opaque UUIDs handed to
// the client at sign-in and presented on every authenticated request.
type Manager struct {
	adviser chat.Adviser

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates an empty manager.
func NewManager(adviser chat.Adviser) *Manager {
	return &Manager{
		adviser:  adviser,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session for profile and returns it keyed by its ID.
func (m *Manager) Create(profile model.UserProfile) *Session {
	s := New(profile, m.adviser)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session for token, or nil.
func (m *Manager) Get(token string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[token]
}

// Delete ends the session for token.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	s := m.sessions[token]
	delete(m.sessions, token)
	m.mu.Unlock()
	if s != nil {
		s.Close()
	}
}

// Adviser returns the shared advice generator.
func (m *Manager) Adviser() chat.Adviser {
	return m.adviser
}

// UpdateProfile replaces the stored profile on the session for token.
func (m *Manager) UpdateProfile(token string, profile model.UserProfile) {
	m.mu.Lock()
	if s, ok := m.sessions[token]; ok {
		s.Profile = profile
	}
	m.mu.Unlock()
}
