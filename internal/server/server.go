// Package server exposes the application over an HTTP JSON API plus a
// WebSocket endpoint for the advisor chat. Authenticated requests carry a
// bearer token issued at login.
package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/finbuzz/finbuzz/internal/learn"
	"github.com/finbuzz/finbuzz/internal/profile"
	"github.com/finbuzz/finbuzz/internal/session"
)

// Server holds the handler dependencies.
type Server struct {
	gateway  *profile.Gateway
	sessions *session.Manager
	learn    *learn.Loader
	logger   *slog.Logger
}

// New creates a server.
func New(gateway *profile.Gateway, sessions *session.Manager, loader *learn.Loader, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		gateway:  gateway,
		sessions: sessions,
		learn:    loader,
		logger:   logger,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/signup", s.handleSignup)
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.Handle("POST /api/logout", s.authed(s.handleLogout))

	mux.Handle("GET /api/profile", s.authed(s.handleGetProfile))
	mux.Handle("PUT /api/settings/currency", s.authed(s.handleUpdateCurrency))
	mux.Handle("GET /api/settings/darkmode", s.authed(s.handleGetDarkMode))
	mux.Handle("PUT /api/settings/darkmode", s.authed(s.handleSetDarkMode))

	mux.Handle("GET /api/expenses", s.authed(s.handleListExpenses))
	mux.Handle("POST /api/expenses", s.authed(s.handleAddExpense))
	mux.Handle("POST /api/expenses/reset", s.authed(s.handleResetExpenses))

	mux.Handle("GET /api/goals", s.authed(s.handleListGoals))
	mux.Handle("POST /api/goals", s.authed(s.handleAddGoal))
	mux.Handle("POST /api/goals/{id}/contribute", s.authed(s.handleContributeGoal))
	mux.Handle("POST /api/goals/reset", s.authed(s.handleResetGoals))

	mux.Handle("GET /api/investments", s.authed(s.handleListInvestments))
	mux.Handle("POST /api/investments", s.authed(s.handleAddInvestment))
	mux.Handle("POST /api/investments/reset", s.authed(s.handleResetInvestments))

	mux.Handle("GET /api/fund", s.authed(s.handleGetFund))
	mux.Handle("POST /api/fund/contribute", s.authed(s.handleContributeFund))
	mux.Handle("PUT /api/fund/target", s.authed(s.handleSetFundTarget))
	mux.Handle("PUT /api/fund/monthly", s.authed(s.handleSetFundMonthly))
	mux.Handle("POST /api/fund/reset", s.authed(s.handleResetFund))

	mux.Handle("POST /api/advice", s.authed(s.handleAdvice))

	mux.Handle("GET /api/chat/messages", s.authed(s.handleChatMessages))
	mux.Handle("POST /api/chat/send", s.authed(s.handleChatSend))
	mux.Handle("GET /ws/chat", s.authed(s.handleChatSocket))

	mux.Handle("GET /api/learn/quiz", s.authed(s.handleQuiz))
	mux.Handle("GET /api/learn/quotes", s.authed(s.handleQuotes))
	mux.Handle("GET /api/learn/blogs", s.authed(s.handleBlogs))

	return s.logRequests(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// sessionHandler is an http handler that additionally receives the caller's
// session.
type sessionHandler func(w http.ResponseWriter, r *http.Request, sess *session.Session)

// authed resolves the bearer token to a session, rejecting the request when
// the token is absent or stale.
func (s *Server) authed(next sessionHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			// WebSocket clients can't set headers, so allow the token as
			// a query parameter there.
			token = r.URL.Query().Get("token")
		}
		sess := s.sessions.Get(token)
		if sess == nil {
			writeError(w, http.StatusUnauthorized, "Not signed in")
			return
		}
		next(w, r, sess)
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
