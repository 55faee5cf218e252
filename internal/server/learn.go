package server

import (
	"net/http"

	"github.com/finbuzz/finbuzz/internal/learn"
	"github.com/finbuzz/finbuzz/internal/session"
)

type learnResponse[T any] struct {
	Items    []T  `json:"items"`
	Fallback bool `json:"fallback"`
}

func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	res := s.learn.Quiz(r.Context())
	writeJSON(w, http.StatusOK, learnResponse[learn.QuizQuestion]{Items: res.Items, Fallback: res.Fallback})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	res := s.learn.Quotes(r.Context())
	writeJSON(w, http.StatusOK, learnResponse[learn.Quote]{Items: res.Items, Fallback: res.Fallback})
}

func (s *Server) handleBlogs(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	res := s.learn.Blogs(r.Context())
	writeJSON(w, http.StatusOK, learnResponse[learn.Blog]{Items: res.Items, Fallback: res.Fallback})
}
