package server

import (
	"net/http"
	"strings"

	"github.com/finbuzz/finbuzz/internal/common"
	"github.com/finbuzz/finbuzz/internal/session"
)

type adviceRequest struct {
	Query string `json:"query"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

// handleAdvice answers a one-off question outside the chat log. The chat
// endpoints keep conversation state; this one is stateless.
func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	var req adviceRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondError(w, common.NewUserError("A question is required", common.ErrInvalidInput))
		return
	}

	text, err := s.sessions.Adviser().Advise(r.Context(), query)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceResponse{Advice: text})
}
