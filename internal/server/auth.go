package server

import (
	"net/http"

	"github.com/finbuzz/finbuzz/internal/model"
	"github.com/finbuzz/finbuzz/internal/session"
)

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Currency  string `json:"currency"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Profile profileResponse `json:"profile"`
}

type profileResponse struct {
	UID            string `json:"uid"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

func toProfileResponse(p model.UserProfile) profileResponse {
	return profileResponse{
		UID:            p.UID,
		Email:          p.Email,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Currency:       p.Currency,
		CurrencySymbol: p.Symbol(),
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := s.gateway.SignUp(r.Context(), req.Email, req.Password, req.FirstName, req.LastName, req.Currency)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := s.sessions.Create(p)
	writeJSON(w, http.StatusCreated, authResponse{Token: sess.ID, Profile: toProfileResponse(p)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	p, err := s.gateway.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := s.sessions.Create(p)
	writeJSON(w, http.StatusOK, authResponse{Token: sess.ID, Profile: toProfileResponse(p)})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	s.gateway.SignOut(sess.Profile.UID)
	s.sessions.Delete(sess.ID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request, sess *session.Session) {
	writeJSON(w, http.StatusOK, toProfileResponse(sess.Profile))
}

type currencyRequest struct {
	Currency string `json:"currency"`
}

func (s *Server) handleUpdateCurrency(w http.ResponseWriter, r *http.Request, sess *session.Session) {
	var req currencyRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := s.gateway.UpdateCurrency(sess.Profile, req.Currency)
	if err != nil {
		respondError(w, err)
		return
	}

	s.sessions.UpdateProfile(sess.ID, updated)
	writeJSON(w, http.StatusOK, toProfileResponse(updated))
}

type darkModeRequest struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) handleGetDarkMode(w http.ResponseWriter, _ *http.Request, _ *session.Session) {
	writeJSON(w, http.StatusOK, darkModeRequest{Enabled: s.gateway.DarkMode()})
}

func (s *Server) handleSetDarkMode(w http.ResponseWriter, r *http.Request, _ *session.Session) {
	var req darkModeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := s.gateway.SetDarkMode(req.Enabled); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}
