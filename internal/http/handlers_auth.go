package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = sanitizeInput(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusUnprocessableEntity, "invalid email")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "password is required")
		return
	}

	state, err := s.session.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeData(w, http.StatusOK, state)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Name = sanitizeInput(req.Name)
	req.Email = sanitizeInput(req.Email)
	if req.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusUnprocessableEntity, "invalid email")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusUnprocessableEntity, "password is required")
		return
	}

	state, err := s.session.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "signup failed")
		return
	}
	writeData(w, http.StatusOK, state)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.session.Logout(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Logout failed", "error", err)
		writeError(w, http.StatusInternalServerError, "logout failed")
		return
	}
	writeJSON(w, http.StatusOK, Response{Status: statusOK})
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	state, err := s.session.State()
	if err != nil {
		slog.ErrorContext(r.Context(), "Session not initialized", "error", err)
		writeError(w, http.StatusInternalServerError, "session not initialized")
		return
	}
	writeData(w, http.StatusOK, state)
}
