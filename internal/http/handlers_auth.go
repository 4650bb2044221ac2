package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/auth"
	"fintrack/internal/core"
	applog "fintrack/internal/log"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// publicUser is the subset of User exposed after login.
type publicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  publicUser `json:"user"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := core.ValidateSignup(req.Name, req.Email, req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "All fields required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Password hashing failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	_, err = s.store.CreateUser(r.Context(), strings.TrimSpace(req.Name), core.NormalizeEmail(req.Email), hash)
	if errors.Is(err, core.ErrDuplicateEmail) {
		respondError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "User creation failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	respondJSON(w, http.StatusOK, messageResponse{Message: "Signup successful"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	// Unknown email and wrong password answer identically so the
	// endpoint can't be used to enumerate accounts.
	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, core.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "User lookup failed", applog.FieldError, err)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Token issuance failed", applog.FieldError, err, applog.FieldUserID, user.ID)
		respondError(w, http.StatusInternalServerError, "Server error")
		return
	}

	slog.InfoContext(r.Context(), "User logged in", applog.FieldUserID, user.ID)
	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  publicUser{ID: user.ID, Name: user.Name, Email: user.Email},
	})
}
