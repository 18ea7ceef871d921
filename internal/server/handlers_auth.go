package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/volumeopt/internal/auth"
	"github.com/claude/volumeopt/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		s.log.Error("password hash failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	user, err := s.db.CreateUser(r.Context(), req.Email, hashed)
	if errors.Is(err, storage.ErrEmailTaken) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "email already registered"})
		return
	}
	if err != nil {
		s.log.Error("user create failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	// Every new account gets a default API key so the volume endpoints
	// are usable immediately.
	key, err := auth.GenerateAPIKey()
	if err == nil {
		_, err = s.db.CreateAPIKey(r.Context(), user.ID, "Default API Key", key)
	}
	if err != nil {
		s.log.Error("default api key create failed", "error", err, "user", user.ID)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("token issue failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	user, err := s.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil || auth.VerifyPassword(user.HashedPassword, req.Password) != nil {
		// Same response for unknown email and wrong password.
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "incorrect email or password"})
		return
	}
	if !user.IsActive {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "account is inactive"})
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error("token issue failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

type apiKeyCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

func (s *Server) handleCreateAPIKey(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req apiKeyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	key, err := auth.GenerateAPIKey()
	if err != nil {
		s.log.Error("api key generation failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "key creation failed"})
		return
	}

	created, err := s.db.CreateAPIKey(r.Context(), user.ID, req.Name, key)
	if err != nil {
		s.log.Error("api key create failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "key creation failed"})
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleListAPIKeys(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	keys, err := s.db.ListAPIKeys(r.Context(), user.ID)
	if err != nil {
		s.log.Error("api key list failed", "error", err, "user", user.ID)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) handleDeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	keyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid key ID"})
		return
	}

	if err := s.db.DeleteAPIKey(r.Context(), user.ID, keyID); err != nil {
		if status := notFoundToStatus(err); status == http.StatusNotFound {
			writeJSON(w, status, map[string]string{"error": "API key not found"})
		} else {
			s.log.Error("api key delete failed", "error", err, "user", user.ID)
			writeJSON(w, status, map[string]string{"error": "delete failed"})
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "API key deleted"})
}
