package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/models"
)

type adminLoginRequest struct {
	Username string `json:"adminUserName" validate:"required"`
	Password string `json:"adminPassword" validate:"required"`
}

type writerLoginRequest struct {
	Username string `json:"writerUserName" validate:"required"`
	Password string `json:"writerPassword" validate:"required"`
}

type createWriterRequest struct {
	Username   string `json:"writerUserName" validate:"required"`
	Password   string `json:"writerPassword" validate:"required,min=8"`
	WriterName string `json:"writerName" validate:"required"`
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	s.login(w, auth.KindAdmin, req.Username, req.Password)
}

func (s *Server) handleWriterLogin(w http.ResponseWriter, r *http.Request) {
	var req writerLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	s.login(w, auth.KindWriter, req.Username, req.Password)
}

// login authenticates and issues a session token. Credential failures
// share one response shape so account existence cannot be probed.
func (s *Server) login(w http.ResponseWriter, kind auth.PrincipalKind, username, password string) {
	principal, err := s.auth.Authenticate(kind, username, password)
	if err != nil {
		respondDomainError(w, err, "authenticating "+string(kind))
		return
	}
	token, err := s.tokens.Issue(principal)
	if err != nil {
		respondInternal(w, err, "issuing token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Login successful",
		"token":   token,
		"data": map[string]any{
			"id":   principal.ID,
			"name": principal.Name,
			"role": principal.Role,
		},
	})
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := models.ListAdmins(s.db)
	if err != nil {
		respondInternal(w, err, "listing admins")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "admins": admins})
}

func (s *Server) handleListWriters(w http.ResponseWriter, r *http.Request) {
	writers, err := models.ListWriters(s.db)
	if err != nil {
		respondInternal(w, err, "listing writers")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "writers": writers})
}

func (s *Server) handleCreateWriter(w http.ResponseWriter, r *http.Request) {
	var req createWriterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, err, "hashing password")
		return
	}
	writer := &models.Writer{
		WriterID:     uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		WriterName:   req.WriterName,
	}
	if err := models.CreateWriter(s.db, writer); err != nil {
		respondDomainError(w, err, "creating writer")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Writer created successfully",
		"data":    writer,
	})
}

func (s *Server) handleDeleteWriter(w http.ResponseWriter, r *http.Request) {
	writerID := chi.URLParam(r, "writerId")
	if err := models.DeleteWriter(s.db, writerID); err != nil {
		respondDomainError(w, err, "deleting writer")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Writer deleted successfully",
	})
}
