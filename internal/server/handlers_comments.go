package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/models"
)

type commentRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Name    string `json:"commenterName" validate:"required"`
	Email   string `json:"commenterEmail" validate:"required,email"`
	Text    string `json:"commentText" validate:"required"`
	Website string `json:"website"`
}

type commentStatusRequest struct {
	Status models.CommentStatus `json:"commentStatus" validate:"required,oneof=pending approved rejected"`
}

// handleSubmitComment accepts anonymous submissions. Validation runs
// before anything is persisted; every comment starts at pending.
func (s *Server) handleSubmitComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields or invalid email format")
		return
	}

	comment := &models.Comment{
		CommentID: uuid.NewString(),
		PostID:    req.PostID,
		Name:      req.Name,
		Email:     req.Email,
		Text:      req.Text,
		Website:   req.Website,
		Status:    models.CommentPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := models.CreateComment(s.db, comment); err != nil {
		respondInternal(w, err, "creating comment")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Comment submitted successfully. It will be visible after admin approval.",
		"data":    comment.Sanitized(),
	})
}

// handleApprovedComments is the public per-post listing: approved
// comments only, emails stripped. This privacy contract is never
// relaxed here.
func (s *Server) handleApprovedComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	comments, err := models.ListApprovedCommentsByPost(s.db, postID)
	if err != nil {
		respondInternal(w, err, "listing approved comments")
		return
	}
	sanitized := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		sanitized = append(sanitized, c.Sanitized())
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"postId":   postID,
		"comments": sanitized,
	})
}

func (s *Server) handlePendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := models.ListCommentsByStatus(s.db, models.CommentPending)
	if err != nil {
		respondInternal(w, err, "listing pending comments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "comments": comments})
}

func (s *Server) handleAllComments(w http.ResponseWriter, r *http.Request) {
	comments, err := models.ListComments(s.db)
	if err != nil {
		respondInternal(w, err, "listing comments")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "comments": comments})
}

func (s *Server) handleSetCommentStatus(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentId")
	var req commentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing commentStatus. Must be one of: approved, rejected, pending.")
		return
	}
	comment, err := models.UpdateCommentStatus(s.db, commentID, req.Status, time.Now().UTC())
	if err != nil {
		respondDomainError(w, err, "updating comment status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Comment status updated to " + string(req.Status),
		"data":    comment,
	})
}

// handleCommentsByEmail lets a commenter check the status of their own
// comments keyed by the email they already know. Emails are still
// stripped from the payload.
func (s *Server) handleCommentsByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := s.validate.Var(email, "email"); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	comments, err := models.ListCommentsByEmail(s.db, email)
	if err != nil {
		respondInternal(w, err, "listing comments by email")
		return
	}
	sanitized := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		sanitized = append(sanitized, c.Sanitized())
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"email":    email,
		"comments": sanitized,
	})
}

func (s *Server) handleCommentStatusCheck(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentId")
	email := chi.URLParam(r, "email")
	if err := s.validate.Var(email, "email"); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	comment, err := models.GetComment(s.db, commentID)
	if err != nil {
		respondDomainError(w, err, "fetching comment")
		return
	}
	if comment.Email != email {
		respondError(w, http.StatusForbidden, "Access denied. Email does not match comment author.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"comment": comment.Sanitized(),
	})
}

func (s *Server) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	commentID := chi.URLParam(r, "commentId")
	if err := models.DeleteComment(s.db, commentID); err != nil {
		respondDomainError(w, err, "deleting comment")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "success",
		"message": "Comment deleted successfully",
	})
}
