package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pressroom/internal/models"
	"pressroom/internal/storage"
)

type postRequest struct {
	Title       string `json:"title" validate:"required"`
	Content     string `json:"content" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	AuthorImage string `json:"authorImage"`
	AuthorName  string `json:"authorName" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

type postStatusRequest struct {
	Status models.PostStatus `json:"post_status" validate:"required,oneof=open approved rejected edit"`
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}
	if req.AuthorImage == "" {
		req.AuthorImage = s.cfg.Content.DefaultAuthorImage
	}

	claims := claimsFrom(r.Context())
	post := &models.Post{
		PostID:      uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		AuthorImage: req.AuthorImage,
		AuthorName:  req.AuthorName,
		WriterName:  claims.Name,
		Category:    req.Category,
		UploadDate:  time.Now().UTC(),
		ViewCount:   0,
		Status:      models.PostOpen,
	}
	if err := models.CreatePost(s.db, post); err != nil {
		respondInternal(w, err, "creating post")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{
		"status":  "success",
		"message": "Post created successfully",
		"data":    post,
	})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := models.ListPosts(s.db)
	if err != nil {
		respondInternal(w, err, "listing posts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "posts": posts})
}

func (s *Server) handlePostsByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	posts, err := models.ListPostsByCategory(s.db, category)
	if err != nil {
		respondInternal(w, err, "listing posts by category")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"category": category,
		"posts":    posts,
	})
}

func (s *Server) handleOpenPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := models.ListPostsByStatus(s.db, models.PostOpen)
	if err != nil {
		respondInternal(w, err, "listing open posts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "posts": posts})
}

// handleGetPost is the one qualifying read: fetching a single post
// records a view event and returns the fresh total.
func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	post, err := models.GetPost(s.db, postID)
	if err != nil {
		respondDomainError(w, err, "fetching post")
		return
	}
	total, err := s.views.RecordView(postID)
	if err != nil {
		respondInternal(w, err, "recording view")
		return
	}
	post.ViewCount = total
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "data": post})
}

func (s *Server) handleSetPostStatus(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	var req postStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid or missing post_status. Must be one of: open, approved, rejected, edit.")
		return
	}
	post, err := models.UpdatePostStatus(s.db, postID, req.Status)
	if err != nil {
		respondDomainError(w, err, "updating post status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Post status updated to " + string(req.Status),
		"updatedPost": post,
	})
}

// handleWriterEditPost is the writer path: only the authoring writer
// may edit, and the edit always sends the post back to open.
func (s *Server) handleWriterEditPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}

	post, err := models.GetPost(s.db, postID)
	if err != nil {
		respondDomainError(w, err, "fetching post")
		return
	}
	claims := claimsFrom(r.Context())
	if post.WriterName != claims.Name {
		respondError(w, http.StatusForbidden, "Only the authoring writer may edit this post")
		return
	}

	updated, err := models.UpdatePostByWriter(s.db, postID, s.postContent(req))
	if err != nil {
		respondDomainError(w, err, "updating post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Post updated and returned for review",
		"updatedPost": updated,
	})
}

// handleAdminEditPost overwrites content fields without touching the
// moderation status.
func (s *Server) handleAdminEditPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")
	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: "+err.Error())
		return
	}
	updated, err := models.UpdatePostByAdmin(s.db, postID, s.postContent(req))
	if err != nil {
		respondDomainError(w, err, "updating post")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Post updated successfully",
		"updatedPost": updated,
	})
}

func (s *Server) postContent(req postRequest) models.PostContent {
	if req.AuthorImage == "" {
		req.AuthorImage = s.cfg.Content.DefaultAuthorImage
	}
	return models.PostContent{
		Title:       req.Title,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		AuthorImage: req.AuthorImage,
		AuthorName:  req.AuthorName,
		Category:    req.Category,
	}
}

func (s *Server) handleUploadURL(w http.ResponseWriter, r *http.Request) {
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		respondError(w, http.StatusBadRequest, "Missing fileName or fileType")
		return
	}
	if !storage.AllowedFileType(fileType) {
		respondError(w, http.StatusBadRequest, "Invalid file type")
		return
	}
	if s.uploads == nil {
		respondError(w, http.StatusInternalServerError, "Upload storage is not configured")
		return
	}
	ticket, err := s.uploads.PresignPut(r.Context(), fileName, fileType)
	if err != nil {
		respondInternal(w, err, "generating upload URL")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"status": "success", "data": ticket})
}
