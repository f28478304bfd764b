// Package server wires the REST surface: routing, authentication
// middleware and the JSON handlers over the domain packages.
package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"pressroom/internal/auth"
	"pressroom/internal/config"
	"pressroom/internal/storage"
	"pressroom/internal/views"
)

type Server struct {
	db       *sql.DB
	cfg      *config.Config
	tokens   *auth.TokenService
	auth     *auth.Authenticator
	views    *views.Aggregator
	uploads  *storage.Uploader
	validate *validator.Validate
}

func New(database *sql.DB, cfg *config.Config) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	s := &Server{
		db:       database,
		cfg:      cfg,
		tokens:   tokens,
		auth:     auth.NewAuthenticator(database),
		views:    views.NewAggregator(database),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	if cfg.S3.Enabled() {
		s.uploads = storage.NewUploader(cfg.S3)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)

	loginLimit := httprate.LimitByIP(10, time.Minute)

	r.Route("/api", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.With(loginLimit).Post("/login", s.handleAdminLogin)
			r.Group(func(r chi.Router) {
				r.Use(s.authenticate, s.require(auth.AdminOnly))
				r.Get("/", s.handleListAdmins)
				r.Post("/writers", s.handleCreateWriter)
				r.Delete("/writers/{writerId}", s.handleDeleteWriter)
				r.Put("/posts/{postId}", s.handleAdminEditPost)
				r.Get("/views/overview", s.handleViewsOverview)
			})
		})

		r.Route("/writer", func(r chi.Router) {
			r.With(loginLimit).Post("/login", s.handleWriterLogin)
			r.With(s.authenticate, s.require(auth.AuthenticatedOnly)).Get("/", s.handleListWriters)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.handleListPosts)
			r.Get("/category/{category}", s.handlePostsByCategory)
			r.Get("/status/open", s.handleOpenPosts)
			r.Get("/{postId}", s.handleGetPost)

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate, s.require(auth.WriterOnly))
				r.Post("/", s.handleCreatePost)
				r.Put("/{postId}", s.handleWriterEditPost)
				r.Get("/s3/upload-url", s.handleUploadURL)
			})

			r.With(s.authenticate, s.require(auth.AdminOnly)).
				Patch("/{postId}/status", s.handleSetPostStatus)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Post("/", s.handleSubmitComment)
			r.Get("/post/{postId}", s.handleApprovedComments)
			r.Get("/my-comments/{email}", s.handleCommentsByEmail)
			r.Get("/status/{commentId}/{email}", s.handleCommentStatusCheck)

			r.Group(func(r chi.Router) {
				r.Use(s.authenticate, s.require(auth.AdminOnly))
				r.Get("/pending", s.handlePendingComments)
				r.Get("/all", s.handleAllComments)
				r.Patch("/{commentId}/status", s.handleSetCommentStatus)
				r.Delete("/{commentId}", s.handleDeleteComment)
			})
		})

		r.Get("/views/top", s.handleTopViews)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "OK"})
}
