package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/auth"
	"pressroom/internal/config"
	"pressroom/internal/db"
	"pressroom/internal/logging"
	"pressroom/internal/models"
	"pressroom/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("loading configuration")
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	database, err := db.Open(cfg.Database.Path)
	if err != nil {
		logging.Error().Err(err).Str("path", cfg.Database.Path).Msg("opening database")
		os.Exit(1)
	}
	defer database.Close()

	if err := bootstrapAdmin(cfg, database); err != nil {
		logging.Error().Err(err).Msg("bootstrapping admin")
		os.Exit(1)
	}

	srv, err := server.New(database, cfg)
	if err != nil {
		logging.Error().Err(err).Msg("building server")
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutting down")
	}
}

// bootstrapAdmin seeds the first admin account when none exists, so a
// fresh deployment can reach the admin-only provisioning endpoints.
func bootstrapAdmin(cfg *config.Config, database *sql.DB) error {
	if cfg.Auth.BootstrapAdminUser == "" {
		return nil
	}
	if cfg.Auth.BootstrapAdminPassword == "" {
		return errors.New("bootstrap admin password must not be empty")
	}
	admins, err := models.ListAdmins(database)
	if err != nil {
		return err
	}
	if len(admins) > 0 {
		return nil
	}
	hash, err := auth.HashPassword(cfg.Auth.BootstrapAdminPassword)
	if err != nil {
		return err
	}
	admin := &models.Admin{
		AdminID:      uuid.NewString(),
		Username:     cfg.Auth.BootstrapAdminUser,
		PasswordHash: hash,
	}
	if err := models.CreateAdmin(database, admin); err != nil {
		return err
	}
	logging.Info().Str("username", admin.Username).Msg("seeded bootstrap admin")
	return nil
}
