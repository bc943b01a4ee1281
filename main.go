package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/isdelr/meetings/internal/api"
	"github.com/isdelr/meetings/internal/auth"
	"github.com/isdelr/meetings/internal/config"
	"github.com/isdelr/meetings/internal/database"
	"github.com/isdelr/meetings/internal/logger"
	"github.com/isdelr/meetings/internal/services"
	"github.com/isdelr/meetings/internal/store"
	"github.com/isdelr/meetings/internal/view"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// The signing key is read once here and never changes while the process runs.
	codec, err := auth.NewTokenCodec([]byte(cfg.SecretKey), cfg.Algorithm, cfg.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token codec")
	}

	views, err := view.NewEngine()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up services
	accountService := services.NewAccountService(store.NewUserStore(db), auth.NewPasswordHasher(cfg.BcryptCost), codec)
	meetingService := services.NewMeetingService(store.NewMeetingStore(db))

	// Set up router
	router := api.NewRouter(auth.NewGate(codec), views, accountService, meetingService, api.Options{
		Logger:         log.Logger,
		AllowedOrigins: cfg.AllowedOrigins,
		Production:     cfg.IsProduction(),
		CookieTTL:      codec.TTL(),
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
