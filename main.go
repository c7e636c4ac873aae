package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rake87226-cmyk/vercel-backend/config"
	"github.com/rake87226-cmyk/vercel-backend/logging"
	"github.com/rake87226-cmyk/vercel-backend/notify"
	"github.com/rake87226-cmyk/vercel-backend/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	envFile := flag.String("env", ".env", "path to an optional .env file")
	initOnly := flag.Bool("init-db", false, "create tables, seed the menu and exit")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Logger = logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	gin.SetMode(gin.ReleaseMode)

	st, err := store.Open(cfg.Database, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize DB")
	}
	defer st.Close()

	if err := st.Bootstrap(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize DB")
	}
	log.Info().Msg("Database initialized")
	if *initOnly {
		return
	}

	notifier := notify.FromConfig(cfg, log.Logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           SetupRouter(st, notifier, cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	if err := notifier.Wait(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Dropping pending notifications")
	}
	notifier.Close()
}
