package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/piyushKumar-1/betterbe/internal/api"
	"github.com/piyushKumar-1/betterbe/internal/auth"
	"github.com/piyushKumar-1/betterbe/internal/config"
	"github.com/piyushKumar-1/betterbe/internal/health"
	"github.com/piyushKumar-1/betterbe/internal/platform/factory"
	"github.com/piyushKumar-1/betterbe/internal/platform/logger"
)

func main() {
	devMode := flag.Bool("dev", false, "Override BETTERBE_DEV_MODE (local mock authorizer)")
	flag.Parse()

	log := logger.New("habit-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *devMode {
		cfg.DevMode = true
	}
	if cfg.IsDevMode() {
		log = logger.NewConsole("habit-service")
	}

	log.Info().
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("dev_mode", cfg.IsDevMode()).
		Msg("Habit service starting…")

	// -------- Storage layer -----------------
	ctx := context.Background()
	st, err := factory.NewStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Storage backend unavailable")
	}
	pinger, ok := st.(health.HealthPinger)
	if !ok {
		log.Fatal().Msg("Storage backend does not support health pings")
	}

	// -------- Auth --------------------------
	authorizer := auth.NewAuthorizerFactory(cfg).CreateAuthorizer()

	// -------- Router & Server --------------
	router := api.NewRouter(st, authorizer, pinger)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
