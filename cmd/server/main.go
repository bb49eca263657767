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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/a2a"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/agent"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/api"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/config"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/logger"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/profiler"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := agent.LoadAgentCard(); err != nil {
		log.Fatal("Failed to load agent card", zap.Error(err))
	}

	geminiClient, err := profiler.NewGeminiClient(context.Background(), cfg.Gemini, log)
	if err != nil {
		log.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	defer func() { _ = geminiClient.Close() }()

	if !geminiClient.Configured() {
		log.Warn("GEMINI_API_KEY is not set; profile generation will fail until it is configured")
	}

	store := session.NewStore(geminiClient, session.Options{
		TTL:               cfg.Session.TTL,
		CleanupInterval:   cfg.Session.CleanupInterval,
		GenerationTimeout: cfg.Gemini.Timeout,
		MaxImageBytes:     cfg.MaxImageBytes,
	}, log)

	gin.SetMode(cfg.GinMode)
	router := api.NewRouter(
		api.RouterConfig{
			AllowedOrigins:  cfg.AllowedOrigins,
			MaxImageBytes:   cfg.MaxImageBytes,
			GenerationRPS:   cfg.RateLimitRPS,
			GenerationBurst: cfg.RateLimitBurst,
		},
		api.NewSessionHandler(store, log),
		a2a.NewA2AHandler(geminiClient, cfg.Gemini.Timeout, log),
		log,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Romantic Brand Builder starting",
			zap.String("port", cfg.Port),
			zap.String("model", geminiClient.ModelName()),
			zap.String("env", cfg.AppEnv),
		)
		log.Info("Agent card available", zap.String("url", fmt.Sprintf("http://localhost:%s/.well-known/agent.json", cfg.Port)))
		log.Info("A2A endpoint available", zap.String("url", fmt.Sprintf("http://localhost:%s/a2a/profile", cfg.Port)))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
