package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wager-sim/internal/api"
	"wager-sim/internal/config"
	"wager-sim/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	env := config.FromEnv()

	if info, err := os.Stat(env.ProfileDir); err == nil && info.IsDir() {
		slog.Info("Profile directory found", "dir", env.ProfileDir)
	} else {
		slog.Warn("Profile directory not found", "dir", env.ProfileDir, "error", err)
	}

	if env.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runs := store.NewRunCache(env.RunCacheTTL, env.RunCacheMaxEntries)
	go runs.Run(ctx, 5*time.Minute)

	router := api.NewRouter(api.RouterOptions{
		ProfileDir:     env.ProfileDir,
		AllowedOrigins: env.AllowedOrigins,
		Runs:           runs,
		MaxTotalTrades: env.MaxTotalTrades,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", env.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", srv.Addr, "run_cache_ttl", env.RunCacheTTL, "max_total_trades", env.MaxTotalTrades)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
