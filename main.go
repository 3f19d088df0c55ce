// Entry point of the taskdash API server. It loads configuration, connects
// the database, runs migrations, wires stores into services and services into
// handlers, and serves HTTP until SIGINT/SIGTERM triggers a graceful
// shutdown. All process-wide state (config, pool) is built once here and
// passed down as read-only dependencies.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/user/taskdash-go/auth"
	"github.com/user/taskdash-go/config"
	"github.com/user/taskdash-go/db"
	"github.com/user/taskdash-go/logger"
	"github.com/user/taskdash-go/metrics"
	"github.com/user/taskdash-go/server"
	"github.com/user/taskdash-go/tasks"
)

func main() {
	// .env is a development convenience; in production the variables are set
	// directly and the file is simply absent.
	if err := godotenv.Load(); err != nil {
		slog.Info(".env file not loaded", slog.String("reason", err.Error()))
	}

	logger.SetupDefault(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		slog.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokenService := auth.NewTokenService(cfg.Auth)
	authService := auth.NewService(auth.NewPostgresUserStore(pool), tokenService, cfg.Auth.BcryptCost)
	taskService := tasks.NewService(tasks.NewPostgresTaskStore(pool))

	// Credential endpoints take 10 requests per minute per IP, burst 10.
	authLimiter := server.NewRateLimiter(rate.Limit(10.0/60.0), 10)
	defer authLimiter.Stop()

	router := server.NewRouter(server.Deps{
		AuthHandlers: auth.NewHandlers(authService),
		TaskHandlers: tasks.NewHandlers(taskService),
		Tokens:       tokenService,
		ClientOrigin: cfg.Server.ClientOrigin,
		Metrics:      metrics.New(),
		AuthLimiter:  authLimiter,
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}
