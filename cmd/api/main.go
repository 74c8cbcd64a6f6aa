package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bookhive/bookhive-go/internal/config"
	"github.com/bookhive/bookhive-go/internal/crypto"
	"github.com/bookhive/bookhive-go/internal/handler"
	"github.com/bookhive/bookhive-go/internal/middleware"
	"github.com/bookhive/bookhive-go/internal/repository"
	"github.com/bookhive/bookhive-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)

	tokens := crypto.NewTokenService(cfg.JWTSecret, cfg.AccessExpiry, cfg.RefreshExpiry)
	authenticator := middleware.NewAuthenticator(tokens, userRepo)

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	bookService := service.NewBookService(bookRepo)

	router := handler.NewRouter(
		authenticator,
		handler.NewAuthHandler(authService),
		handler.NewUserHandler(userService, authService),
		handler.NewBookHandler(bookService),
		cfg.LoginRateRPS,
		cfg.LoginRateBurst,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
