package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"attendance-bot/internal/browser"
	"attendance-bot/internal/config"
	"attendance-bot/internal/http-server/handlers/attendance"
	"attendance-bot/internal/lib/logger"
	"attendance-bot/internal/lib/logger/sl"
	attendanceservice "attendance-bot/internal/service/attendance"
	"attendance-bot/internal/storage/sqlite"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine, the variables may come from the environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := logger.New(cfg.Env)

	log.Debug("initializing server...", slog.String("addr", cfg.Address))

	// Init storage
	storage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("error opening storage", sl.Error(err))
		os.Exit(1)
	}
	defer storage.Close()

	// Init service layer
	driver := browser.New(log, cfg.Portal, cfg.Browser)
	attService := attendanceservice.New(log, driver, storage)

	// Handlers and middleware
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Init handlers
	att := attendance.New(log, attService, cfg.Auth.Secret)

	r.Group(att.Register())

	if cfg.Auth.Secret == "" {
		log.Warn("auth secret is empty, routes are public")
	}

	srv := http.Server{
		Handler:      r,
		Addr:         cfg.Address,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	log.Debug("server initialized")
	log.Info("server is running...", slog.String("addr", cfg.Address), slog.String("portal", cfg.Portal.URL))

	// Gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("error starting server", sl.Error(err))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("failed to stop server", sl.Error(err))
	}

	log.Info("server stopped")
}
