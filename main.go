// Package main implements the EPG icon merge server.
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

	"github.com/gorilla/mux"
	"github.com/savid/epg-icons/config"
	"github.com/savid/epg-icons/handlers"
	"github.com/savid/epg-icons/internal/data"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	cfg, err := config.New()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to parse log level")
	}
	logrus.SetLevel(level)

	if cfg.LogFile != "" {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		})
	}

	logger := logrus.StandardLogger()

	store, err := config.NewStore(cfg.EnvFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load settings")
	}
	fetcher := data.NewFetcher(cfg.FetchTimeout, logger)

	router := mux.NewRouter()
	setupRoutes(router, store, fetcher, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down server...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("Failed to gracefully shutdown")
		}
	}()

	logger.WithField("port", cfg.Port).Info("Starting EPG icon merge server")
	logger.WithField("endpoint", "/playlist.m3u").Info("Playlist endpoint")
	logger.WithField("endpoint", "/settings").Info("Settings endpoint")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Failed to start server")
	}

	logger.Info("Server stopped")
}

func setupRoutes(router *mux.Router, store *config.Store, fetcher *data.Fetcher, logger *logrus.Logger) {
	router.Use(handlers.LoggingMiddleware(logger))

	router.Handle("/playlist.m3u", handlers.NewPlaylistHandler(store, fetcher, logger)).Methods(http.MethodGet)
	router.Handle("/settings", handlers.NewSettingsHandler(store, logger)).Methods(http.MethodGet, http.MethodPost)
	router.Handle("/", handlers.NewIndexHandler(store, logger)).Methods(http.MethodGet)

	router.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
