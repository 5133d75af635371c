package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tstockdale/weather-map/internal/api"
	"github.com/tstockdale/weather-map/internal/config"
	"github.com/tstockdale/weather-map/internal/geocode"
	"github.com/tstockdale/weather-map/internal/request"
	"github.com/tstockdale/weather-map/internal/secrets"
	"github.com/tstockdale/weather-map/internal/service"
	"github.com/tstockdale/weather-map/internal/weather"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	apiKey, err := secrets.Resolve(context.Background(), cfg.Vault, logger)
	if err != nil {
		logger.Fatal("Failed to resolve API key", zap.Error(err))
	}

	// Weather payloads are larger than geocoding responses, so each
	// client gets its own executor with its own per-attempt timeout.
	geocodeExec := request.NewExecutor(cfg.API.GeocodingTimeout, cfg.API.MaxAttempts, cfg.API.RetryDelay, logger)
	weatherExec := request.NewExecutor(cfg.API.WeatherTimeout, cfg.API.MaxAttempts, cfg.API.RetryDelay, logger)

	geocoder := geocode.NewClient(cfg.API.GeocodingBaseURL, apiKey, geocodeExec, logger)
	fetcher := weather.NewClient(cfg.API.WeatherBaseURL, apiKey, weatherExec, logger)

	svc := service.NewService(geocoder, fetcher, apiKey, cfg.Map, logger)
	router := api.NewRouter(svc, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
