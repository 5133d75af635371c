package service

import (
	"context"

	"github.com/tstockdale/weather-map/internal/config"
	"github.com/tstockdale/weather-map/internal/model"
	"github.com/tstockdale/weather-map/internal/weather"
	"go.uber.org/zap"
)

// Geocoder resolves a location query to coordinate candidates
type Geocoder interface {
	Lookup(ctx context.Context, query model.LocationQuery, limit int) ([]model.LocationCandidate, error)
}

// WeatherFetcher fetches a weather snapshot for a coordinate pair
type WeatherFetcher interface {
	Snapshot(ctx context.Context, lat, lon float64, opts weather.Options) (*model.WeatherSnapshot, error)
}

// Service provides the dashboard business logic
type Service struct {
	geocoder Geocoder
	fetcher  WeatherFetcher
	apiKey   string
	mapCfg   config.MapConfig
	logger   *zap.Logger
}

// NewService creates a new service instance
func NewService(geocoder Geocoder, fetcher WeatherFetcher, apiKey string, mapCfg config.MapConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		geocoder: geocoder,
		fetcher:  fetcher,
		apiKey:   apiKey,
		mapCfg:   mapCfg,
		logger:   logger,
	}
}
