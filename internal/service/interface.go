package service

import (
	"context"

	"github.com/tstockdale/weather-map/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	CityReport(ctx context.Context, input string, opts ReportOptions) (*Report, error)
	Geocode(ctx context.Context, input string, limit int) ([]model.LocationCandidate, error)
}
