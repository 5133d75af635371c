package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/tstockdale/weather-map/internal/convert"
	"github.com/tstockdale/weather-map/internal/maptile"
	"github.com/tstockdale/weather-map/internal/model"
	"github.com/tstockdale/weather-map/internal/weather"
	"go.uber.org/zap"
)

// defaultCandidateLimit is how many geocoding candidates the dashboard
// requests; only the top-ranked one drives the report
const defaultCandidateLimit = 3

// Soft outcomes: the render cycle shows a plain message instead of
// aborting. Everything else is a hard failure.
var (
	ErrLocationNotFound   = errors.New("location not found")
	ErrWeatherUnavailable = errors.New("weather data unavailable")
)

// ReportOptions adjusts a city report. A nil Zoom means the configured
// default; zoom 0 (whole-world tile) is a valid explicit choice.
type ReportOptions struct {
	Layer string
	Zoom  *int
}

// Report is the display-ready weather report for one city lookup
type Report struct {
	Location    string                  `json:"location"`
	Candidate   model.LocationCandidate `json:"candidate"`
	Timezone    string                  `json:"timezone"`
	ObservedAt  string                  `json:"observed_at"`
	Sunrise     string                  `json:"sunrise"`
	Sunset      string                  `json:"sunset"`
	Description string                  `json:"description"`
	TempC       float64                 `json:"temp_c"`
	TempF       float64                 `json:"temp_f"`
	FeelsLikeC  float64                 `json:"feels_like_c"`
	FeelsLikeF  float64                 `json:"feels_like_f"`
	Humidity    int                     `json:"humidity"`
	UVI         float64                 `json:"uvi"`
	UVIRisk     string                  `json:"uvi_risk"`
	WindMph     float64                 `json:"wind_mph"`
	WindGustMph float64                 `json:"wind_gust_mph"`
	RainOneHour *float64                `json:"rain_1h,omitempty"`
	Hourly      []HourlyRow             `json:"hourly"`
	Map         maptile.Overlay         `json:"map"`
}

// HourlyRow is one display-ready row of the hourly forecast table
type HourlyRow struct {
	Time        string   `json:"time"`
	TempF       float64  `json:"temp_f"`
	FeelsLikeF  float64  `json:"feels_like_f"`
	RainOneHour *float64 `json:"rain_1h,omitempty"`
	Humidity    int      `json:"humidity"`
	WindMph     float64  `json:"wind_mph"`
	Description string   `json:"description"`
}

// ParseCityInput splits a "[city], [state], [country]" input into a
// location query. Parts beyond the third are ignored.
func ParseCityInput(input string) model.LocationQuery {
	if strings.TrimSpace(input) == "" {
		return model.LocationQuery{}
	}

	parts := strings.Split(input, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	q := model.LocationQuery{City: parts[0]}
	if len(parts) > 1 {
		q.State = parts[1]
	}
	if len(parts) > 2 {
		q.Country = parts[2]
	}
	return q
}

// Geocode resolves the free-text input to candidate coordinates
func (s *Service) Geocode(ctx context.Context, input string, limit int) ([]model.LocationCandidate, error) {
	return s.geocoder.Lookup(ctx, ParseCityInput(input), limit)
}

// CityReport resolves the input to coordinates, fetches weather for
// the top-ranked candidate and builds the display-ready report.
// Returns ErrLocationNotFound or ErrWeatherUnavailable when the
// upstream lookups fail softly.
func (s *Service) CityReport(ctx context.Context, input string, opts ReportOptions) (*Report, error) {
	query := ParseCityInput(input)

	candidates, err := s.geocoder.Lookup(ctx, query, defaultCandidateLimit)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		s.logger.Warn("no location data found", zap.String("city", query.City))
		return nil, ErrLocationNotFound
	}

	candidate := candidates[0]
	s.logger.Info("using coordinates",
		zap.String("name", candidate.Name),
		zap.Float64("lat", candidate.Lat),
		zap.Float64("lon", candidate.Lon),
	)

	// Reports always fetch metric; the temperature and wind math in
	// buildReport assumes Celsius and m/s inputs.
	snapshot, err := s.fetcher.Snapshot(ctx, candidate.Lat, candidate.Lon, weather.Options{Units: weather.UnitsMetric})
	if err != nil {
		return nil, err
	}
	if snapshot == nil {
		s.logger.Error("failed to retrieve weather data", zap.String("city", query.City))
		return nil, ErrWeatherUnavailable
	}

	return s.buildReport(candidate, snapshot, opts)
}

func (s *Service) buildReport(candidate model.LocationCandidate, snapshot *model.WeatherSnapshot, opts ReportOptions) (*Report, error) {
	current := snapshot.Current

	observedAt, err := convert.FormatUnix(current.Dt, snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to format observation time: %w", err)
	}
	sunrise, err := convert.FormatUnix(current.Sunrise, snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to format sunrise time: %w", err)
	}
	sunset, err := convert.FormatUnix(current.Sunset, snapshot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to format sunset time: %w", err)
	}

	zoom := s.mapCfg.DefaultZoom
	if opts.Zoom != nil {
		zoom = *opts.Zoom
	}
	layer := opts.Layer
	if layer == "" {
		layer = s.mapCfg.DefaultLayer
	}

	report := &Report{
		Location:    locationLine(candidate),
		Candidate:   candidate,
		Timezone:    snapshot.Timezone,
		ObservedAt:  observedAt,
		Sunrise:     sunrise,
		Sunset:      sunset,
		Description: capitalize(current.Description()),
		TempC:       current.Temp,
		TempF:       convert.CelsiusToFahrenheit(current.Temp),
		FeelsLikeC:  current.FeelsLike,
		FeelsLikeF:  convert.CelsiusToFahrenheit(current.FeelsLike),
		Humidity:    current.Humidity,
		UVI:         current.UVI,
		UVIRisk:     convert.UVIRisk(current.UVI),
		WindMph:     convert.MpsToMph(current.WindSpeed),
		WindGustMph: convert.MpsToMph(current.WindGust),
		Map:         maptile.NewOverlay(candidate.Lat, candidate.Lon, layer, zoom, s.apiKey),
	}
	if current.Rain != nil {
		rain := current.Rain.OneHour
		report.RainOneHour = &rain
	}

	report.Hourly = make([]HourlyRow, 0, len(snapshot.Hourly))
	for _, h := range snapshot.Hourly {
		ts, err := convert.FormatUnix(h.Dt, snapshot.Timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to format hourly time: %w", err)
		}
		row := HourlyRow{
			Time:        ts,
			TempF:       convert.CelsiusToFahrenheit(h.Temp),
			FeelsLikeF:  convert.CelsiusToFahrenheit(h.FeelsLike),
			Humidity:    h.Humidity,
			WindMph:     convert.MpsToMph(h.WindSpeed),
			Description: capitalize(h.Description()),
		}
		if h.Rain != nil {
			rain := h.Rain.OneHour
			row.RainOneHour = &rain
		}
		report.Hourly = append(report.Hourly, row)
	}

	return report, nil
}

// locationLine formats the "Current weather in …" heading from the
// candidate's non-blank name parts
func locationLine(c model.LocationCandidate) string {
	parts := []string{fmt.Sprintf("Current weather in %s", c.Name)}
	if c.State != "" {
		parts = append(parts, c.State)
	}
	if c.Country != "" {
		parts = append(parts, c.Country)
	}
	return strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
