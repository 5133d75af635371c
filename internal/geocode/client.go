package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tstockdale/weather-map/internal/model"
	"github.com/tstockdale/weather-map/internal/request"
	"go.uber.org/zap"
)

const (
	// DefaultLimit is the number of candidates requested when the
	// caller does not specify one
	DefaultLimit = 5
	// MaxLimit is the provider's cap on result count
	MaxLimit = 10
)

// Getter performs a resilient GET and returns the response body
type Getter interface {
	Get(ctx context.Context, op, rawURL string, params map[string]string) ([]byte, error)
}

// Client resolves free-text location descriptions to coordinate
// candidates using the OpenWeatherMap direct-geocoding endpoint
type Client struct {
	baseURL string
	apiKey  string
	getter  Getter
	logger  *zap.Logger
}

// NewClient creates a geocoding client
func NewClient(baseURL, apiKey string, getter Getter, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		getter:  getter,
		logger:  logger,
	}
}

// owmPlace mirrors one element of the provider's JSON array response
type owmPlace struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state"`
	Country string  `json:"country"`
}

// Lookup returns candidate coordinates for the query, in provider
// order. A provider or transport failure that survives the retry
// policy is downgraded to a (nil, nil) "not found" outcome and logged;
// anything unexpected, such as a malformed payload, propagates.
func (c *Client) Lookup(ctx context.Context, query model.LocationQuery, limit int) ([]model.LocationCandidate, error) {
	if strings.TrimSpace(query.City) == "" {
		return nil, model.NewValidationError("city", "city name is required for geocoding")
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, model.NewValidationError("api key", "API key is required for geocoding")
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	q := query.QueryString()
	params := map[string]string{
		"q":     q,
		"appid": c.apiKey,
		"limit": strconv.Itoa(limit),
	}

	body, err := c.getter.Get(ctx, "geocoding", c.baseURL+"/direct", params)
	if err != nil {
		if request.IsTransient(err) {
			c.logger.Error("geocoding failed", zap.String("query", q), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	var places []owmPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	if len(places) == 0 {
		c.logger.Warn("no locations found", zap.String("query", q))
		return nil, nil
	}

	candidates := make([]model.LocationCandidate, 0, len(places))
	for i, p := range places {
		candidates = append(candidates, model.LocationCandidate{
			Name:    p.Name,
			Lat:     p.Lat,
			Lon:     p.Lon,
			State:   p.State,
			Country: p.Country,
			Rank:    i,
		})
	}

	c.logger.Info("resolved location",
		zap.String("query", q),
		zap.Int("candidates", len(candidates)),
	)
	return candidates, nil
}
