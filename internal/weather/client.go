package weather

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

// UnitsMetric requests Celsius temperatures and m/s wind speeds
const UnitsMetric = "metric"

// DefaultExclude lists the One Call sections skipped by default to
// keep payloads small
var DefaultExclude = []string{"minutely", "alerts"}

// Getter performs a resilient GET and returns the response body
type Getter interface {
	Get(ctx context.Context, op, rawURL string, params map[string]string) ([]byte, error)
}

// Client fetches One Call-style weather payloads for a coordinate pair
type Client struct {
	baseURL string
	apiKey  string
	getter  Getter
	logger  *zap.Logger
}

// NewClient creates a weather client
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

// Options adjusts a snapshot fetch. Zero values select the defaults:
// metric units, minutely and alert sections excluded.
type Options struct {
	Units   string
	Exclude []string
}

// Snapshot fetches current conditions and the hourly series for the
// given coordinates. The payload structure is preserved as returned by
// the provider. Transient failures after retries are downgraded to a
// (nil, nil) outcome and logged at error severity; unexpected errors,
// such as malformed JSON, propagate.
func (c *Client) Snapshot(ctx context.Context, lat, lon float64, opts Options) (*model.WeatherSnapshot, error) {
	if lat < -90 || lat > 90 {
		return nil, model.NewValidationError("latitude", fmt.Sprintf("%v is outside [-90, 90]", lat))
	}
	if lon < -180 || lon > 180 {
		return nil, model.NewValidationError("longitude", fmt.Sprintf("%v is outside [-180, 180]", lon))
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, model.NewValidationError("api key", "API key is required for weather data")
	}

	units := opts.Units
	if units == "" {
		units = UnitsMetric
	}
	exclude := opts.Exclude
	if exclude == nil {
		exclude = DefaultExclude
	}

	params := map[string]string{
		"lat":     strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":     strconv.FormatFloat(lon, 'f', -1, 64),
		"appid":   c.apiKey,
		"units":   units,
		"exclude": strings.Join(exclude, ","),
	}

	body, err := c.getter.Get(ctx, "weather", c.baseURL+"/onecall", params)
	if err != nil {
		if request.IsTransient(err) {
			c.logger.Error("weather fetch failed",
				zap.Float64("lat", lat),
				zap.Float64("lon", lon),
				zap.Error(err),
			)
			return nil, nil
		}
		return nil, err
	}

	var snapshot model.WeatherSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse weather response: %w", err)
	}

	c.logger.Info("retrieved weather data",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.String("timezone", snapshot.Timezone),
		zap.Int("hourly_entries", len(snapshot.Hourly)),
	)
	return &snapshot, nil
}
