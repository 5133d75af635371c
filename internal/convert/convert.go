// Package convert holds the stateless unit and coordinate conversions
// used to turn raw API fields into display-ready values and map tile
// addresses.
package convert

import (
	"fmt"
	"math"
	"time"

	"github.com/tstockdale/weather-map/internal/model"
)

// tileSize is the side of a slippy-map tile in pixels
const tileSize = 256

// timeLayout mirrors the dashboard's month-day-year wall-clock format
const timeLayout = "01-02-2006:15-04-05-MST"

// CelsiusToFahrenheit converts a temperature in Celsius to Fahrenheit
func CelsiusToFahrenheit(celsius float64) float64 {
	return celsius*9.0/5.0 + 32.0
}

// FahrenheitToCelsius converts a temperature in Fahrenheit to Celsius
func FahrenheitToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32.0) * 5.0 / 9.0
}

// MpsToMph converts a speed in meters per second to miles per hour.
// 1 m/s = 3.28084 ft/m * 1/5280 mi/ft * 3600 s/h = 2.23694 mph.
func MpsToMph(mps float64) float64 {
	return mps * 2.23694
}

// UVIRisk maps a UV index to its qualitative risk category. Ranges are
// half-open on the lower side: [0,3) Low, [3,6) Moderate, [6,8) High,
// [8,11) Very High, [11,inf) Extreme. Out-of-domain input is Unknown.
func UVIRisk(uvi float64) string {
	switch {
	case math.IsNaN(uvi) || uvi < 0:
		return "Unknown"
	case uvi < 3:
		return "Low"
	case uvi < 6:
		return "Moderate"
	case uvi < 8:
		return "High"
	case uvi < 11:
		return "Very High"
	default:
		return "Extreme"
	}
}

// FormatUnix renders a Unix timestamp as local wall-clock time in the
// named IANA zone, honoring the zone's offset at that instant
// including daylight-saving rules.
func FormatUnix(unix int64, timezone string) (string, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return "", fmt.Errorf("unknown timezone %q: %w", timezone, err)
	}
	return time.Unix(unix, 0).In(loc).Format(timeLayout), nil
}

// TileCoordinates converts latitude/longitude to Web Mercator tile
// indices at the given zoom level using the standard slippy-map
// formula. The result is valid in [0, 2^zoom) for normal latitudes;
// polar latitudes are deliberately not clamped, so values near +-90
// degrees can fall outside the nominal range.
func TileCoordinates(lat, lon float64, zoom int) model.TileCoordinate {
	n := math.Exp2(float64(zoom))
	latRad := lat * math.Pi / 180

	x := int(n * (lon + 180) / 360)
	y := int(n * (1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2)

	return model.TileCoordinate{X: x, Y: y, Zoom: zoom}
}

// WorldCoordinates converts latitude/longitude to Web Mercator pixel
// coordinates at the given zoom level, with 256px tiles.
func WorldCoordinates(lat, lon float64, zoom int) (float64, float64) {
	x := (lon + 180) / 360

	sinLat := math.Sin(lat * math.Pi / 180)
	y := 0.5 - math.Log((1+sinLat)/(1-sinLat))/(4*math.Pi)

	scale := tileSize * math.Exp2(float64(zoom))
	return x * scale, y * scale
}
