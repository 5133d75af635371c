// Package maptile builds OpenWeatherMap tile overlay URLs for the
// dashboard map.
package maptile

import (
	"fmt"

	"github.com/tstockdale/weather-map/internal/convert"
	"github.com/tstockdale/weather-map/internal/model"
)

const (
	tileURLTemplate = "http://tile.openweathermap.org/map/%s/%d/%d/%d.png?appid=%s"

	// MinZoom and MaxZoom bound the zoom levels offered by the UI
	MinZoom = 0
	MaxZoom = 18

	// DefaultZoom is the city-level view used when no zoom is selected
	DefaultZoom = 10

	// DefaultLayer is the overlay shown when no layer is selected
	DefaultLayer = "precipitation_new"
)

// Layer describes one weather overlay offered by the tile server
type Layer struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Layers lists the supported weather overlays in display order
var Layers = []Layer{
	{Key: "precipitation_new", Name: "Precipitation"},
	{Key: "temp_new", Name: "Temperature"},
	{Key: "clouds_new", Name: "Clouds"},
	{Key: "wind_new", Name: "Wind Speed"},
	{Key: "pressure_new", Name: "Sea Level Pressure"},
}

// ValidLayer reports whether key names a supported overlay
func ValidLayer(key string) bool {
	for _, l := range Layers {
		if l.Key == key {
			return true
		}
	}
	return false
}

// ClampZoom forces zoom into [MinZoom, MaxZoom]
func ClampZoom(zoom int) int {
	if zoom < MinZoom {
		return MinZoom
	}
	if zoom > MaxZoom {
		return MaxZoom
	}
	return zoom
}

// Overlay describes the tile overlay for one coordinate pair
type Overlay struct {
	Layer   string               `json:"layer"`
	Zoom    int                  `json:"zoom"`
	Tile    model.TileCoordinate `json:"tile"`
	TileURL string               `json:"tile_url"`
}

// NewOverlay builds the overlay for the given coordinates. Zoom is
// clamped to the supported range; an unknown layer falls back to the
// default overlay.
func NewOverlay(lat, lon float64, layer string, zoom int, apiKey string) Overlay {
	if !ValidLayer(layer) {
		layer = DefaultLayer
	}
	zoom = ClampZoom(zoom)

	tile := convert.TileCoordinates(lat, lon, zoom)
	return Overlay{
		Layer:   layer,
		Zoom:    zoom,
		Tile:    tile,
		TileURL: fmt.Sprintf(tileURLTemplate, layer, zoom, tile.X, tile.Y, apiKey),
	}
}
