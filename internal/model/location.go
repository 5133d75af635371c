package model

import "strings"

// LocationQuery represents a parsed free-text location input
type LocationQuery struct {
	City    string
	State   string
	Country string
}

// QueryString returns the comma-joined query sent to the geocoding API,
// built from the non-blank parts in city, state, country order
func (q LocationQuery) QueryString() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{q.City, q.State, q.Country} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ",")
}

// LocationCandidate represents a single geocoding result
type LocationCandidate struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country,omitempty"`
	// Rank is the position in the provider's result list (0-based).
	// Provider order is relevance-ranked and preserved as-is.
	Rank int `json:"rank"`
}

// Coordinate represents geographic coordinates
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// TileCoordinate addresses a slippy-map tile
type TileCoordinate struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Zoom int `json:"zoom"`
}
