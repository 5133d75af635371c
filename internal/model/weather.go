package model

// WeatherSnapshot represents a One Call-style weather payload: current
// conditions plus an hourly forecast series for one coordinate pair.
// Constructed fresh per request and discarded after rendering.
type WeatherSnapshot struct {
	Timezone       string               `json:"timezone"`
	TimezoneOffset int                  `json:"timezone_offset"`
	Current        CurrentConditions    `json:"current"`
	Hourly         []HourlyForecastEntry `json:"hourly,omitempty"`
}

// CurrentConditions represents the current-conditions block
type CurrentConditions struct {
	Dt        int64       `json:"dt"`
	Sunrise   int64       `json:"sunrise"`
	Sunset    int64       `json:"sunset"`
	Temp      float64     `json:"temp"`
	FeelsLike float64     `json:"feels_like"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	UVI       float64     `json:"uvi"`
	Clouds    int         `json:"clouds"`
	WindSpeed float64     `json:"wind_speed"`
	WindGust  float64     `json:"wind_gust"`
	WindDeg   int         `json:"wind_deg"`
	Weather   []Condition `json:"weather"`
	Rain      *Rain       `json:"rain,omitempty"`
}

// HourlyForecastEntry represents one upcoming hour, chronologically
// ordered by the provider
type HourlyForecastEntry struct {
	Dt        int64       `json:"dt"`
	Temp      float64     `json:"temp"`
	FeelsLike float64     `json:"feels_like"`
	Pressure  int         `json:"pressure"`
	Humidity  int         `json:"humidity"`
	UVI       float64     `json:"uvi"`
	WindSpeed float64     `json:"wind_speed"`
	WindGust  float64     `json:"wind_gust"`
	WindDeg   int         `json:"wind_deg"`
	Weather   []Condition `json:"weather"`
	Rain      *Rain       `json:"rain,omitempty"`
	Pop       float64     `json:"pop"`
}

// Condition represents a textual weather condition
type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Rain represents accumulated precipitation volume
type Rain struct {
	OneHour float64 `json:"1h"`
}

// Description returns the first condition description, or ""
func (c CurrentConditions) Description() string {
	if len(c.Weather) == 0 {
		return ""
	}
	return c.Weather[0].Description
}

// Description returns the first condition description, or ""
func (h HourlyForecastEntry) Description() string {
	if len(h.Weather) == 0 {
		return ""
	}
	return h.Weather[0].Description
}
