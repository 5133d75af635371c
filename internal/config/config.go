package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server ServerConfig
	API    APIConfig
	Vault  VaultConfig
	Map    MapConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
}

// APIConfig holds OpenWeatherMap endpoint and retry configuration
type APIConfig struct {
	GeocodingBaseURL string
	WeatherBaseURL   string
	GeocodingTimeout time.Duration
	WeatherTimeout   time.Duration
	MaxAttempts      int
	RetryDelay       time.Duration
}

// VaultConfig holds settings for the API key lookup. When Address is
// empty the key is read from the OWM_API_KEY environment variable.
type VaultConfig struct {
	Address    string
	Token      string
	Mount      string
	SecretPath string
	SecretKey  string
}

// MapConfig holds map rendering defaults
type MapConfig struct {
	DefaultZoom  int
	DefaultLayer string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		API: APIConfig{
			GeocodingBaseURL: getEnv("OWM_GEOCODING_URL", "https://api.openweathermap.org/geo/1.0"),
			WeatherBaseURL:   getEnv("OWM_WEATHER_URL", "https://api.openweathermap.org/data/3.0"),
			GeocodingTimeout: getEnvAsDuration("OWM_GEOCODING_TIMEOUT", 10*time.Second),
			WeatherTimeout:   getEnvAsDuration("OWM_WEATHER_TIMEOUT", 15*time.Second),
			MaxAttempts:      getEnvAsInt("OWM_MAX_ATTEMPTS", 3),
			RetryDelay:       getEnvAsDuration("OWM_RETRY_DELAY", time.Second),
		},
		Vault: VaultConfig{
			Address:    getEnv("VAULT_URL", ""),
			Token:      getEnv("VAULT_TOKEN", ""),
			Mount:      getEnv("VAULT_MOUNT", "secret"),
			SecretPath: getEnv("SECRET_PATH", "openweathermap_api"),
			SecretKey:  getEnv("SECRET_KEY", "key"),
		},
		Map: MapConfig{
			DefaultZoom:  getEnvAsInt("MAP_DEFAULT_ZOOM", 10),
			DefaultLayer: getEnv("MAP_DEFAULT_LAYER", "precipitation_new"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
