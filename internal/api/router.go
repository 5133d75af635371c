package api

import (
	"github.com/gorilla/mux"
	"github.com/tstockdale/weather-map/internal/service"
	"go.uber.org/zap"
)

// NewRouter creates a new HTTP router
func NewRouter(svc service.ServiceInterface, logger *zap.Logger) *mux.Router {
	handler := NewHandler(svc, logger)

	router := mux.NewRouter()

	// Dashboard page and health check
	router.HandleFunc("/", handler.Index).Methods("GET")
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/weather", handler.GetWeather).Methods("GET")
	v1.HandleFunc("/geocode", handler.GetGeocode).Methods("GET")
	v1.HandleFunc("/layers", handler.GetLayers).Methods("GET")

	return router
}
