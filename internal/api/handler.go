package api

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/tstockdale/weather-map/internal/maptile"
	"github.com/tstockdale/weather-map/internal/model"
	"github.com/tstockdale/weather-map/internal/service"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Handler handles HTTP requests
type Handler struct {
	service   service.ServiceInterface
	templates *template.Template
	logger    *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(svc service.ServiceInterface, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		service:   svc,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

// Index handles GET / and serves the dashboard page
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Layers      []maptile.Layer
		DefaultZoom int
	}{
		Layers:      maptile.Layers,
		DefaultZoom: maptile.DefaultZoom,
	}
	if err := h.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		h.logger.Error("failed to render index", zap.Error(err))
	}
}

// GetWeather handles GET /api/v1/weather
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	opts := service.ReportOptions{
		Layer: r.URL.Query().Get("layer"),
	}
	if zoomStr := r.URL.Query().Get("zoom"); zoomStr != "" {
		zoom, err := strconv.Atoi(zoomStr)
		if err != nil {
			http.Error(w, "invalid zoom parameter", http.StatusBadRequest)
			return
		}
		opts.Zoom = &zoom
	}

	report, err := h.service.CityReport(r.Context(), q, opts)
	if err != nil {
		h.writeReportError(w, q, err)
		return
	}

	writeJSON(w, h.logger, report)
}

// GetGeocode handles GET /api/v1/geocode
func (h *Handler) GetGeocode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		http.Error(w, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	candidates, err := h.service.Geocode(r.Context(), q, limit)
	if err != nil {
		var ve *model.ValidationError
		if errors.As(err, &ve) {
			http.Error(w, ve.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("geocode request failed", zap.String("q", q), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if len(candidates) == 0 {
		http.Error(w, "location not found", http.StatusNotFound)
		return
	}

	writeJSON(w, h.logger, map[string]interface{}{"results": candidates})
}

// GetLayers handles GET /api/v1/layers
func (h *Handler) GetLayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, map[string]interface{}{
		"layers":       maptile.Layers,
		"default":      maptile.DefaultLayer,
		"default_zoom": maptile.DefaultZoom,
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// writeReportError maps soft lookup outcomes to user-facing messages
// and everything else to a generic failure without crashing
func (h *Handler) writeReportError(w http.ResponseWriter, q string, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrLocationNotFound):
		http.Error(w, "location not found", http.StatusNotFound)
	case errors.Is(err, service.ErrWeatherUnavailable):
		http.Error(w, "weather data unavailable", http.StatusBadGateway)
	default:
		h.logger.Error("weather request failed", zap.String("q", q), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
