// Package api provides HTTP handlers for the planet API.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/artpar/swplanet/internal/core/domain"
	"github.com/artpar/swplanet/internal/core/validation"
	"github.com/artpar/swplanet/internal/shell/api/middleware"
	"github.com/artpar/swplanet/internal/shell/api/openapi"
	"github.com/artpar/swplanet/internal/shell/planets"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// =============================================================================
// Handler
// =============================================================================

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler provides HTTP handlers for the API.
type Handler struct {
	planets *planets.Service
	db      Pinger
	spec    *openapi.Generator
	logger  *slog.Logger
}

// NewHandler creates a new API handler.
// db is used by the readiness check and may be nil. version is reported
// in the OpenAPI document.
func NewHandler(svc *planets.Service, db Pinger, l *slog.Logger, version string) *Handler {
	if l == nil {
		l = slog.Default()
	}

	spec := openapi.NewGenerator(
		openapi.WithTitle("Planet API"),
		openapi.WithDescription("Create, list, look up and delete planets"),
		openapi.WithVersion(version),
	)
	spec.RegisterResource(openapi.ResourceInfo{
		Name:             "planets",
		Model:            PlanetResponse{},
		Input:            CreatePlanetRequest{},
		QueryParams:      []string{"terrain", "climate"},
		LookupField:      "name",
		SupportsFind:     true,
		SupportsCreate:   true,
		SupportsDelete:   true,
		SupportsByLookup: true,
	})

	return &Handler{
		planets: svc,
		db:      db,
		spec:    spec,
		logger:  l,
	}
}

// Routes returns the router with all routes configured.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewRequestLogger(middleware.LoggerConfig{
		Logger:    h.logger,
		SkipPaths: []string{"/health", "/ready"},
	}).Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(h.jsonContentType)
	r.Use(h.requestIDHeader)

	// Health endpoints
	r.Get("/health", h.handleHealth)
	r.Get("/ready", h.handleReady)
	r.Get("/openapi.json", h.spec.Handler())

	r.Route("/planets", func(r chi.Router) {
		r.Get("/", h.handleListPlanets)
		r.Post("/", h.handleCreatePlanet)
		r.Get("/name/{name}", h.handleGetPlanetByName)
		r.Get("/{id}", h.handleGetPlanet)
		r.Delete("/{id}", h.handleDeletePlanet)
	})

	return r
}

// =============================================================================
// Middleware
// =============================================================================

// jsonContentType sets Content-Type header to application/json.
func (h *Handler) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// requestIDHeader copies the request ID to the response header.
func (h *Handler) requestIDHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqID := chimiddleware.GetReqID(r.Context()); reqID != "" {
			w.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(w, r)
	})
}

// =============================================================================
// Health Handlers
// =============================================================================

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", "error", err)
			checks["database"] = "failed"
			h.writeJSON(w, http.StatusServiceUnavailable, ReadyResponse{
				Status: "not_ready",
				Checks: checks,
			})
			return
		}
	}
	checks["database"] = "ok"

	h.writeJSON(w, http.StatusOK, ReadyResponse{
		Status: "ready",
		Checks: checks,
	})
}

// =============================================================================
// Planet Handlers
// =============================================================================

func (h *Handler) handleListPlanets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	list, err := h.planets.List(r.Context(), query.Get("terrain"), query.Get("climate"))
	if err != nil {
		h.writeServiceError(w, "list planets", err)
		return
	}

	resp := make([]PlanetResponse, 0, len(list))
	for i := range list {
		resp = append(resp, planetToResponse(&list[i]))
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreatePlanet(w http.ResponseWriter, r *http.Request) {
	var req CreatePlanetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON", "invalid_json")
		return
	}

	// Validate required fields using core validation
	if field, msg := validation.ValidateCreatePlanetFields(req.Name, req.Climate, req.Terrain); field != "" {
		h.writeFieldError(w, http.StatusUnprocessableEntity, msg, "validation_error", field)
		return
	}

	planet, err := h.planets.Create(r.Context(), &domain.Planet{
		Name:    req.Name,
		Climate: req.Climate,
		Terrain: req.Terrain,
	})
	if err != nil {
		h.writeServiceError(w, "create planet", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, planetToResponse(planet))
}

func (h *Handler) handleGetPlanet(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParsePlanetID(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid planet id", "invalid_id")
		return
	}

	planet, found, err := h.planets.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "get planet", err)
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "planet not found", "planet_not_found")
		return
	}

	h.writeJSON(w, http.StatusOK, planetToResponse(planet))
}

func (h *Handler) handleGetPlanetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	// chi routes on RawPath when the path contains escaped reserved characters
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	planet, found, err := h.planets.GetByName(r.Context(), name)
	if err != nil {
		h.writeServiceError(w, "get planet by name", err)
		return
	}
	if !found {
		h.writeError(w, http.StatusNotFound, "planet not found", "planet_not_found")
		return
	}

	h.writeJSON(w, http.StatusOK, planetToResponse(planet))
}

func (h *Handler) handleDeletePlanet(w http.ResponseWriter, r *http.Request) {
	id, ok := validation.ParsePlanetID(chi.URLParam(r, "id"))
	if !ok {
		h.writeError(w, http.StatusBadRequest, "invalid planet id", "invalid_id")
		return
	}

	if err := h.planets.Remove(r.Context(), id); err != nil {
		h.writeServiceError(w, "delete planet", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Helpers
// =============================================================================

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message, code string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func (h *Handler) writeFieldError(w http.ResponseWriter, status int, message, code, field string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
		Field: field,
	})
}

func planetToResponse(p *domain.Planet) PlanetResponse {
	return PlanetResponse{
		ID:      p.ID,
		Name:    p.Name,
		Climate: p.Climate,
		Terrain: p.Terrain,
	}
}
