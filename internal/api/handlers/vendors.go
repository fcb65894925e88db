package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"complypath/internal/config"
	"complypath/internal/domain/models"
	"complypath/internal/domain/services"
	"complypath/internal/infrastructure/cache"
	"complypath/internal/infrastructure/database/repository"
	"complypath/pkg/logger"
)

// VendorsHandler serves auto-populated vendor inventories
type VendorsHandler struct {
	catalog *services.VendorCatalog
	repos   *repository.Repositories
	cache   *cache.RedisCache
	cfg     *config.Config
	logger  *logger.Logger
}

// NewVendorsHandler creates a new VendorsHandler
func NewVendorsHandler(catalog *services.VendorCatalog, repos *repository.Repositories, c *cache.RedisCache, cfg *config.Config, log *logger.Logger) *VendorsHandler {
	return &VendorsHandler{
		catalog: catalog,
		repos:   repos,
		cache:   c,
		cfg:     cfg,
		logger:  log.WithComponent("vendors"),
	}
}

// ListForAssessment handles GET /api/v1/assessments/{id}/vendors. The
// inventory is derived from the stored intake and cached briefly; the
// short TTL keeps catalog updates surfacing without a rebuild per request.
func (h *VendorsHandler) ListForAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid assessment id")
		return
	}

	if h.cache != nil {
		var cached []models.Vendor
		if err := h.cache.GetCachedVendors(r.Context(), id.String(), &cached); err == nil {
			h.respondVendors(w, id, cached)
			return
		} else if !cache.IsCacheMiss(err) {
			h.logger.Warn().Err(err).Msg("vendor cache read failed")
		}
	}

	assessment, err := h.repos.Assessments.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get assessment")
		h.respondError(w, http.StatusInternalServerError, "failed to fetch assessment")
		return
	}
	if assessment == nil {
		h.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}

	vendors := h.catalog.AutoPopulate(&assessment.Intake)

	if h.cache != nil {
		if err := h.cache.CacheVendors(r.Context(), id.String(), vendors, h.cfg.Cache.VendorTTL); err != nil {
			h.logger.Warn().Err(err).Msg("failed to cache vendor inventory")
		}
	}

	h.respondVendors(w, id, vendors)
}

func (h *VendorsHandler) respondVendors(w http.ResponseWriter, id uuid.UUID, vendors []models.Vendor) {
	h.respondJSON(w, http.StatusOK, map[string]any{
		"assessment_id": id,
		"vendors":       vendors,
		"total":         len(vendors),
	})
}

// respondJSON sends a JSON response
func (h *VendorsHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *VendorsHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
