package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"complypath/internal/config"
	"complypath/internal/domain/engine"
	"complypath/internal/domain/models"
	"complypath/internal/infrastructure/cache"
	"complypath/internal/infrastructure/database/repository"
	"complypath/pkg/logger"
)

// AssessmentsHandler handles assessment and roadmap endpoints
type AssessmentsHandler struct {
	engine *engine.Engine
	repos  *repository.Repositories
	cache  *cache.RedisCache
	cfg    *config.Config
	logger *logger.Logger
}

// NewAssessmentsHandler creates a new AssessmentsHandler
func NewAssessmentsHandler(eng *engine.Engine, repos *repository.Repositories, c *cache.RedisCache, cfg *config.Config, log *logger.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{
		engine: eng,
		repos:  repos,
		cache:  c,
		cfg:    cfg,
		logger: log.WithComponent("assessments"),
	}
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Data   any `json:"data"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Create handles POST /api/v1/assessments. It validates the intake,
// generates the roadmap and persists both.
func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var intake models.Intake
	if err := json.NewDecoder(r.Body).Decode(&intake); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := intake.Validate(); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	roadmap := h.engine.GenerateRoadmap(&intake)

	assessment := &models.Assessment{
		CompanyName: intake.CompanyInfo.CompanyName,
		Intake:      intake,
		Roadmap:     roadmap,
	}

	assessment, err := h.repos.Assessments.Create(r.Context(), assessment)
	if err != nil {
		h.logger.WithError(err).Error().Msg("failed to create assessment")
		h.respondError(w, http.StatusInternalServerError, "failed to store assessment")
		return
	}

	log := h.logger.WithAssessmentID(assessment.ID.String())

	if h.cache != nil {
		if err := h.cache.CacheRoadmap(r.Context(), assessment.ID.String(), roadmap, h.cfg.Cache.RoadmapTTL); err != nil {
			log.WithError(err).Warn().Msg("failed to cache roadmap")
		}
	}

	log.Info().
		Str("company", intake.CompanyInfo.CompanyName).
		Int("maturity_score", roadmap.MaturityScore).
		Str("risk_level", string(roadmap.RiskLevel)).
		Msg("assessment created")

	h.respondJSON(w, http.StatusCreated, assessment)
}

// Preview handles POST /api/v1/roadmap/preview. It generates a roadmap
// without persisting anything.
func (h *AssessmentsHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var intake models.Intake
	if err := json.NewDecoder(r.Body).Decode(&intake); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := intake.Validate(); err != nil {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, h.engine.GenerateRoadmap(&intake))
}

// List handles GET /api/v1/assessments
func (h *AssessmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	summaries, err := h.repos.Assessments.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list assessments")
		h.respondError(w, http.StatusInternalServerError, "failed to fetch assessments")
		return
	}

	h.respondJSON(w, http.StatusOK, ListResponse{
		Data:   summaries,
		Limit:  limit,
		Offset: offset,
	})
}

// Get handles GET /api/v1/assessments/{id}
func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	assessment, ok := h.fetchAssessment(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, http.StatusOK, assessment)
}

// Delete handles DELETE /api/v1/assessments/{id}
func (h *AssessmentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	deleted, err := h.repos.Assessments.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to delete assessment")
		h.respondError(w, http.StatusInternalServerError, "failed to delete assessment")
		return
	}
	if !deleted {
		h.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateAssessment(r.Context(), id.String()); err != nil {
			h.logger.Warn().Err(err).Msg("failed to invalidate assessment cache")
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRoadmap handles GET /api/v1/assessments/{id}/roadmap. Serves from
// cache when possible; completed-task state is applied on top either way.
func (h *AssessmentsHandler) GetRoadmap(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if h.cache != nil {
		var roadmap models.Roadmap
		if err := h.cache.GetCachedRoadmap(r.Context(), id.String(), &roadmap); err == nil {
			completed, err := h.repos.Assessments.CompletedTasks(r.Context(), id)
			if err == nil {
				a := models.Assessment{Roadmap: &roadmap}
				a.ApplyCompletedTasks(completed)
				h.respondJSON(w, http.StatusOK, &roadmap)
				return
			}
		} else if !cache.IsCacheMiss(err) {
			h.logger.Warn().Err(err).Msg("roadmap cache read failed")
		}
	}

	assessment, ok := h.fetchAssessment(w, r)
	if !ok {
		return
	}
	if assessment.Roadmap == nil {
		h.respondError(w, http.StatusNotFound, "roadmap not found")
		return
	}

	h.respondJSON(w, http.StatusOK, assessment.Roadmap)
}

// CompleteTask handles PUT /api/v1/assessments/{id}/tasks/{taskID}/complete
func (h *AssessmentsHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	h.setTaskState(w, r, true)
}

// UncompleteTask handles DELETE /api/v1/assessments/{id}/tasks/{taskID}/complete
func (h *AssessmentsHandler) UncompleteTask(w http.ResponseWriter, r *http.Request) {
	h.setTaskState(w, r, false)
}

func (h *AssessmentsHandler) setTaskState(w http.ResponseWriter, r *http.Request, complete bool) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		h.respondError(w, http.StatusBadRequest, "missing task id")
		return
	}

	log := h.logger.WithAssessmentID(id.String())

	assessment, err := h.repos.Assessments.GetByID(r.Context(), id)
	if err != nil {
		log.WithError(err).Error().Msg("failed to load assessment")
		h.respondError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}
	if assessment == nil {
		h.respondError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if !roadmapHasTask(assessment.Roadmap, taskID) {
		h.respondError(w, http.StatusNotFound, "task not found in roadmap")
		return
	}

	if complete {
		err = h.repos.Assessments.SetTaskComplete(r.Context(), id, taskID)
	} else {
		err = h.repos.Assessments.ClearTaskComplete(r.Context(), id, taskID)
	}
	if err != nil {
		log.WithError(err).Error().Str("task_id", taskID).Msg("failed to update task state")
		h.respondError(w, http.StatusInternalServerError, "failed to update task state")
		return
	}

	completed, err := h.repos.Assessments.CompletedTasks(r.Context(), id)
	if err != nil {
		log.WithError(err).Error().Msg("failed to load completed tasks")
		h.respondError(w, http.StatusInternalServerError, "failed to load completed tasks")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"task_id":         taskID,
		"completed":       complete,
		"completed_tasks": completed,
	})
}

// fetchAssessment loads the assessment from the path ID, writing the
// error response itself on failure.
func (h *AssessmentsHandler) fetchAssessment(w http.ResponseWriter, r *http.Request) (*models.Assessment, bool) {
	id, ok := h.parseID(w, r)
	if !ok {
		return nil, false
	}

	assessment, err := h.repos.Assessments.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to get assessment")
		h.respondError(w, http.StatusInternalServerError, "failed to fetch assessment")
		return nil, false
	}
	if assessment == nil {
		h.respondError(w, http.StatusNotFound, "assessment not found")
		return nil, false
	}

	return assessment, true
}

func (h *AssessmentsHandler) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid assessment id")
		return uuid.Nil, false
	}
	return id, true
}

func roadmapHasTask(roadmap *models.Roadmap, taskID string) bool {
	if roadmap == nil {
		return false
	}
	for _, sprint := range roadmap.Sprints {
		for _, task := range sprint.Tasks {
			if task.ID == taskID {
				return true
			}
		}
	}
	return false
}

// respondJSON sends a JSON response
func (h *AssessmentsHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func (h *AssessmentsHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
