package handlers

import (
	"complypath/internal/config"
	"complypath/internal/domain/engine"
	"complypath/internal/domain/services"
	"complypath/internal/infrastructure/cache"
	"complypath/internal/infrastructure/database"
	"complypath/internal/infrastructure/database/repository"
	"complypath/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health      *HealthHandler
	Assessments *AssessmentsHandler
	Vendors     *VendorsHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine  *engine.Engine
	Vendors *services.VendorCatalog
	Cache   *cache.RedisCache
	DB      *database.PostgresDB
	Repos   *repository.Repositories
	Config  *config.Config
	Logger  *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:      NewHealthHandler(deps.DB, deps.Cache, deps.Logger),
		Assessments: NewAssessmentsHandler(deps.Engine, deps.Repos, deps.Cache, deps.Config, deps.Logger),
		Vendors:     NewVendorsHandler(deps.Vendors, deps.Repos, deps.Cache, deps.Config, deps.Logger),
	}
}
