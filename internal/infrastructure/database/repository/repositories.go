package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	Assessments *AssessmentRepository
}

// New creates all repositories backed by the given pool
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Assessments: NewAssessmentRepository(pool),
	}
}

// EnsureSchema creates the tables the repositories need if they do not
// already exist. Intake and roadmap documents are stored as JSONB so the
// engine's output shape can evolve without migrations.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			id           UUID PRIMARY KEY,
			company_name TEXT NOT NULL,
			intake       JSONB NOT NULL,
			roadmap      JSONB,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS completed_tasks (
			assessment_id UUID NOT NULL REFERENCES assessments(id) ON DELETE CASCADE,
			task_id       TEXT NOT NULL,
			completed_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (assessment_id, task_id)
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_created_at
			ON assessments (created_at DESC);`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
