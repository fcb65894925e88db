package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"complypath/internal/domain/models"
)

// AssessmentRepository handles assessment persistence
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// Create inserts a new assessment with its generated roadmap
func (r *AssessmentRepository) Create(ctx context.Context, a *models.Assessment) (*models.Assessment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	intakeJSON, err := json.Marshal(a.Intake)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal intake: %w", err)
	}
	roadmapJSON, err := json.Marshal(a.Roadmap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal roadmap: %w", err)
	}

	query := `
		INSERT INTO assessments (id, company_name, intake, roadmap, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = r.pool.QueryRow(ctx, query,
		a.ID, a.CompanyName, intakeJSON, roadmapJSON, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	return a, nil
}

// GetByID retrieves an assessment by ID, including its completed-task
// IDs. Returns (nil, nil) when no row matches.
func (r *AssessmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	query := `
		SELECT a.id, a.company_name, a.intake, a.roadmap, a.created_at, a.updated_at,
			   COALESCE(array_agg(t.task_id) FILTER (WHERE t.task_id IS NOT NULL), '{}')
		FROM assessments a
		LEFT JOIN completed_tasks t ON t.assessment_id = a.id
		WHERE a.id = $1
		GROUP BY a.id`

	a := &models.Assessment{}
	var intakeJSON, roadmapJSON []byte

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.CompanyName, &intakeJSON, &roadmapJSON,
		&a.CreatedAt, &a.UpdatedAt, &a.CompletedTasks,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}

	if err := json.Unmarshal(intakeJSON, &a.Intake); err != nil {
		return nil, fmt.Errorf("failed to unmarshal intake: %w", err)
	}
	if len(roadmapJSON) > 0 {
		a.Roadmap = &models.Roadmap{}
		if err := json.Unmarshal(roadmapJSON, a.Roadmap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal roadmap: %w", err)
		}
	}

	a.ApplyCompletedTasks(a.CompletedTasks)
	return a, nil
}

// List retrieves assessment summaries, newest first
func (r *AssessmentRepository) List(ctx context.Context, limit, offset int) ([]models.AssessmentSummary, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id, company_name,
			   roadmap->'scope'->>'type',
			   (roadmap->>'maturity_score')::int,
			   roadmap->>'risk_level',
			   created_at
		FROM assessments
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var summaries []models.AssessmentSummary
	for rows.Next() {
		var s models.AssessmentSummary
		var soc2Type, riskLevel string
		if err := rows.Scan(&s.ID, &s.CompanyName, &soc2Type, &s.MaturityScore, &riskLevel, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment row: %w", err)
		}
		s.SOC2Type = models.SOC2Type(soc2Type)
		s.RiskLevel = models.ParseRiskLevel(riskLevel)
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Delete removes an assessment and its completed-task rows
func (r *AssessmentRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// SetTaskComplete marks a roadmap task as completed. Idempotent.
func (r *AssessmentRepository) SetTaskComplete(ctx context.Context, assessmentID uuid.UUID, taskID string) error {
	query := `
		INSERT INTO completed_tasks (assessment_id, task_id, completed_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (assessment_id, task_id) DO NOTHING`

	if _, err := r.pool.Exec(ctx, query, assessmentID, taskID); err != nil {
		return fmt.Errorf("failed to mark task complete: %w", err)
	}
	return nil
}

// ClearTaskComplete unmarks a completed task. Idempotent.
func (r *AssessmentRepository) ClearTaskComplete(ctx context.Context, assessmentID uuid.UUID, taskID string) error {
	query := `DELETE FROM completed_tasks WHERE assessment_id = $1 AND task_id = $2`
	if _, err := r.pool.Exec(ctx, query, assessmentID, taskID); err != nil {
		return fmt.Errorf("failed to unmark task: %w", err)
	}
	return nil
}

// CompletedTasks returns the completed task IDs for an assessment
func (r *AssessmentRepository) CompletedTasks(ctx context.Context, assessmentID uuid.UUID) ([]string, error) {
	query := `
		SELECT task_id FROM completed_tasks
		WHERE assessment_id = $1
		ORDER BY completed_at`

	rows, err := r.pool.Query(ctx, query, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
