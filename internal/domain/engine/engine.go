// Package engine implements the compliance rules engine: a pure,
// deterministic mapping from a completed self-assessment intake to a
// SOC 2 readiness roadmap. The engine performs no I/O, keeps no state
// between invocations, and never fails on a validated intake — every
// branch has a defined fallback.
package engine

import (
	"time"

	"complypath/internal/domain/models"
)

// Engine generates compliance roadmaps from intake records
type Engine struct {
	now func() time.Time
}

// Option configures an Engine
type Option func(*Engine)

// WithClock overrides the timestamp source, primarily for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateRoadmap runs the full assessment pipeline over one intake record
// and returns a fresh roadmap. Identical intakes yield identical roadmaps
// apart from the GeneratedAt timestamp.
func (e *Engine) GenerateRoadmap(in *models.Intake) *models.Roadmap {
	score := maturityScore(in)
	level := classifyRisk(score)
	weeks := estimateTimeline(in, score)

	sprints, themes := buildSprints(in, weeks)

	// Risk rules carry theme indices; resolve them against the assembled
	// plan so references survive the contiguous renumbering. A reference
	// to a theme with no sprint clears to zero.
	risks := buildRisks(in)
	for i := range risks {
		risks[i].SprintReference = themes[risks[i].SprintReference]
	}

	return &models.Roadmap{
		MaturityScore:       score,
		RiskLevel:           level,
		RecommendedTimeline: weeks,
		Sprints:             sprints,
		Gaps:                buildGaps(in),
		Policies:            buildPolicies(in),
		Evidence:            buildEvidence(in),
		Risks:               risks,
		Scope:               buildScope(in),
		GeneratedAt:         e.now().UTC(),
	}
}
