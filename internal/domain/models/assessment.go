package models

import (
	"time"

	"github.com/google/uuid"
)

// Assessment is a stored intake together with its generated roadmap.
// The roadmap is recomputed by the engine; completed-task state lives
// beside it rather than inside it.
type Assessment struct {
	ID             uuid.UUID `json:"id"`
	CompanyName    string    `json:"company_name"`
	Intake         Intake    `json:"intake"`
	Roadmap        *Roadmap  `json:"roadmap,omitempty"`
	CompletedTasks []string  `json:"completed_tasks,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AssessmentSummary is the list-view projection of an assessment
type AssessmentSummary struct {
	ID            uuid.UUID `json:"id"`
	CompanyName   string    `json:"company_name"`
	SOC2Type      SOC2Type  `json:"soc2_type"`
	MaturityScore int       `json:"maturity_score"`
	RiskLevel     RiskLevel `json:"risk_level"`
	CreatedAt     time.Time `json:"created_at"`
}

// ApplyCompletedTasks marks roadmap tasks whose IDs appear in ids as
// completed. The roadmap itself is always generated with Completed=false.
func (a *Assessment) ApplyCompletedTasks(ids []string) {
	if a.Roadmap == nil || len(ids) == 0 {
		return
	}
	done := make(map[string]bool, len(ids))
	for _, id := range ids {
		done[id] = true
	}
	for si := range a.Roadmap.Sprints {
		for ti := range a.Roadmap.Sprints[si].Tasks {
			t := &a.Roadmap.Sprints[si].Tasks[ti]
			if done[t.ID] {
				t.Completed = true
			}
		}
	}
}
