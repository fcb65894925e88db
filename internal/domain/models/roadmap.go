package models

import "time"

// RiskLevel represents an ordinal risk classification
type RiskLevel string

const (
	RiskCritical RiskLevel = "critical"
	RiskHigh     RiskLevel = "high"
	RiskMedium   RiskLevel = "medium"
	RiskLow      RiskLevel = "low"
)

// Weight returns a numeric rank for sorting, critical first
func (r RiskLevel) Weight() int {
	switch r {
	case RiskCritical:
		return 0
	case RiskHigh:
		return 1
	case RiskMedium:
		return 2
	case RiskLow:
		return 3
	default:
		return 4
	}
}

// String returns the string representation of RiskLevel
func (r RiskLevel) String() string {
	return string(r)
}

// ParseRiskLevel parses a string into RiskLevel
func ParseRiskLevel(s string) RiskLevel {
	switch s {
	case "critical":
		return RiskCritical
	case "high":
		return RiskHigh
	case "medium":
		return RiskMedium
	case "low":
		return RiskLow
	default:
		return RiskLevel(s)
	}
}

// TaskCategory classifies remediation work
type TaskCategory string

const (
	TaskPolicy    TaskCategory = "policy"
	TaskTechnical TaskCategory = "technical"
	TaskProcess   TaskCategory = "process"
	TaskEvidence  TaskCategory = "evidence"
)

// TaskEffort buckets the expected effort for a task
type TaskEffort string

const (
	EffortHours TaskEffort = "hours"
	EffortDays  TaskEffort = "days"
	EffortWeeks TaskEffort = "weeks"
)

// Task is one remediation work item. Completed is always false in engine
// output; completion state is tracked by the caller, never fed back in.
type Task struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Description      string       `json:"description"`
	Category         TaskCategory `json:"category"`
	Priority         RiskLevel    `json:"priority"`
	Effort           TaskEffort   `json:"effort"`
	ControlReference string       `json:"control_reference"`
	Completed        bool         `json:"completed"`
	Why              string       `json:"why"` // personalized rationale, not boilerplate
}

// Sprint is a numbered bucket of remediation tasks
type Sprint struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Weeks  string `json:"weeks"` // e.g. "Weeks 1–2"
	Focus  string `json:"focus"`
	Tasks  []Task `json:"tasks"`
}

// GapItem records one unmet control condition
type GapItem struct {
	Control       string    `json:"control"` // e.g. "CC6.1 – Logical Access Controls"
	CurrentState  string    `json:"current_state"`
	RequiredState string    `json:"required_state"`
	Severity      RiskLevel `json:"severity"`
}

// PolicyItem records one required policy and whether it already exists
type PolicyItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Exists      bool   `json:"exists"`
	Required    bool   `json:"required"`
	Conditional string `json:"conditional,omitempty"` // reason a conditional policy was added
}

// EvidenceCategory classifies evidence artifacts
type EvidenceCategory string

const (
	EvidenceAccess     EvidenceCategory = "access"
	EvidenceChange     EvidenceCategory = "change"
	EvidenceMonitoring EvidenceCategory = "monitoring"
	EvidenceTraining   EvidenceCategory = "training"
	EvidenceVendor     EvidenceCategory = "vendor"
	EvidenceBackup     EvidenceCategory = "backup"
	EvidencePolicy     EvidenceCategory = "policy"
)

// EvidenceItem is one artifact the auditor will request
type EvidenceItem struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	CollectionMethod string           `json:"collection_method"` // stack-specific how-to
	DaysRequired     int              `json:"days_required"`     // 0 = point-in-time, 90 = rolling window
	AlreadyHave      bool             `json:"already_have"`
	Category         EvidenceCategory `json:"category"`
}

// RiskItem is one narrative risk surfaced to the company
type RiskItem struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Severity        RiskLevel `json:"severity"`
	Remediation     string    `json:"remediation"`
	SprintReference int       `json:"sprint_reference,omitempty"` // which sprint addresses it
}

// ScopeDecision captures what the audit will cover and why
type ScopeDecision struct {
	Type               SOC2Type         `json:"type"`
	Criteria           []TrustCriterion `json:"criteria"`
	Justification      string           `json:"justification"`
	SystemsInScope     []string         `json:"systems_in_scope"`
	EstimatedAuditCost string           `json:"estimated_audit_cost"`
}

// Roadmap is the complete engine output for one intake record. It is
// produced fresh on every invocation and holds no reference to the input.
type Roadmap struct {
	MaturityScore       int            `json:"maturity_score"` // 0-100
	RiskLevel           RiskLevel      `json:"risk_level"`
	RecommendedTimeline int            `json:"recommended_timeline"` // weeks to audit-ready
	Sprints             []Sprint       `json:"sprints"`
	Gaps                []GapItem      `json:"gaps"`
	Policies            []PolicyItem   `json:"policies"`
	Evidence            []EvidenceItem `json:"evidence"`
	Risks               []RiskItem     `json:"risks"`
	Scope               ScopeDecision  `json:"scope"`
	GeneratedAt         time.Time      `json:"generated_at"`
}
