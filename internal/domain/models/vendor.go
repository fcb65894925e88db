package models

import "time"

// VendorCategory classifies what a third-party vendor does
type VendorCategory string

const (
	VendorInfrastructure VendorCategory = "Infrastructure"
	VendorPayment        VendorCategory = "Payment"
	VendorIdentity       VendorCategory = "Identity"
	VendorCommunication  VendorCategory = "Communication"
	VendorSecurity       VendorCategory = "Security"
	VendorBusinessOps    VendorCategory = "Business Ops"
)

// VendorRiskTier ranks how much a vendor compromise would hurt
type VendorRiskTier string

const (
	VendorTierCritical VendorRiskTier = "critical"
	VendorTierHigh     VendorRiskTier = "high"
	VendorTierMedium   VendorRiskTier = "medium"
	VendorTierLow      VendorRiskTier = "low"
)

// AssessmentStatus tracks where a vendor sits in the review cycle
type AssessmentStatus string

const (
	AssessmentDone       AssessmentStatus = "assessed"
	AssessmentNeedsWork  AssessmentStatus = "needs-review"
	AssessmentNotStarted AssessmentStatus = "not-started"
)

// Vendor is one third-party entry in the vendor inventory
type Vendor struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Website             string           `json:"website"`
	Category            VendorCategory   `json:"category"`
	RiskTier            VendorRiskTier   `json:"risk_tier"`
	DataAccess          []string         `json:"data_access"` // e.g. ["PII", "source code"]
	HasProductionAccess bool             `json:"has_production_access"`
	AssessmentStatus    AssessmentStatus `json:"assessment_status"`
	LastReviewed        *time.Time       `json:"last_reviewed,omitempty"`
	NextReviewDue       time.Time        `json:"next_review_due"`
	HasSOC2Report       bool             `json:"has_soc2_report"`
	SOC2ReportURL       string           `json:"soc2_report_url,omitempty"`
	AutoDetected        bool             `json:"auto_detected"` // pre-populated from intake answers
}
