package engine

import (
	"strings"

	"complypath/internal/domain/models"
)

// gapRule is one entry in the control-check catalog: a predicate that
// decides whether the gap exists, and a builder for the emitted item.
// Severity escalation lives inside the builder.
type gapRule struct {
	when func(*models.Intake) bool
	item func(*models.Intake) models.GapItem
}

// gapCatalog is evaluated top to bottom; the resulting gap list keeps
// this order. New checks are added by appending rules, never by
// reordering.
var gapCatalog = []gapRule{
	// CC6.1 – Logical access, three mutually exclusive tiers
	{
		when: func(in *models.Intake) bool {
			return !in.AccessControl.HasSSO && !in.AccessControl.HasMFA
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.1 – Logical Access Controls",
				CurrentState:  "No SSO or MFA implemented",
				RequiredState: "All production systems require MFA; access managed through centralized IdP",
				Severity:      models.RiskCritical,
			}
		},
	},
	{
		when: func(in *models.Intake) bool {
			return in.AccessControl.HasSSO && !in.AccessControl.HasMFA
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.1 – Logical Access Controls",
				CurrentState:  "SSO in place but MFA not enforced",
				RequiredState: "MFA required for all users accessing production systems",
				Severity:      models.RiskHigh,
			}
		},
	},
	{
		when: func(in *models.Intake) bool {
			return in.AccessControl.HasMFA && in.AccessControl.MFACoverage != models.MFAAllUsers
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.1 – Logical Access Controls",
				CurrentState:  "MFA only applied to " + strings.ToLower(string(in.AccessControl.MFACoverage)),
				RequiredState: "MFA enforced for all users",
				Severity:      models.RiskHigh,
			}
		},
	},
	// CC6.2 – Access authorization
	{
		when: func(in *models.Intake) bool { return !in.AccessControl.HasRBAC },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.2 – Access Authorization",
				CurrentState:  "No formal role-based access control documented",
				RequiredState: "User access assigned by role; least-privilege enforced",
				Severity:      models.RiskHigh,
			}
		},
	},
	// CC6.3 – Access reviews
	{
		when: func(in *models.Intake) bool { return !in.AccessControl.HasAccessReviews },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.3 – Access Reviews",
				CurrentState:  "No periodic access review process",
				RequiredState: "Quarterly access reviews with documented approval",
				Severity:      models.RiskMedium,
			}
		},
	},
	// CC7.1 – Vulnerability management
	{
		when: func(in *models.Intake) bool { return !in.SecurityPosture.HasVulnerabilityManagement },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC7.1 – Vulnerability Management",
				CurrentState:  "No vulnerability scanning or management program",
				RequiredState: "Regular vulnerability scans; critical findings remediated within SLA",
				Severity:      models.RiskHigh,
			}
		},
	},
	// CC7.2 – Monitoring; a Type 2 audit cannot even start without it
	{
		when: func(in *models.Intake) bool { return !in.TechnicalInfrastructure.HasMonitoring },
		item: func(in *models.Intake) models.GapItem {
			severity := models.RiskHigh
			if in.SOC2Type == models.SOC2Type2 {
				severity = models.RiskCritical
			}
			return models.GapItem{
				Control:       "CC7.2 – System Monitoring",
				CurrentState:  "No centralized monitoring or alerting",
				RequiredState: "Security events monitored and alerted; logs retained 90+ days",
				Severity:      severity,
			}
		},
	},
	// CC8.1 – Change management
	{
		when: func(in *models.Intake) bool { return !in.TechnicalInfrastructure.HasCICD },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC8.1 – Change Management",
				CurrentState:  "No formal CI/CD or change management process",
				RequiredState: "All production changes go through documented, approved pipeline",
				Severity:      models.RiskMedium,
			}
		},
	},
	// CC9.1 – Incident response
	{
		when: func(in *models.Intake) bool { return !in.SecurityPosture.HasIncidentResponsePlan },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC9.1 – Incident Response",
				CurrentState:  "No documented incident response plan",
				RequiredState: "Documented IRP tested at least annually",
				Severity:      models.RiskHigh,
			}
		},
	},
	// CC1.x – Control environment
	{
		when: func(in *models.Intake) bool { return !in.SecurityPosture.HasSecurityPolicies },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC1.x – Control Environment",
				CurrentState:  "No formal information security policies documented",
				RequiredState: "Information security policy and supporting policies approved by management",
				Severity:      models.RiskCritical,
			}
		},
	},
	// CC6.7 – Encryption at rest, escalated when regulated data is held
	{
		when: func(in *models.Intake) bool { return !in.DataHandling.HasEncryptionAtRest },
		item: func(in *models.Intake) models.GapItem {
			severity := models.RiskHigh
			if in.DataHandling.HandlesCustomerPII || in.DataHandling.HandlesPHI {
				severity = models.RiskCritical
			}
			return models.GapItem{
				Control:       "CC6.7 – Encryption at Rest",
				CurrentState:  "Data not encrypted at rest",
				RequiredState: "All sensitive data encrypted at rest using AES-256 or equivalent",
				Severity:      severity,
			}
		},
	},
	// CC6.7 – Encryption in transit
	{
		when: func(in *models.Intake) bool { return !in.DataHandling.HasEncryptionInTransit },
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC6.7 – Encryption in Transit",
				CurrentState:  "Data not encrypted in transit",
				RequiredState: "All data transmitted over TLS 1.2+",
				Severity:      models.RiskHigh,
			}
		},
	},
	// A1.2 / A1.3 – only when Availability is in scope
	{
		when: func(in *models.Intake) bool {
			return in.HasCriterion(models.CriterionAvailability) && !in.BusinessContinuity.HasBackupStrategy
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "A1.2 – System Recovery",
				CurrentState:  "No backup strategy defined",
				RequiredState: "Automated backups with documented RTO/RPO and tested restore procedures",
				Severity:      models.RiskCritical,
			}
		},
	},
	{
		when: func(in *models.Intake) bool {
			return in.HasCriterion(models.CriterionAvailability) && !in.BusinessContinuity.HasDisasterRecoveryPlan
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "A1.3 – Disaster Recovery",
				CurrentState:  "No disaster recovery plan",
				RequiredState: "Documented DR plan tested at least annually",
				Severity:      models.RiskHigh,
			}
		},
	},
	// P1.x – only when Privacy is in scope
	{
		when: func(in *models.Intake) bool {
			return in.HasCriterion(models.CriterionPrivacy) && !in.DataHandling.HasDataClassification
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "P1.x – Privacy",
				CurrentState:  "No data classification or privacy notice",
				RequiredState: "Data classified by sensitivity; privacy notice published; consent mechanisms in place",
				Severity:      models.RiskHigh,
			}
		},
	},
	// CC9.2 – Vendor risk, only once the vendor count leaves the smallest bucket
	{
		when: func(in *models.Intake) bool {
			return !in.VendorManagement.HasVendorAssessment &&
				in.VendorManagement.CriticalVendorCount != models.Vendors0To5
		},
		item: func(in *models.Intake) models.GapItem {
			return models.GapItem{
				Control:       "CC9.2 – Vendor Risk",
				CurrentState:  "No vendor security assessments performed",
				RequiredState: "Critical vendors assessed annually; risk ratings documented",
				Severity:      models.RiskMedium,
			}
		},
	},
}

// buildGaps folds the intake through the control-check catalog. No
// sorting or deduplication; list order is catalog order.
func buildGaps(in *models.Intake) []models.GapItem {
	gaps := make([]models.GapItem, 0, len(gapCatalog))
	for _, rule := range gapCatalog {
		if rule.when(in) {
			gaps = append(gaps, rule.item(in))
		}
	}
	return gaps
}
