package engine

import (
	"sort"

	"complypath/internal/domain/models"
)

// maxRankedRisks caps the risk list shown to the company
const maxRankedRisks = 5

// riskRule evaluates one risk condition; it returns nil when the
// condition does not apply. Rules are evaluated in fixed order and ties
// within a severity keep that order. SprintReference holds the theme
// index of the sprint that remediates the risk; it is resolved to the
// assigned sprint number once the plan is built.
type riskRule func(*models.Intake) *models.RiskItem

var riskCatalog = []riskRule{
	// Missing MFA, escalated when regulated data is in play
	func(in *models.Intake) *models.RiskItem {
		if in.AccessControl.HasMFA {
			return nil
		}
		if in.HandlesSensitiveData() {
			dataType := "customer PII"
			if in.DataHandling.HandlesPHI {
				dataType = "PHI"
			} else if in.DataHandling.HandlesPaymentData {
				dataType = "payment data"
			}
			return &models.RiskItem{
				ID:    "risk-mfa",
				Title: "No MFA on Accounts Accessing Sensitive Data",
				Description: expand("Your systems handle {data} but accounts are not protected by multi-factor authentication. A single compromised password exposes regulated data.",
					map[string]string{"data": dataType}),
				Severity:        models.RiskCritical,
				Remediation:     "Enable MFA across all accounts immediately. If you have SSO, this is a single policy change. Prioritize this above all other compliance work.",
				SprintReference: 1,
			}
		}
		return &models.RiskItem{
			ID:              "risk-mfa",
			Title:           "No Multi-Factor Authentication",
			Description:     "Accounts are protected only by passwords. Credential theft is the #1 cause of breaches and the #1 thing auditors look for.",
			Severity:        models.RiskHigh,
			Remediation:     "Enable MFA for all users before beginning evidence collection. This is a blocker for SOC 2.",
			SprintReference: 1,
		}
	},
	// Missing monitoring; fatal for the Type 2 observation window
	func(in *models.Intake) *models.RiskItem {
		if in.TechnicalInfrastructure.HasMonitoring {
			return nil
		}
		if in.SOC2Type == models.SOC2Type2 {
			return &models.RiskItem{
				ID:              "risk-monitoring",
				Title:           "No Monitoring — Cannot Produce Type 2 Evidence",
				Description:     "Type 2 audits require 90 days of continuous monitoring evidence. Without logging and alerting in place now, you cannot start your audit window.",
				Severity:        models.RiskCritical,
				Remediation:     "Set up centralized logging immediately — this starts your audit clock. Use your cloud provider's native logging (CloudTrail, GCP Audit Logs) as a fast first step.",
				SprintReference: 1,
			}
		}
		return &models.RiskItem{
			ID:              "risk-monitoring",
			Title:           "No System Monitoring or Alerting",
			Description:     "Without monitoring you cannot detect or demonstrate response to security events — a core SOC 2 requirement.",
			Severity:        models.RiskHigh,
			Remediation:     "Implement centralized logging and alerting. Your cloud provider's native tools are a fast, cost-effective starting point.",
			SprintReference: 2,
		}
	},
	// Missing incident response plan
	func(in *models.Intake) *models.RiskItem {
		if in.SecurityPosture.HasIncidentResponsePlan {
			return nil
		}
		return &models.RiskItem{
			ID:              "risk-irp",
			Title:           "No Incident Response Plan",
			Description:     "If a security incident occurs without a documented response plan, it is both an operational crisis and an automatic audit finding.",
			Severity:        models.RiskHigh,
			Remediation:     "Draft an IRP this sprint. It does not need to be perfect — a documented, approved plan beats an unwritten \"we know what to do.\"",
			SprintReference: 2,
		}
	},
	// Missing security policies
	func(in *models.Intake) *models.RiskItem {
		if in.SecurityPosture.HasSecurityPolicies {
			return nil
		}
		return &models.RiskItem{
			ID:              "risk-policies",
			Title:           "No Formal Security Policies",
			Description:     "Security policies are the foundation auditors check first. Without them, every other control you have is unanchored — there's nothing to audit against.",
			Severity:        models.RiskCritical,
			Remediation:     "Write and approve your Information Security Policy first. It takes 2-4 hours with a template and unlocks all other compliance work.",
			SprintReference: 1,
		}
	},
	// Unassessed vendors at scale
	func(in *models.Intake) *models.RiskItem {
		count := in.VendorManagement.CriticalVendorCount
		atScale := count == models.Vendors16To30 || count == models.Vendors31To50 || count == models.Vendors50Plus
		if in.VendorManagement.HasVendorAssessment || !atScale {
			return nil
		}
		return &models.RiskItem{
			ID:    "risk-vendors",
			Title: "Unassessed Third-Party Risk",
			Description: expand("You have {count} vendors with no formal security assessments. Auditors treat your vendors as extensions of your security boundary.",
				map[string]string{"count": string(count)}),
			Severity:        models.RiskMedium,
			Remediation:     "Prioritize your top 10 critical vendors. Request their SOC 2 reports. For others, use a vendor security questionnaire.",
			SprintReference: 3,
		}
	},
	// Backups too weak for an Availability commitment
	func(in *models.Intake) *models.RiskItem {
		if !in.HasCriterion(models.CriterionAvailability) {
			return nil
		}
		freq := in.BusinessContinuity.BackupFrequency
		weak := freq == models.BackupWeekly || freq == models.BackupMonthly || freq == models.BackupNone
		if in.BusinessContinuity.HasBackupStrategy && !weak {
			return nil
		}
		freqLabel := string(freq)
		if freqLabel == "" {
			freqLabel = "none"
		}
		return &models.RiskItem{
			ID:    "risk-availability",
			Title: "Backup Strategy Does Not Support Availability Commitments",
			Description: expand("You selected the Availability trust criteria, but your backup frequency ({freq}) may not support your RTO/RPO targets.",
				map[string]string{"freq": freqLabel}),
			Severity:        models.RiskHigh,
			Remediation:     "Define explicit RTO and RPO targets, then verify your backup strategy meets them. Test a restore before your audit window opens.",
			SprintReference: 2,
		}
	},
}

// buildRisks evaluates the risk catalog in order, sorts the survivors by
// severity (critical first, stable within a level), and keeps the top 5.
func buildRisks(in *models.Intake) []models.RiskItem {
	risks := make([]models.RiskItem, 0, len(riskCatalog))
	for _, rule := range riskCatalog {
		if item := rule(in); item != nil {
			risks = append(risks, *item)
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].Severity.Weight() < risks[j].Severity.Weight()
	})

	if len(risks) > maxRankedRisks {
		risks = risks[:maxRankedRisks]
	}
	return risks
}
