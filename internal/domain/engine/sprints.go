package engine

import (
	"fmt"
	"strings"

	"complypath/internal/domain/models"
)

// buildSprints assembles the remediation plan: up to four theme sprints
// populated from the company's gaps, followed by the fixed evidence &
// audit-prep sprint. Sprint numbers are assigned contiguously as sprints
// are appended; empty theme sprints 2-4 are dropped, sprint 1 never is.
// The returned map resolves each theme index (the sprint's slot in the
// full four-theme layout) to its assigned number, so risk references can
// follow the renumbering.
func buildSprints(in *models.Intake, totalWeeks int) ([]models.Sprint, map[int]int) {
	var sprints []models.Sprint
	themes := make(map[int]int)

	appendSprint := func(theme int, name, focus string, tasks []models.Task) {
		n := len(sprints) + 1
		themes[theme] = n
		sprints = append(sprints, models.Sprint{
			Number: n,
			Name:   name,
			Weeks:  fmt.Sprintf("Weeks %d–%d", n*2-1, n*2),
			Focus:  focus,
			Tasks:  tasks,
		})
	}

	tasks := foundationTasks(in)
	if len(tasks) == 0 {
		tasks = []models.Task{documentControlsTask(in)}
	}
	appendSprint(1, "Foundation & Critical Controls",
		"Address critical gaps that block all other compliance work", tasks)

	if tasks := accessIncidentTasks(in); len(tasks) > 0 {
		appendSprint(2, "Access Controls & Incident Readiness",
			"Formalize access management and incident response", tasks)
	}

	if tasks := policyVendorTasks(in); len(tasks) > 0 {
		appendSprint(3, "Policies & Vendor Risk",
			"Complete policy library and third-party risk program", tasks)
	}

	if tasks := changeContinuityTasks(in); len(tasks) > 0 {
		appendSprint(4, "Change Management & Business Continuity",
			"Formalize change controls and validate recovery capabilities", tasks)
	}

	// Final sprint spans from the week after the last theme sprint to the
	// end of the recommended timeline
	finalNumber := len(sprints) + 1
	sprints = append(sprints, models.Sprint{
		Number: finalNumber,
		Name:   "Evidence Collection & Audit Prep",
		Weeks:  fmt.Sprintf("Weeks %d–%d", finalNumber*2-1, totalWeeks),
		Focus:  "Gather all evidence artifacts and prepare for auditor fieldwork",
		Tasks:  auditPrepTasks(in),
	})

	return sprints, themes
}

// foundationTasks covers the gaps that block everything else, in fixed
// order: policies, MFA, logging.
func foundationTasks(in *models.Intake) []models.Task {
	var tasks []models.Task
	company := in.CompanyInfo.CompanyName

	if !in.SecurityPosture.HasSecurityPolicies {
		tasks = append(tasks, models.Task{
			ID:               "s1-policy",
			Title:            "Write Information Security Policy",
			Description:      "Draft your foundational security policy covering scope, roles, responsibilities, and control objectives.",
			Category:         models.TaskPolicy,
			Priority:         models.RiskCritical,
			Effort:           models.EffortDays,
			ControlReference: "CC1.1",
			Why: expand("This is the first document auditors request from {company}. Everything else is built on it.",
				map[string]string{"company": company}),
		})
	}

	if !in.AccessControl.HasMFA || in.AccessControl.MFACoverage != models.MFAAllUsers {
		description := "Enable MFA in each system independently: start with admin accounts, then all users. Use an authenticator app (not SMS)."
		if sso := ssoHint(in); sso != "" {
			description = expand("Enable MFA enforcement policy in your {sso} admin console. Set a 72-hour grace period for adoption.",
				map[string]string{"sso": sso})
		}
		tasks = append(tasks, models.Task{
			ID:               "s1-mfa",
			Title:            "Enforce MFA for All Users",
			Description:      description,
			Category:         models.TaskTechnical,
			Priority:         models.RiskCritical,
			Effort:           models.EffortHours,
			ControlReference: "CC6.1",
			Why: expand("MFA is the single highest-impact security control for {company}. It blocks over 99% of credential-based attacks.",
				map[string]string{"company": company}),
		})
	}

	if !in.TechnicalInfrastructure.HasMonitoring {
		var description string
		switch {
		case in.HasCloud(models.CloudAWS):
			description = "Enable AWS CloudTrail in all regions, configure CloudWatch log groups, set retention to 365 days, and create alerts for root account usage and failed logins."
		case in.HasCloud(models.CloudGCP):
			description = "Enable Cloud Audit Logs for all services, configure log sinks to Cloud Storage, set up Cloud Monitoring alerts for admin activity."
		default:
			description = "Enable audit logging in all production systems; aggregate into a central location with 365-day retention."
		}

		priority := models.RiskHigh
		why := expand("Auditors need to see that {company} can detect and respond to security events.",
			map[string]string{"company": company})
		if in.SOC2Type == models.SOC2Type2 {
			priority = models.RiskCritical
			why = expand("For {company}'s Type 2 audit, every day without logging is a day you can't count toward your 90-day evidence period.",
				map[string]string{"company": company})
		}

		tasks = append(tasks, models.Task{
			ID:               "s1-logging",
			Title:            "Enable Centralized Logging & Alerting",
			Description:      description,
			Category:         models.TaskTechnical,
			Priority:         priority,
			Effort:           models.EffortDays,
			ControlReference: "CC7.2",
			Why:              why,
		})
	}

	return tasks
}

// documentControlsTask backfills sprint 1 when the company has no
// critical gaps to close
func documentControlsTask(in *models.Intake) models.Task {
	return models.Task{
		ID:               "s1-review",
		Title:            "Document Your Existing Controls",
		Description:      "Your security posture is strong. Use this sprint to document all existing controls in a formal control matrix — this is what auditors will review.",
		Category:         models.TaskProcess,
		Priority:         models.RiskHigh,
		Effort:           models.EffortDays,
		ControlReference: "CC1.x",
		Why: expand("{company} already has most controls in place. The audit risk is documentation gaps, not control gaps.",
			map[string]string{"company": in.CompanyInfo.CompanyName}),
	}
}

func accessIncidentTasks(in *models.Intake) []models.Task {
	var tasks []models.Task
	company := in.CompanyInfo.CompanyName

	if !in.AccessControl.HasRBAC {
		tasks = append(tasks, models.Task{
			ID:               "s2-rbac",
			Title:            "Define and Document Role-Based Access",
			Description:      "Create a role matrix mapping job functions to required system access. Document who has admin vs. standard access in each production system.",
			Category:         models.TaskProcess,
			Priority:         models.RiskHigh,
			Effort:           models.EffortDays,
			ControlReference: "CC6.2",
			Why: expand("Auditors will ask {company} to show that access is granted by role, not individually. Without a role matrix, every access grant looks ad hoc.",
				map[string]string{"company": company}),
		})
	}

	if !in.SecurityPosture.HasIncidentResponsePlan {
		tasks = append(tasks, models.Task{
			ID:               "s2-irp",
			Title:            "Write Incident Response Plan",
			Description:      "Document detection → containment → eradication → recovery → lessons learned. Assign named owners for each phase. Include contact list and escalation thresholds.",
			Category:         models.TaskPolicy,
			Priority:         models.RiskHigh,
			Effort:           models.EffortDays,
			ControlReference: "CC9.1",
			Why: expand("If {company} has a breach and there is no written IRP, it is both a crisis and an automatic audit finding.",
				map[string]string{"company": company}),
		})
	}

	if !in.AccessControl.HasAccessReviews {
		tasks = append(tasks, models.Task{
			ID:               "s2-access-review",
			Title:            "Run First Formal Access Review",
			Description:      "Pull the current user list for all production systems. Have each manager certify their team's access is appropriate. Remove any stale or excess access. Document the review.",
			Category:         models.TaskProcess,
			Priority:         models.RiskMedium,
			Effort:           models.EffortDays,
			ControlReference: "CC6.3",
			Why: expand("Access reviews are often where {company} finds accounts from ex-employees or contractors that should have been removed.",
				map[string]string{"company": company}),
		})
	}

	if !in.SecurityPosture.HasVulnerabilityManagement {
		description := "Deploy a vulnerability scanner (Qualys, Tenable, or open-source OpenVAS). Scan all production systems. Define a remediation SLA policy."
		if in.HasCloud(models.CloudAWS) {
			description = "Enable AWS Inspector for EC2 and ECR. Set up Dependabot on all repos. Configure weekly scan schedule and define SLA for critical findings (e.g., patch within 30 days)."
		}
		tasks = append(tasks, models.Task{
			ID:               "s2-vuln",
			Title:            "Set Up Vulnerability Scanning",
			Description:      description,
			Category:         models.TaskTechnical,
			Priority:         models.RiskHigh,
			Effort:           models.EffortDays,
			ControlReference: "CC7.1",
			Why: expand("{company} needs to demonstrate it proactively finds and fixes vulnerabilities — not just reacts to breaches.",
				map[string]string{"company": company}),
		})
	}

	return tasks
}

func policyVendorTasks(in *models.Intake) []models.Task {
	var tasks []models.Task
	company := in.CompanyInfo.CompanyName

	if missing := missingPolicies(in); len(missing) > 0 {
		names := make([]string, len(missing))
		for i, p := range missing {
			names[i] = p.Name
		}
		tasks = append(tasks, models.Task{
			ID:               "s3-policies",
			Title:            fmt.Sprintf("Write Remaining %d Required Policies", len(missing)),
			Description:      fmt.Sprintf("Complete: %s. Each policy should be reviewed and approved by management before the audit window opens.", strings.Join(names, ", ")),
			Category:         models.TaskPolicy,
			Priority:         models.RiskHigh,
			Effort:           models.EffortWeeks,
			ControlReference: "CC1.x",
			Why: expand("Auditors will request all of {company}'s policies during fieldwork. Missing policies are automatic findings — they cannot be remediated during the audit.",
				map[string]string{"company": company}),
		})
	}

	if !in.VendorManagement.HasVendorAssessment {
		tasks = append(tasks, models.Task{
			ID:    "s3-vendors",
			Title: "Assess Critical Vendors",
			Description: expand("Identify your top {count} critical vendors. Request SOC 2 Type 2 reports from the top 5. For the rest, send a vendor security questionnaire. Document risk ratings.",
				map[string]string{"count": string(in.VendorManagement.CriticalVendorCount)}),
			Category:         models.TaskProcess,
			Priority:         models.RiskMedium,
			Effort:           models.EffortWeeks,
			ControlReference: "CC9.2",
			Why: expand("If a critical vendor is breached and {company} cannot show due diligence, it reflects on your audit.",
				map[string]string{"company": company}),
		})
	}

	if !in.DataHandling.HasDataClassification {
		tasks = append(tasks, models.Task{
			ID:               "s3-classification",
			Title:            "Create Data Classification Policy",
			Description:      "Define at minimum three tiers: Public, Internal, and Confidential. Map your data types (PII, product data, financial records) to tiers. Document handling requirements per tier.",
			Category:         models.TaskPolicy,
			Priority:         models.RiskMedium,
			Effort:           models.EffortDays,
			ControlReference: "CC6.7",
			Why: expand("Data classification tells auditors that {company} understands what data it holds and applies appropriate controls based on sensitivity.",
				map[string]string{"company": company}),
		})
	}

	if !in.SecurityPosture.HasSecurityAwareness {
		tasks = append(tasks, models.Task{
			ID:               "s3-training",
			Title:            "Complete Security Awareness Training for All Staff",
			Description:      "Deploy security awareness training to all employees. Track completion. Retain completion records — this is required evidence for the audit.",
			Category:         models.TaskProcess,
			Priority:         models.RiskMedium,
			Effort:           models.EffortDays,
			ControlReference: "CC1.4",
			Why: expand("Auditors ask for {company}'s training completion records. If any employee hasn't completed training, it's a finding.",
				map[string]string{"company": company}),
		})
	}

	return tasks
}

func changeContinuityTasks(in *models.Intake) []models.Task {
	var tasks []models.Task
	company := in.CompanyInfo.CompanyName

	if !in.TechnicalInfrastructure.HasCICD {
		tasks = append(tasks, models.Task{
			ID:               "s4-cicd",
			Title:            expand("Formalize Change Management in {scm}", map[string]string{"scm": scmHint(in)}),
			Description:      "Require pull request approvals before merging to main. Enable branch protection rules. Document your deployment process. This creates an automatic audit trail.",
			Category:         models.TaskTechnical,
			Priority:         models.RiskMedium,
			Effort:           models.EffortHours,
			ControlReference: "CC8.1",
			Why: expand("Auditors need to see that {company} reviews every production change. Branch protection rules enforce this automatically.",
				map[string]string{"company": company}),
		})
	}

	if in.HasCriterion(models.CriterionAvailability) && !in.BusinessContinuity.HasDisasterRecoveryPlan {
		rto := string(in.BusinessContinuity.RTORequirement)
		if rto == "" {
			rto = "your target"
		}
		rpo := string(in.BusinessContinuity.RPORequirement)
		if rpo == "" {
			rpo = "your target"
		}
		tasks = append(tasks, models.Task{
			ID:    "s4-dr",
			Title: "Write and Test Disaster Recovery Plan",
			Description: expand("Document recovery procedures for your {cloud} environment. Define RTO of {rto} and RPO of {rpo}. Run a tabletop exercise to test it.",
				map[string]string{"cloud": cloudHint(in), "rto": rto, "rpo": rpo}),
			Category:         models.TaskPolicy,
			Priority:         models.RiskHigh,
			Effort:           models.EffortWeeks,
			ControlReference: "A1.3",
			Why: expand("{company} selected Availability as a trust criteria — auditors will specifically test whether your DR plan is real and tested.",
				map[string]string{"company": company}),
		})
	}

	if !in.BusinessContinuity.HasBCPTesting && in.BusinessContinuity.HasBackupStrategy {
		tasks = append(tasks, models.Task{
			ID:               "s4-backup-test",
			Title:            "Run and Document a Backup Restore Test",
			Description:      "Select a non-production environment and restore from backup. Time the restore. Document the results. This is evidence that your backups actually work.",
			Category:         models.TaskProcess,
			Priority:         models.RiskMedium,
			Effort:           models.EffortDays,
			ControlReference: "A1.2",
			Why: expand("Untested backups are not backups. Auditors expect {company} to prove backups restore successfully, not just that they run.",
				map[string]string{"company": company}),
		})
	}

	return tasks
}

// auditPrepTasks returns the three fixed closing tasks. The auditor
// engagement task carries the cost range matching the report type.
func auditPrepTasks(in *models.Intake) []models.Task {
	company := in.CompanyInfo.CompanyName

	costHint := "Budget $30,000–$80,000 for a Type 2 report."
	if in.SOC2Type == models.SOC2Type1 {
		costHint = "Budget $15,000–$40,000 for a Type 1 report."
	}

	return []models.Task{
		{
			ID:               "se-evidence",
			Title:            "Compile Evidence Package",
			Description:      "Collect all required evidence artifacts. Organize by control area. For Type 2, ensure log exports cover the full audit period. Name files consistently for auditor handoff.",
			Category:         models.TaskEvidence,
			Priority:         models.RiskCritical,
			Effort:           models.EffortWeeks,
			ControlReference: "All",
			Why: expand("Auditors will request evidence within 48 hours of starting fieldwork. An organized package demonstrates {company}'s maturity.",
				map[string]string{"company": company}),
		},
		{
			ID:               "se-auditor",
			Title:            "Select and Engage Auditor",
			Description:      "Issue RFP to 2-3 AICPA-licensed CPA firms specializing in SOC 2. " + costHint + " Timeline from engagement to report is 6-12 weeks.",
			Category:         models.TaskProcess,
			Priority:         models.RiskHigh,
			Effort:           models.EffortWeeks,
			ControlReference: "N/A",
			Why: expand("Starting auditor selection late is the #1 reason companies miss target dates. {company} should book now, even before evidence is fully ready.",
				map[string]string{"company": company}),
		},
		{
			ID:               "se-preaudit",
			Title:            "Run Internal Pre-Audit Review",
			Description:      "Walk through each control area and verify evidence exists. Identify any gaps. Create remediation tickets for anything missing. Better to find gaps now than during fieldwork.",
			Category:         models.TaskProcess,
			Priority:         models.RiskHigh,
			Effort:           models.EffortDays,
			ControlReference: "All",
			Why: expand("Findings {company} discovers during the pre-audit can be fixed before the real audit. Findings discovered during fieldwork become report findings.",
				map[string]string{"company": company}),
		},
	}
}
