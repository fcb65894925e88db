package engine

import "complypath/internal/domain/models"

// rollingWindowDays is the observation window a Type 2 audit must cover
const rollingWindowDays = 90

// logSources maps cloud providers to their native audit-log tooling.
// Providers without an entry fall through to the generic instruction.
var logSources = map[models.CloudProvider]string{
	models.CloudAWS:   "AWS CloudTrail and CloudWatch",
	models.CloudGCP:   "GCP Cloud Audit Logs and Cloud Logging",
	models.CloudAzure: "Azure Monitor and Activity Log",
}

// logSource picks the audit-log source for the company's stack. When
// several clouds are selected the first match in priority order wins.
func logSource(in *models.Intake) string {
	for _, p := range []models.CloudProvider{models.CloudAWS, models.CloudGCP, models.CloudAzure} {
		if in.HasCloud(p) {
			return logSources[p]
		}
	}
	return "your cloud provider's logging console"
}

// changeSources maps SCM tools to where change records live
var changeSources = map[models.SCMTool]string{
	models.SCMGitHub:    "GitHub pull request history and branch protection settings",
	models.SCMGitLab:    "GitLab merge request history and protected branches",
	models.SCMBitbucket: "Bitbucket pull request history",
}

func changeSource(in *models.Intake) string {
	if src, ok := changeSources[in.TechnicalInfrastructure.SourceCodeManagement]; ok {
		return src
	}
	return "your version control system"
}

// evidenceRule is one entry in the evidence catalog. The method builder
// produces a stack-specific collection instruction; alreadyHave derives
// from capability flags the intake already carries.
type evidenceRule struct {
	id          string
	name        string
	description string
	category    models.EvidenceCategory
	days        int
	method      func(*models.Intake) string
	alreadyHave func(*models.Intake) bool
}

// coreEvidence holds the point-in-time artifacts every report type needs
var coreEvidence = []evidenceRule{
	{
		id:          "access-list",
		name:        "User Access List with Roles",
		description: "Complete list of all users with their roles and access levels to production systems",
		category:    models.EvidenceAccess,
		method: func(in *models.Intake) string {
			if sso := ssoHint(in); in.AccessControl.HasSSO {
				if sso == "" {
					sso = "SSO provider"
				}
				return expand("Export user roster from your {sso} admin console", map[string]string{"sso": sso})
			}
			return "Export user list from each system manually; document roles in a spreadsheet"
		},
		alreadyHave: func(in *models.Intake) bool { return in.AccessControl.HasRBAC },
	},
	{
		id:          "mfa-config",
		name:        "MFA Configuration Screenshots",
		description: "Documentation that MFA is enforced across all required accounts",
		category:    models.EvidenceAccess,
		method: func(in *models.Intake) string {
			if sso := ssoHint(in); in.AccessControl.HasSSO {
				if sso == "" {
					sso = "SSO"
				}
				return expand("Screenshot MFA policy settings in your {sso} admin console", map[string]string{"sso": sso})
			}
			return "Screenshot MFA settings in each tool individually (GitHub, AWS, etc.)"
		},
		alreadyHave: func(in *models.Intake) bool {
			return in.AccessControl.HasMFA && in.AccessControl.MFACoverage == models.MFAAllUsers
		},
	},
	{
		id:          "encryption-config",
		name:        "Encryption Configuration Documentation",
		description: "Evidence that data is encrypted at rest and in transit",
		category:    models.EvidencePolicy,
		method: func(in *models.Intake) string {
			if in.HasCloud(models.CloudAWS) {
				return "Screenshot S3 bucket encryption settings, RDS encryption, and ACM/TLS configuration"
			}
			return "Document encryption settings for each storage service and TLS certificates in use"
		},
		alreadyHave: func(in *models.Intake) bool {
			return in.DataHandling.HasEncryptionAtRest && in.DataHandling.HasEncryptionInTransit
		},
	},
	{
		id:          "vuln-scan",
		name:        "Vulnerability Scan Results",
		description: "Recent scan showing identified vulnerabilities and remediation status",
		category:    models.EvidenceMonitoring,
		method: func(*models.Intake) string {
			return "Export report from your vulnerability scanner (e.g., Qualys, Tenable, AWS Inspector, GitHub Dependabot)"
		},
		alreadyHave: func(in *models.Intake) bool { return in.SecurityPosture.HasVulnerabilityManagement },
	},
	{
		id:          "policies-signed",
		name:        "Signed Security Policies",
		description: "All required security policies signed/approved by management",
		category:    models.EvidencePolicy,
		method: func(*models.Intake) string {
			return "Export signed policy documents from your document management system or HR platform"
		},
		alreadyHave: func(in *models.Intake) bool { return in.SecurityPosture.HasSecurityPolicies },
	},
	{
		id:          "vendor-inventory",
		name:        "Vendor Inventory & Risk Ratings",
		description: "List of all critical vendors with their security posture and risk rating",
		category:    models.EvidenceVendor,
		method: func(*models.Intake) string {
			return "Export vendor list from your GRC tool, or compile from contract records; include SOC 2 reports for critical vendors"
		},
		alreadyHave: func(in *models.Intake) bool {
			return in.VendorManagement.HasVendorInventory && in.VendorManagement.HasVendorAssessment
		},
	},
	{
		id:          "irp-doc",
		name:        "Incident Response Plan",
		description: "Documented IRP with roles, escalation procedures, and communication templates",
		category:    models.EvidencePolicy,
		method: func(*models.Intake) string {
			return "Retrieve current IRP document; ensure it has been reviewed/tested within the past 12 months"
		},
		alreadyHave: func(in *models.Intake) bool { return in.SecurityPosture.HasIncidentResponsePlan },
	},
}

// rollingEvidence holds the observation-period artifacts appended only
// for Type 2 reports; each requires the full rolling window.
var rollingEvidence = []evidenceRule{
	{
		id:          "access-logs",
		name:        "90-Day Access & Authentication Logs",
		description: "Logs showing who accessed what systems and when over the audit period",
		category:    models.EvidenceAccess,
		days:        rollingWindowDays,
		method: func(in *models.Intake) string {
			return expand("Export authentication logs from {logs}; filter for production system access",
				map[string]string{"logs": logSource(in)})
		},
		alreadyHave: func(in *models.Intake) bool { return in.TechnicalInfrastructure.HasMonitoring },
	},
	{
		id:          "change-records",
		name:        "90-Day Change Management Records",
		description: "All production changes with approvals over the audit period",
		category:    models.EvidenceChange,
		days:        rollingWindowDays,
		method: func(in *models.Intake) string {
			return expand("Export from {scm}; auditors look for approved PRs/MRs before merges",
				map[string]string{"scm": changeSource(in)})
		},
		alreadyHave: func(in *models.Intake) bool { return in.TechnicalInfrastructure.HasCICD },
	},
	{
		id:          "access-reviews",
		name:        "Quarterly Access Review Evidence",
		description: "Documentation that user access was reviewed and certified",
		category:    models.EvidenceAccess,
		days:        rollingWindowDays,
		method: func(*models.Intake) string {
			return "Export access review completion records; screenshot approvals or certification emails"
		},
		alreadyHave: func(in *models.Intake) bool { return in.AccessControl.HasAccessReviews },
	},
	{
		id:          "monitoring-alerts",
		name:        "90-Day Monitoring Alerts & Responses",
		description: "Security alert log showing alerts generated and how they were handled",
		category:    models.EvidenceMonitoring,
		days:        rollingWindowDays,
		method: func(in *models.Intake) string {
			return expand("Export alert history from {logs} or your SIEM; include ticket/resolution records",
				map[string]string{"logs": logSource(in)})
		},
		alreadyHave: func(in *models.Intake) bool { return in.TechnicalInfrastructure.HasMonitoring },
	},
	{
		id:          "backup-logs",
		name:        "Backup Completion Logs",
		description: "Evidence that backups ran successfully over the audit period",
		category:    models.EvidenceBackup,
		days:        rollingWindowDays,
		method: func(in *models.Intake) string {
			if in.HasCloud(models.CloudAWS) {
				return "Export AWS Backup job history; include restore test documentation"
			}
			return "Export backup job logs from your backup solution; include at least one documented restore test"
		},
		alreadyHave: func(in *models.Intake) bool { return in.BusinessContinuity.HasBackupStrategy },
	},
	{
		id:          "training-records",
		name:        "Security Awareness Training Records",
		description: "Completion records showing all employees completed security training over the audit period",
		category:    models.EvidenceTraining,
		days:        rollingWindowDays,
		method: func(*models.Intake) string {
			return "Export completion report from your training platform (KnowBe4, Proofpoint, etc.) or HR system"
		},
		alreadyHave: func(in *models.Intake) bool { return in.SecurityPosture.HasSecurityAwareness },
	},
}

// buildEvidence folds the intake through the evidence catalogs: the
// point-in-time core for every report, plus the rolling-window items
// when the report type carries an observation period.
func buildEvidence(in *models.Intake) []models.EvidenceItem {
	rules := coreEvidence
	if in.SOC2Type == models.SOC2Type2 {
		rules = append(append([]evidenceRule{}, coreEvidence...), rollingEvidence...)
	}

	items := make([]models.EvidenceItem, 0, len(rules))
	for _, rule := range rules {
		items = append(items, models.EvidenceItem{
			ID:               rule.id,
			Name:             rule.name,
			Description:      rule.description,
			CollectionMethod: rule.method(in),
			DaysRequired:     rule.days,
			AlreadyHave:      rule.alreadyHave(in),
			Category:         rule.category,
		})
	}
	return items
}
