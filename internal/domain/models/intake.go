package models

import "fmt"

// SOC2Type represents the report variant being pursued
type SOC2Type string

const (
	SOC2Type1 SOC2Type = "type1" // point-in-time
	SOC2Type2 SOC2Type = "type2" // observation period
)

// TrustCriterion represents a SOC 2 trust-service criterion
type TrustCriterion string

const (
	CriterionSecurity            TrustCriterion = "security"
	CriterionAvailability        TrustCriterion = "availability"
	CriterionProcessingIntegrity TrustCriterion = "processing_integrity"
	CriterionConfidentiality     TrustCriterion = "confidentiality"
	CriterionPrivacy             TrustCriterion = "privacy"
)

// CloudProvider is a closed enumeration of hosting platforms
type CloudProvider string

const (
	CloudAWS          CloudProvider = "AWS"
	CloudGCP          CloudProvider = "Google Cloud (GCP)"
	CloudAzure        CloudProvider = "Microsoft Azure"
	CloudDigitalOcean CloudProvider = "DigitalOcean"
	CloudHeroku       CloudProvider = "Heroku"
	CloudVercel       CloudProvider = "Vercel"
	CloudOther        CloudProvider = "Other"
	CloudNone         CloudProvider = "None/On-premise only"
)

// SCMTool is a closed enumeration of source code management systems
type SCMTool string

const (
	SCMGitHub      SCMTool = "GitHub"
	SCMGitLab      SCMTool = "GitLab"
	SCMBitbucket   SCMTool = "Bitbucket"
	SCMAzureDevOps SCMTool = "Azure DevOps"
	SCMOther       SCMTool = "Other"
	SCMUnspecified SCMTool = ""
)

// SSOProvider is a closed enumeration of identity providers
type SSOProvider string

const (
	SSOOkta            SSOProvider = "Okta"
	SSOAzureAD         SSOProvider = "Azure AD"
	SSOGoogleWorkspace SSOProvider = "Google Workspace"
	SSOOneLogin        SSOProvider = "OneLogin"
	SSOAuth0           SSOProvider = "Auth0"
	SSOOther           SSOProvider = "Other"
	SSONone            SSOProvider = "None"
)

// EmployeeCount buckets company headcount
type EmployeeCount string

const (
	Employees1To10    EmployeeCount = "1-10"
	Employees11To50   EmployeeCount = "11-50"
	Employees51To200  EmployeeCount = "51-200"
	Employees201To500 EmployeeCount = "201-500"
	Employees500Plus  EmployeeCount = "500+"
)

// VendorCount buckets the number of critical vendors
type VendorCount string

const (
	Vendors0To5   VendorCount = "0-5"
	Vendors6To15  VendorCount = "6-15"
	Vendors16To30 VendorCount = "16-30"
	Vendors31To50 VendorCount = "31-50"
	Vendors50Plus VendorCount = "50+"
)

// MFACoverage describes how widely MFA is enforced
type MFACoverage string

const (
	MFAAllUsers       MFACoverage = "All users"
	MFAAdminOnly      MFACoverage = "Admin/privileged users only"
	MFASomeUsers      MFACoverage = "Some users"
	MFANotImplemented MFACoverage = "Not implemented"
)

// AccessReviewFrequency buckets how often access reviews run
type AccessReviewFrequency string

const (
	ReviewMonthly    AccessReviewFrequency = "Monthly"
	ReviewQuarterly  AccessReviewFrequency = "Quarterly"
	ReviewSemiAnnual AccessReviewFrequency = "Semi-annually"
	ReviewAnnual     AccessReviewFrequency = "Annually"
	ReviewAdHoc      AccessReviewFrequency = "Never/Ad-hoc"
)

// RecoveryObjective buckets RTO and RPO targets
type RecoveryObjective string

const (
	RecoveryUnderHour  RecoveryObjective = "Less than 1 hour"
	Recovery1To4Hours  RecoveryObjective = "1-4 hours"
	Recovery4To24Hours RecoveryObjective = "4-24 hours"
	Recovery1To3Days   RecoveryObjective = "1-3 days"
	Recovery3PlusDays  RecoveryObjective = "3+ days"
	RecoveryUndefined  RecoveryObjective = "Not defined"
)

// BackupFrequency buckets how often backups run
type BackupFrequency string

const (
	BackupContinuous BackupFrequency = "Real-time/Continuous"
	BackupHourly     BackupFrequency = "Hourly"
	BackupDaily      BackupFrequency = "Daily"
	BackupWeekly     BackupFrequency = "Weekly"
	BackupMonthly    BackupFrequency = "Monthly"
	BackupNone       BackupFrequency = "No regular backups"
)

// ResidencyEU is the data-residency answer that triggers GDPR handling
const ResidencyEU = "European Union (GDPR)"

// CompanyInfo holds basic organization facts
type CompanyInfo struct {
	CompanyName   string        `json:"company_name"`
	Industry      string        `json:"industry"`
	EmployeeCount EmployeeCount `json:"employee_count"`
	YearFounded   string        `json:"year_founded,omitempty"`
	Website       string        `json:"website,omitempty"`
}

// TechnicalInfrastructure describes the production stack
type TechnicalInfrastructure struct {
	CloudProviders        []CloudProvider `json:"cloud_providers"`
	HostingType           string          `json:"hosting_type,omitempty"`
	HasProductionDatabase bool            `json:"has_production_database"`
	DatabaseTypes         []string        `json:"database_types,omitempty"`
	UsesContainers        bool            `json:"uses_containers"`
	HasCICD               bool            `json:"has_ci_cd"`
	SourceCodeManagement  SCMTool         `json:"source_code_management"`
	HasMonitoring         bool            `json:"has_monitoring"`
}

// DataHandling describes data sensitivity and protection
type DataHandling struct {
	HandlesCustomerPII       bool     `json:"handles_customer_pii"`
	HandlesPHI               bool     `json:"handles_phi"`
	HandlesPaymentData       bool     `json:"handles_payment_data"`
	DataResidencyRequirement []string `json:"data_residency_requirements,omitempty"`
	HasDataClassification    bool     `json:"has_data_classification"`
	HasEncryptionAtRest      bool     `json:"has_encryption_at_rest"`
	HasEncryptionInTransit   bool     `json:"has_encryption_in_transit"`
}

// SecurityPosture describes the existing security program
type SecurityPosture struct {
	HasSecurityTeam            bool     `json:"has_security_team"`
	SecurityTeamSize           string   `json:"security_team_size,omitempty"`
	HasSecurityPolicies        bool     `json:"has_security_policies"`
	HasIncidentResponsePlan    bool     `json:"has_incident_response_plan"`
	HasVulnerabilityManagement bool     `json:"has_vulnerability_management"`
	HasPenetrationTesting      bool     `json:"has_penetration_testing"`
	HasSecurityAwareness       bool     `json:"has_security_awareness"`
	CurrentCompliances         []string `json:"current_compliances,omitempty"`
}

// AccessControl describes identity and access management
type AccessControl struct {
	HasSSO                        bool                  `json:"has_sso"`
	SSOProvider                   SSOProvider           `json:"sso_provider,omitempty"`
	HasMFA                        bool                  `json:"has_mfa"`
	MFACoverage                   MFACoverage           `json:"mfa_coverage,omitempty"`
	HasRBAC                       bool                  `json:"has_rbac"`
	HasPrivilegedAccessManagement bool                  `json:"has_privileged_access_management"`
	HasAccessReviews              bool                  `json:"has_access_reviews"`
	AccessReviewFrequency         AccessReviewFrequency `json:"access_review_frequency,omitempty"`
}

// VendorManagement describes the third-party risk program
type VendorManagement struct {
	CriticalVendorCount         VendorCount `json:"critical_vendor_count"`
	HasVendorAssessment         bool        `json:"has_vendor_assessment"`
	HasVendorInventory          bool        `json:"has_vendor_inventory"`
	HasDataProcessingAgreements bool        `json:"has_data_processing_agreements"`
}

// BusinessContinuity describes backup and recovery capabilities
type BusinessContinuity struct {
	HasBackupStrategy       bool              `json:"has_backup_strategy"`
	BackupFrequency         BackupFrequency   `json:"backup_frequency,omitempty"`
	HasDisasterRecoveryPlan bool              `json:"has_disaster_recovery_plan"`
	HasBCPTesting           bool              `json:"has_bcp_testing"`
	RTORequirement          RecoveryObjective `json:"rto_requirement,omitempty"`
	RPORequirement          RecoveryObjective `json:"rpo_requirement,omitempty"`
}

// Intake is the fully-populated self-assessment questionnaire. It is the
// engine's only input and is never mutated by it.
type Intake struct {
	CompanyInfo             CompanyInfo             `json:"company_info"`
	TechnicalInfrastructure TechnicalInfrastructure `json:"technical_infrastructure"`
	DataHandling            DataHandling            `json:"data_handling"`
	SecurityPosture         SecurityPosture         `json:"security_posture"`
	AccessControl           AccessControl           `json:"access_control"`
	VendorManagement        VendorManagement        `json:"vendor_management"`
	BusinessContinuity      BusinessContinuity      `json:"business_continuity"`
	TargetCompletionDate    string                  `json:"target_completion_date,omitempty"`
	SOC2Type                SOC2Type                `json:"soc2_type"`
	TrustServiceCriteria    []TrustCriterion        `json:"trust_service_criteria"`
}

// EffectiveCriteria returns the selected trust-service criteria with the
// Security criterion always included, preserving the input order.
func (in *Intake) EffectiveCriteria() []TrustCriterion {
	out := make([]TrustCriterion, 0, len(in.TrustServiceCriteria)+1)
	seen := make(map[TrustCriterion]bool, len(in.TrustServiceCriteria)+1)
	for _, c := range in.TrustServiceCriteria {
		if !seen[c] {
			out = append(out, c)
			seen[c] = true
		}
	}
	if !seen[CriterionSecurity] {
		out = append(out, CriterionSecurity)
	}
	return out
}

// HasCriterion reports whether the effective criteria set includes c
func (in *Intake) HasCriterion(c TrustCriterion) bool {
	if c == CriterionSecurity {
		return true
	}
	for _, sel := range in.TrustServiceCriteria {
		if sel == c {
			return true
		}
	}
	return false
}

// HasCloud reports whether the given provider was selected
func (in *Intake) HasCloud(p CloudProvider) bool {
	for _, c := range in.TechnicalInfrastructure.CloudProviders {
		if c == p {
			return true
		}
	}
	return false
}

// HasEUResidency reports whether EU/GDPR data residency was declared
func (in *Intake) HasEUResidency() bool {
	for _, r := range in.DataHandling.DataResidencyRequirement {
		if r == ResidencyEU {
			return true
		}
	}
	return false
}

// HandlesSensitiveData reports whether any regulated data type is handled
func (in *Intake) HandlesSensitiveData() bool {
	d := in.DataHandling
	return d.HandlesCustomerPII || d.HandlesPHI || d.HandlesPaymentData
}

var validSOC2Types = map[SOC2Type]bool{
	SOC2Type1: true,
	SOC2Type2: true,
}

var validCriteria = map[TrustCriterion]bool{
	CriterionSecurity:            true,
	CriterionAvailability:        true,
	CriterionProcessingIntegrity: true,
	CriterionConfidentiality:     true,
	CriterionPrivacy:             true,
}

var validClouds = map[CloudProvider]bool{
	CloudAWS: true, CloudGCP: true, CloudAzure: true, CloudDigitalOcean: true,
	CloudHeroku: true, CloudVercel: true, CloudOther: true, CloudNone: true,
}

var validSCMs = map[SCMTool]bool{
	SCMGitHub: true, SCMGitLab: true, SCMBitbucket: true,
	SCMAzureDevOps: true, SCMOther: true, SCMUnspecified: true,
}

var validSSOs = map[SSOProvider]bool{
	SSOOkta: true, SSOAzureAD: true, SSOGoogleWorkspace: true,
	SSOOneLogin: true, SSOAuth0: true, SSOOther: true, SSONone: true, "": true,
}

var validEmployeeCounts = map[EmployeeCount]bool{
	Employees1To10: true, Employees11To50: true, Employees51To200: true,
	Employees201To500: true, Employees500Plus: true,
}

var validVendorCounts = map[VendorCount]bool{
	Vendors0To5: true, Vendors6To15: true, Vendors16To30: true,
	Vendors31To50: true, Vendors50Plus: true,
}

var validMFACoverages = map[MFACoverage]bool{
	MFAAllUsers: true, MFAAdminOnly: true, MFASomeUsers: true,
	MFANotImplemented: true, "": true,
}

var validBackupFrequencies = map[BackupFrequency]bool{
	BackupContinuous: true, BackupHourly: true, BackupDaily: true,
	BackupWeekly: true, BackupMonthly: true, BackupNone: true, "": true,
}

var validReviewFrequencies = map[AccessReviewFrequency]bool{
	ReviewMonthly: true, ReviewQuarterly: true, ReviewSemiAnnual: true,
	ReviewAnnual: true, ReviewAdHoc: true, "": true,
}

var validRecoveryObjectives = map[RecoveryObjective]bool{
	RecoveryUnderHour: true, Recovery1To4Hours: true, Recovery4To24Hours: true,
	Recovery1To3Days: true, Recovery3PlusDays: true, RecoveryUndefined: true, "": true,
}

// Validate checks that the intake record is structurally valid: required
// fields present and every enum value inside its closed set. The engine
// assumes a validated record and performs no checks of its own.
func (in *Intake) Validate() error {
	if in.CompanyInfo.CompanyName == "" {
		return fmt.Errorf("company_info.company_name is required")
	}
	if !validEmployeeCounts[in.CompanyInfo.EmployeeCount] {
		return fmt.Errorf("invalid employee_count %q", in.CompanyInfo.EmployeeCount)
	}
	if !validSOC2Types[in.SOC2Type] {
		return fmt.Errorf("invalid soc2_type %q", in.SOC2Type)
	}
	if len(in.TrustServiceCriteria) == 0 {
		return fmt.Errorf("trust_service_criteria must not be empty")
	}
	for _, c := range in.TrustServiceCriteria {
		if !validCriteria[c] {
			return fmt.Errorf("invalid trust criterion %q", c)
		}
	}
	for _, p := range in.TechnicalInfrastructure.CloudProviders {
		if !validClouds[p] {
			return fmt.Errorf("invalid cloud provider %q", p)
		}
	}
	if !validSCMs[in.TechnicalInfrastructure.SourceCodeManagement] {
		return fmt.Errorf("invalid source_code_management %q", in.TechnicalInfrastructure.SourceCodeManagement)
	}
	if !validSSOs[in.AccessControl.SSOProvider] {
		return fmt.Errorf("invalid sso_provider %q", in.AccessControl.SSOProvider)
	}
	if !validMFACoverages[in.AccessControl.MFACoverage] {
		return fmt.Errorf("invalid mfa_coverage %q", in.AccessControl.MFACoverage)
	}
	if !validReviewFrequencies[in.AccessControl.AccessReviewFrequency] {
		return fmt.Errorf("invalid access_review_frequency %q", in.AccessControl.AccessReviewFrequency)
	}
	if !validVendorCounts[in.VendorManagement.CriticalVendorCount] {
		return fmt.Errorf("invalid critical_vendor_count %q", in.VendorManagement.CriticalVendorCount)
	}
	if !validBackupFrequencies[in.BusinessContinuity.BackupFrequency] {
		return fmt.Errorf("invalid backup_frequency %q", in.BusinessContinuity.BackupFrequency)
	}
	if !validRecoveryObjectives[in.BusinessContinuity.RTORequirement] {
		return fmt.Errorf("invalid rto_requirement %q", in.BusinessContinuity.RTORequirement)
	}
	if !validRecoveryObjectives[in.BusinessContinuity.RPORequirement] {
		return fmt.Errorf("invalid rpo_requirement %q", in.BusinessContinuity.RPORequirement)
	}
	return nil
}
