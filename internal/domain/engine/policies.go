package engine

import "complypath/internal/domain/models"

// policyRule is one entry in the baseline policy catalog. The exists
// predicate derives whether the policy is already in place from the
// intake answers.
type policyRule struct {
	id     string
	name   string
	exists func(*models.Intake) bool
}

var policyCatalog = []policyRule{
	{"isp", "Information Security Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasSecurityPolicies
	}},
	{"acp", "Access Control Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasSecurityPolicies
	}},
	{"irp", "Incident Response Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasIncidentResponsePlan
	}},
	{"cmp", "Change Management Policy", func(in *models.Intake) bool {
		return in.TechnicalInfrastructure.HasCICD && in.SecurityPosture.HasSecurityPolicies
	}},
	{"vmp", "Vendor Management Policy", func(in *models.Intake) bool {
		return in.VendorManagement.HasVendorAssessment
	}},
	{"rap", "Risk Assessment Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasSecurityPolicies
	}},
	{"bcp", "Business Continuity & Disaster Recovery Policy", func(in *models.Intake) bool {
		return in.BusinessContinuity.HasDisasterRecoveryPlan
	}},
	{"dcp", "Data Classification Policy", func(in *models.Intake) bool {
		return in.DataHandling.HasDataClassification
	}},
	{"aup", "Acceptable Use Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasSecurityPolicies
	}},
	{"pap", "Password & Authentication Policy", func(in *models.Intake) bool {
		return in.SecurityPosture.HasSecurityPolicies && in.AccessControl.HasMFA
	}},
}

// buildPolicies evaluates the baseline catalog, then appends conditional
// policies triggered by data-sensitivity flags. Conditional policies are
// never pre-satisfied: they always start as exists=false.
func buildPolicies(in *models.Intake) []models.PolicyItem {
	policies := make([]models.PolicyItem, 0, len(policyCatalog)+3)
	for _, rule := range policyCatalog {
		policies = append(policies, models.PolicyItem{
			ID:       rule.id,
			Name:     rule.name,
			Exists:   rule.exists(in),
			Required: true,
		})
	}

	if in.DataHandling.HandlesPHI {
		policies = append(policies, models.PolicyItem{
			ID:          "hipaa",
			Name:        "HIPAA-Aligned Data Handling Policy",
			Exists:      false,
			Required:    true,
			Conditional: "Required because you handle Protected Health Information (PHI)",
		})
	}

	if in.DataHandling.HandlesPaymentData {
		policies = append(policies, models.PolicyItem{
			ID:          "pci",
			Name:        "Cardholder Data Security Policy",
			Exists:      false,
			Required:    true,
			Conditional: "Required because you handle payment card data",
		})
	}

	if in.HasEUResidency() || in.DataHandling.HandlesCustomerPII {
		reason := "Required because you handle customer PII"
		if in.HasEUResidency() {
			reason = "Required because you operate in the EU (GDPR)"
		}
		policies = append(policies, models.PolicyItem{
			ID:          "gdpr",
			Name:        "Data Subject Rights & Privacy Policy",
			Exists:      false,
			Required:    true,
			Conditional: reason,
		})
	}

	return policies
}

// missingPolicies returns the required policies that do not yet exist
func missingPolicies(in *models.Intake) []models.PolicyItem {
	var missing []models.PolicyItem
	for _, p := range buildPolicies(in) {
		if p.Required && !p.Exists {
			missing = append(missing, p)
		}
	}
	return missing
}
