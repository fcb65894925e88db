package engine

import (
	"strings"

	"complypath/internal/domain/models"
)

// Audit cost ranges, keyed by report type
const (
	auditCostType1 = "$15,000–$40,000"
	auditCostType2 = "$30,000–$80,000"
)

// buildScope derives what the audit covers: effective criteria, concrete
// in-scope systems, an order-fixed justification, and a cost range.
func buildScope(in *models.Intake) models.ScopeDecision {
	criteria := in.EffectiveCriteria()

	var systems []string
	for _, c := range in.TechnicalInfrastructure.CloudProviders {
		if c != models.CloudNone {
			systems = append(systems, string(c))
		}
	}
	if scm := in.TechnicalInfrastructure.SourceCodeManagement; scm != models.SCMUnspecified {
		systems = append(systems, string(scm))
	}
	if sso := ssoHint(in); sso != "" {
		systems = append(systems, sso)
	}
	if len(systems) == 0 {
		systems = []string{"All production systems"}
	}

	// Justification fragments are appended in fixed order, never reordered
	parts := []string{
		expand("{company} is a {size}-person {industry} company.", map[string]string{
			"company":  in.CompanyInfo.CompanyName,
			"size":     string(in.CompanyInfo.EmployeeCount),
			"industry": in.CompanyInfo.Industry,
		}),
	}
	if in.DataHandling.HandlesPHI {
		parts = append(parts, "PHI handling requires Privacy and Confidentiality criteria coverage.")
	}
	if in.DataHandling.HandlesPaymentData {
		parts = append(parts, "Payment data handling adds PCI DSS considerations alongside SOC 2 controls.")
	}
	if in.DataHandling.HandlesCustomerPII && in.HasCriterion(models.CriterionPrivacy) {
		parts = append(parts, "Customer PII processing supports the Privacy criteria inclusion.")
	}

	cost := auditCostType2
	if in.SOC2Type == models.SOC2Type1 {
		cost = auditCostType1
	}

	return models.ScopeDecision{
		Type:               in.SOC2Type,
		Criteria:           criteria,
		Justification:      strings.Join(parts, " "),
		SystemsInScope:     systems,
		EstimatedAuditCost: cost,
	}
}
