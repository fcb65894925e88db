package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"complypath/internal/domain/models"
)

func TestBuildScopeCriteria(t *testing.T) {
	t.Run("security always present", func(t *testing.T) {
		in := emptyIntake()
		in.TrustServiceCriteria = []models.TrustCriterion{models.CriterionAvailability}
		scope := buildScope(in)
		assert.Equal(t, []models.TrustCriterion{
			models.CriterionAvailability, models.CriterionSecurity,
		}, scope.Criteria)
	})

	t.Run("duplicates collapsed", func(t *testing.T) {
		in := emptyIntake()
		in.TrustServiceCriteria = []models.TrustCriterion{
			models.CriterionSecurity, models.CriterionSecurity, models.CriterionPrivacy,
		}
		scope := buildScope(in)
		assert.Equal(t, []models.TrustCriterion{
			models.CriterionSecurity, models.CriterionPrivacy,
		}, scope.Criteria)
	})
}

func TestBuildScopeSystems(t *testing.T) {
	t.Run("named systems from intake", func(t *testing.T) {
		in := emptyIntake()
		in.TechnicalInfrastructure.CloudProviders = []models.CloudProvider{models.CloudAWS, models.CloudNone}
		in.TechnicalInfrastructure.SourceCodeManagement = models.SCMGitHub
		in.AccessControl.SSOProvider = models.SSOOkta
		scope := buildScope(in)
		assert.Equal(t, []string{"AWS", "GitHub", "Okta"}, scope.SystemsInScope)
	})

	t.Run("fallback when nothing named", func(t *testing.T) {
		scope := buildScope(emptyIntake())
		assert.Equal(t, []string{"All production systems"}, scope.SystemsInScope)
	})
}

func TestBuildScopeJustification(t *testing.T) {
	in := emptyIntake()
	in.CompanyInfo.CompanyName = "Initech"
	in.CompanyInfo.Industry = "HealthTech"
	in.DataHandling.HandlesPHI = true
	in.DataHandling.HandlesPaymentData = true
	in.DataHandling.HandlesCustomerPII = true
	in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionPrivacy)

	j := buildScope(in).Justification
	assert.Contains(t, j, "Initech is a 11-50-person HealthTech company.")
	assert.Contains(t, j, "PHI handling")
	assert.Contains(t, j, "PCI DSS")
	assert.Contains(t, j, "Customer PII")
}

func TestBuildScopeCost(t *testing.T) {
	in := emptyIntake()
	assert.Equal(t, "$30,000–$80,000", buildScope(in).EstimatedAuditCost)

	in.SOC2Type = models.SOC2Type1
	assert.Equal(t, "$15,000–$40,000", buildScope(in).EstimatedAuditCost)
}
