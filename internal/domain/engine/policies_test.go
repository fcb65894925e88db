package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
)

func policyByID(policies []models.PolicyItem, id string) *models.PolicyItem {
	for i := range policies {
		if policies[i].ID == id {
			return &policies[i]
		}
	}
	return nil
}

func TestBuildPoliciesBaseline(t *testing.T) {
	policies := buildPolicies(emptyIntake())
	require.Len(t, policies, 10)

	for _, p := range policies {
		assert.True(t, p.Required, "baseline policy %s must be required", p.ID)
		assert.False(t, p.Exists, "empty intake has no policies in place")
		assert.Empty(t, p.Conditional)
	}
}

func TestBuildPoliciesExistsDerivation(t *testing.T) {
	in := emptyIntake()
	in.SecurityPosture.HasSecurityPolicies = true

	policies := buildPolicies(in)
	assert.True(t, policyByID(policies, "isp").Exists)
	assert.True(t, policyByID(policies, "acp").Exists)
	assert.True(t, policyByID(policies, "aup").Exists)
	// Compound derivations need their second flag too
	assert.False(t, policyByID(policies, "cmp").Exists)
	assert.False(t, policyByID(policies, "pap").Exists)

	in.TechnicalInfrastructure.HasCICD = true
	in.AccessControl.HasMFA = true
	policies = buildPolicies(in)
	assert.True(t, policyByID(policies, "cmp").Exists)
	assert.True(t, policyByID(policies, "pap").Exists)
}

func TestBuildPoliciesConditional(t *testing.T) {
	t.Run("none without sensitivity flags", func(t *testing.T) {
		policies := buildPolicies(emptyIntake())
		assert.Nil(t, policyByID(policies, "hipaa"))
		assert.Nil(t, policyByID(policies, "pci"))
		assert.Nil(t, policyByID(policies, "gdpr"))
	})

	t.Run("PHI adds HIPAA policy", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesPHI = true
		p := policyByID(buildPolicies(in), "hipaa")
		require.NotNil(t, p)
		assert.False(t, p.Exists)
		assert.True(t, p.Required)
		assert.Contains(t, p.Conditional, "PHI")
	})

	t.Run("payment data adds PCI policy", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesPaymentData = true
		p := policyByID(buildPolicies(in), "pci")
		require.NotNil(t, p)
		assert.Contains(t, p.Conditional, "payment card data")
	})

	t.Run("PII adds GDPR policy", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesCustomerPII = true
		p := policyByID(buildPolicies(in), "gdpr")
		require.NotNil(t, p)
		assert.Contains(t, p.Conditional, "customer PII")
	})

	t.Run("EU residency reason wins over PII", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesCustomerPII = true
		in.DataHandling.DataResidencyRequirement = []string{models.ResidencyEU}
		p := policyByID(buildPolicies(in), "gdpr")
		require.NotNil(t, p)
		assert.Contains(t, p.Conditional, "GDPR")
	})

	t.Run("conditional policies never pre-satisfied", func(t *testing.T) {
		in := matureIntake()
		in.DataHandling.HandlesPHI = true
		in.DataHandling.HandlesPaymentData = true
		in.DataHandling.HandlesCustomerPII = true
		for _, id := range []string{"hipaa", "pci", "gdpr"} {
			p := policyByID(buildPolicies(in), id)
			require.NotNil(t, p)
			assert.False(t, p.Exists, "%s must start as missing", id)
		}
	})
}

func TestMissingPolicies(t *testing.T) {
	in := matureIntake()
	assert.Empty(t, missingPolicies(in))

	in.DataHandling.HandlesPHI = true
	missing := missingPolicies(in)
	require.Len(t, missing, 1)
	assert.Equal(t, "hipaa", missing[0].ID)
}
