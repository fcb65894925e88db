package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
)

func gapByControl(gaps []models.GapItem, control string) *models.GapItem {
	for i := range gaps {
		if gaps[i].Control == control {
			return &gaps[i]
		}
	}
	return nil
}

func TestBuildGapsAccessTiers(t *testing.T) {
	t.Run("no SSO and no MFA is critical", func(t *testing.T) {
		gaps := buildGaps(emptyIntake())
		gap := gapByControl(gaps, "CC6.1 – Logical Access Controls")
		require.NotNil(t, gap)
		assert.Equal(t, models.RiskCritical, gap.Severity)
		assert.Equal(t, "No SSO or MFA implemented", gap.CurrentState)
	})

	t.Run("SSO without MFA is high", func(t *testing.T) {
		in := emptyIntake()
		in.AccessControl.HasSSO = true
		gaps := buildGaps(in)
		gap := gapByControl(gaps, "CC6.1 – Logical Access Controls")
		require.NotNil(t, gap)
		assert.Equal(t, models.RiskHigh, gap.Severity)
		assert.Equal(t, "SSO in place but MFA not enforced", gap.CurrentState)
	})

	t.Run("partial MFA coverage is high", func(t *testing.T) {
		in := emptyIntake()
		in.AccessControl.HasMFA = true
		in.AccessControl.MFACoverage = models.MFAAdminOnly
		gaps := buildGaps(in)
		gap := gapByControl(gaps, "CC6.1 – Logical Access Controls")
		require.NotNil(t, gap)
		assert.Equal(t, models.RiskHigh, gap.Severity)
		assert.Contains(t, gap.CurrentState, "admin/privileged users only")
	})

	t.Run("full MFA coverage emits no access gap", func(t *testing.T) {
		in := emptyIntake()
		in.AccessControl.HasSSO = true
		in.AccessControl.HasMFA = true
		in.AccessControl.MFACoverage = models.MFAAllUsers
		assert.Nil(t, gapByControl(buildGaps(in), "CC6.1 – Logical Access Controls"))
	})

	t.Run("tiers are mutually exclusive", func(t *testing.T) {
		count := 0
		for _, g := range buildGaps(emptyIntake()) {
			if g.Control == "CC6.1 – Logical Access Controls" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestBuildGapsMonitoringEscalation(t *testing.T) {
	in := emptyIntake()
	in.SOC2Type = models.SOC2Type1
	gap := gapByControl(buildGaps(in), "CC7.2 – System Monitoring")
	require.NotNil(t, gap)
	assert.Equal(t, models.RiskHigh, gap.Severity)

	in.SOC2Type = models.SOC2Type2
	gap = gapByControl(buildGaps(in), "CC7.2 – System Monitoring")
	require.NotNil(t, gap)
	assert.Equal(t, models.RiskCritical, gap.Severity)
}

func TestBuildGapsEncryptionEscalation(t *testing.T) {
	in := emptyIntake()
	gap := gapByControl(buildGaps(in), "CC6.7 – Encryption at Rest")
	require.NotNil(t, gap)
	assert.Equal(t, models.RiskHigh, gap.Severity)

	in.DataHandling.HandlesCustomerPII = true
	gap = gapByControl(buildGaps(in), "CC6.7 – Encryption at Rest")
	require.NotNil(t, gap)
	assert.Equal(t, models.RiskCritical, gap.Severity)
}

func TestBuildGapsCriteriaGating(t *testing.T) {
	t.Run("availability gaps only when selected", func(t *testing.T) {
		in := emptyIntake()
		gaps := buildGaps(in)
		assert.Nil(t, gapByControl(gaps, "A1.2 – System Recovery"))
		assert.Nil(t, gapByControl(gaps, "A1.3 – Disaster Recovery"))

		in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionAvailability)
		gaps = buildGaps(in)
		assert.NotNil(t, gapByControl(gaps, "A1.2 – System Recovery"))
		assert.NotNil(t, gapByControl(gaps, "A1.3 – Disaster Recovery"))
	})

	t.Run("privacy gap only when selected", func(t *testing.T) {
		in := emptyIntake()
		assert.Nil(t, gapByControl(buildGaps(in), "P1.x – Privacy"))

		in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionPrivacy)
		assert.NotNil(t, gapByControl(buildGaps(in), "P1.x – Privacy"))
	})

	t.Run("vendor gap skipped for smallest bucket", func(t *testing.T) {
		in := emptyIntake()
		assert.Nil(t, gapByControl(buildGaps(in), "CC9.2 – Vendor Risk"))

		in.VendorManagement.CriticalVendorCount = models.Vendors6To15
		assert.NotNil(t, gapByControl(buildGaps(in), "CC9.2 – Vendor Risk"))
	})
}

func TestBuildGapsMatureIntakeIsClean(t *testing.T) {
	assert.Empty(t, buildGaps(matureIntake()))
}

func TestBuildGapsOrderIsCatalogOrder(t *testing.T) {
	gaps := buildGaps(emptyIntake())
	require.NotEmpty(t, gaps)
	// First catalog hit for an all-no intake is the access tier
	assert.Equal(t, "CC6.1 – Logical Access Controls", gaps[0].Control)
	// Control environment check sits after incident response in the catalog
	var sawIRP bool
	for _, g := range gaps {
		if g.Control == "CC9.1 – Incident Response" {
			sawIRP = true
		}
		if g.Control == "CC1.x – Control Environment" {
			assert.True(t, sawIRP, "control environment should follow incident response")
		}
	}
}
