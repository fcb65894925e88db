package engine

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
)

func riskByID(risks []models.RiskItem, id string) *models.RiskItem {
	for i := range risks {
		if risks[i].ID == id {
			return &risks[i]
		}
	}
	return nil
}

func TestBuildRisksMFASeverity(t *testing.T) {
	t.Run("plain missing MFA is high", func(t *testing.T) {
		risk := riskByID(buildRisks(emptyIntake()), "risk-mfa")
		require.NotNil(t, risk)
		assert.Equal(t, models.RiskHigh, risk.Severity)
	})

	t.Run("sensitive data escalates and names the data type", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesPHI = true
		in.DataHandling.HandlesPaymentData = true
		risk := riskByID(buildRisks(in), "risk-mfa")
		require.NotNil(t, risk)
		assert.Equal(t, models.RiskCritical, risk.Severity)
		// PHI wins over payment data in the description
		assert.Contains(t, risk.Description, "PHI")
	})

	t.Run("payment data named when no PHI", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesPaymentData = true
		risk := riskByID(buildRisks(in), "risk-mfa")
		require.NotNil(t, risk)
		assert.Contains(t, risk.Description, "payment data")
	})

	t.Run("absent when MFA enabled", func(t *testing.T) {
		in := emptyIntake()
		in.AccessControl.HasMFA = true
		assert.Nil(t, riskByID(buildRisks(in), "risk-mfa"))
	})
}

func TestBuildRisksMonitoring(t *testing.T) {
	in := emptyIntake()
	in.SOC2Type = models.SOC2Type2
	risk := riskByID(buildRisks(in), "risk-monitoring")
	require.NotNil(t, risk)
	assert.Equal(t, models.RiskCritical, risk.Severity)
	assert.Equal(t, 1, risk.SprintReference)

	in.SOC2Type = models.SOC2Type1
	risk = riskByID(buildRisks(in), "risk-monitoring")
	require.NotNil(t, risk)
	assert.Equal(t, models.RiskHigh, risk.Severity)
	assert.Equal(t, 2, risk.SprintReference)
}

func TestBuildRisksVendorScale(t *testing.T) {
	in := emptyIntake()
	in.VendorManagement.CriticalVendorCount = models.Vendors6To15
	assert.Nil(t, riskByID(buildRisks(in), "risk-vendors"), "small vendor counts carry no ranked risk")

	in.VendorManagement.CriticalVendorCount = models.Vendors16To30
	risk := riskByID(buildRisks(in), "risk-vendors")
	require.NotNil(t, risk)
	assert.Equal(t, models.RiskMedium, risk.Severity)
	assert.Contains(t, risk.Description, "16-30")

	in.VendorManagement.HasVendorAssessment = true
	assert.Nil(t, riskByID(buildRisks(in), "risk-vendors"))
}

func TestBuildRisksAvailabilityBackups(t *testing.T) {
	in := emptyIntake()
	in.BusinessContinuity.HasBackupStrategy = true
	in.BusinessContinuity.BackupFrequency = models.BackupWeekly
	assert.Nil(t, riskByID(buildRisks(in), "risk-availability"), "gated on the Availability criterion")

	in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionAvailability)
	risk := riskByID(buildRisks(in), "risk-availability")
	require.NotNil(t, risk)
	assert.Contains(t, risk.Description, "Weekly")

	in.BusinessContinuity.BackupFrequency = models.BackupDaily
	assert.Nil(t, riskByID(buildRisks(in), "risk-availability"))

	in.BusinessContinuity.HasBackupStrategy = false
	in.BusinessContinuity.BackupFrequency = ""
	risk = riskByID(buildRisks(in), "risk-availability")
	require.NotNil(t, risk)
	assert.Contains(t, risk.Description, "none")
}

func TestBuildRisksCapAndOrder(t *testing.T) {
	// Worst case trips all six catalog rules
	in := emptyIntake()
	in.DataHandling.HandlesPHI = true
	in.VendorManagement.CriticalVendorCount = models.Vendors50Plus
	in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionAvailability)

	risks := buildRisks(in)
	assert.Len(t, risks, 5, "list is capped")

	assert.True(t, sort.SliceIsSorted(risks, func(i, j int) bool {
		return risks[i].Severity.Weight() < risks[j].Severity.Weight()
	}), "critical entries first")

	// The medium vendor risk is what falls off the end
	assert.Nil(t, riskByID(risks, "risk-vendors"))
}

func TestBuildRisksMatureIntakeIsEmpty(t *testing.T) {
	assert.Empty(t, buildRisks(matureIntake()))
}
