package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
	"complypath/pkg/logger"
)

func testCatalog() *VendorCatalog {
	v := NewVendorCatalog(logger.NewDefault())
	v.now = func() time.Time {
		return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	}
	return v
}

func vendorNames(vendors []models.Vendor) []string {
	names := make([]string, len(vendors))
	for i, v := range vendors {
		names[i] = v.Name
	}
	return names
}

func TestAutoPopulate(t *testing.T) {
	in := &models.Intake{
		TechnicalInfrastructure: models.TechnicalInfrastructure{
			CloudProviders:       []models.CloudProvider{models.CloudAWS, models.CloudHeroku},
			SourceCodeManagement: models.SCMGitHub,
			DatabaseTypes:        []string{"PostgreSQL", "MongoDB"},
		},
		AccessControl: models.AccessControl{
			SSOProvider: models.SSOOkta,
		},
		DataHandling: models.DataHandling{
			HandlesPaymentData: true,
		},
	}

	vendors := testCatalog().AutoPopulate(in)
	names := vendorNames(vendors)

	assert.Contains(t, names, "AWS")
	assert.Contains(t, names, "Heroku")
	assert.Contains(t, names, "GitHub")
	assert.Contains(t, names, "Okta")
	assert.Contains(t, names, "Stripe")
	assert.Contains(t, names, "MongoDB Atlas")
	assert.Contains(t, names, "Slack", "Slack is always inferred")
	assert.Len(t, vendors, 7)
}

func TestAutoPopulateMinimalIntake(t *testing.T) {
	vendors := testCatalog().AutoPopulate(&models.Intake{})
	// Only the universal Slack default remains
	assert.Equal(t, []string{"Slack"}, vendorNames(vendors))
}

func TestAutoPopulateDeduplicates(t *testing.T) {
	in := &models.Intake{
		TechnicalInfrastructure: models.TechnicalInfrastructure{
			CloudProviders: []models.CloudProvider{models.CloudAWS, models.CloudAWS},
		},
	}
	vendors := testCatalog().AutoPopulate(in)
	count := 0
	for _, v := range vendors {
		if v.Name == "AWS" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAutoPopulateVendorFields(t *testing.T) {
	in := &models.Intake{
		TechnicalInfrastructure: models.TechnicalInfrastructure{
			CloudProviders: []models.CloudProvider{models.CloudAWS},
		},
	}
	vendors := testCatalog().AutoPopulate(in)
	require.NotEmpty(t, vendors)

	aws := vendors[0]
	assert.Equal(t, "aws", aws.ID)
	assert.Equal(t, models.VendorTierCritical, aws.RiskTier)
	assert.Equal(t, models.AssessmentNotStarted, aws.AssessmentStatus)
	assert.True(t, aws.AutoDetected)
	assert.True(t, aws.HasSOC2Report)
	assert.NotEmpty(t, aws.SOC2ReportURL)
	assert.True(t, aws.HasProductionAccess)
}

func TestNextReviewDate(t *testing.T) {
	v := testCatalog()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, base.AddDate(0, 0, 365), v.NextReviewDate(models.VendorTierCritical))
	assert.Equal(t, base.AddDate(0, 0, 365), v.NextReviewDate(models.VendorTierHigh))
	assert.Equal(t, base.AddDate(0, 0, 730), v.NextReviewDate(models.VendorTierMedium))
	assert.Equal(t, base.AddDate(0, 0, 1095), v.NextReviewDate(models.VendorTierLow))
}

func TestVendorID(t *testing.T) {
	assert.Equal(t, "google-cloud--gcp-", vendorID("Google Cloud (GCP)"))
	assert.Equal(t, "azure-ad--entra-id-", vendorID("Azure AD (Entra ID)"))
	assert.Equal(t, "slack", vendorID("Slack"))
}
