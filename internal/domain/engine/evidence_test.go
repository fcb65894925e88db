package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
)

func TestBuildEvidenceType1(t *testing.T) {
	in := emptyIntake()
	in.SOC2Type = models.SOC2Type1

	items := buildEvidence(in)
	require.Len(t, items, 7)
	for _, item := range items {
		assert.Zero(t, item.DaysRequired, "Type 1 evidence %s must be point-in-time", item.ID)
	}
}

func TestBuildEvidenceType2RollingItems(t *testing.T) {
	items := buildEvidence(emptyIntake())
	require.Len(t, items, 13)

	var rolling []string
	for _, item := range items {
		if item.DaysRequired == 90 {
			rolling = append(rolling, item.ID)
		} else {
			assert.Zero(t, item.DaysRequired)
		}
	}
	assert.Equal(t, []string{
		"access-logs", "change-records", "access-reviews",
		"monitoring-alerts", "backup-logs", "training-records",
	}, rolling)
}

func TestBuildEvidenceAlreadyHave(t *testing.T) {
	in := matureIntake()
	for _, item := range buildEvidence(in) {
		assert.True(t, item.AlreadyHave, "mature intake should already hold %s", item.ID)
	}

	for _, item := range buildEvidence(emptyIntake()) {
		assert.False(t, item.AlreadyHave, "empty intake cannot hold %s", item.ID)
	}
}

func TestBuildEvidenceCollectionMethods(t *testing.T) {
	t.Run("SSO roster export when SSO present", func(t *testing.T) {
		in := emptyIntake()
		in.AccessControl.HasSSO = true
		in.AccessControl.SSOProvider = models.SSOOkta
		item := evidenceByID(t, buildEvidence(in), "access-list")
		assert.Contains(t, item.CollectionMethod, "Okta")
	})

	t.Run("manual export without SSO", func(t *testing.T) {
		item := evidenceByID(t, buildEvidence(emptyIntake()), "access-list")
		assert.Contains(t, item.CollectionMethod, "manually")
	})

	t.Run("AWS-specific encryption instructions", func(t *testing.T) {
		in := emptyIntake()
		in.TechnicalInfrastructure.CloudProviders = []models.CloudProvider{models.CloudAWS}
		item := evidenceByID(t, buildEvidence(in), "encryption-config")
		assert.Contains(t, item.CollectionMethod, "S3")
	})
}

func TestLogSourcePriority(t *testing.T) {
	in := emptyIntake()
	in.TechnicalInfrastructure.CloudProviders = []models.CloudProvider{
		models.CloudGCP, models.CloudAWS,
	}
	// AWS wins regardless of selection order
	assert.Equal(t, "AWS CloudTrail and CloudWatch", logSource(in))

	in.TechnicalInfrastructure.CloudProviders = []models.CloudProvider{models.CloudGCP}
	assert.Equal(t, "GCP Cloud Audit Logs and Cloud Logging", logSource(in))

	in.TechnicalInfrastructure.CloudProviders = []models.CloudProvider{models.CloudHeroku}
	assert.Equal(t, "your cloud provider's logging console", logSource(in))
}

func TestChangeSourceFallback(t *testing.T) {
	in := emptyIntake()
	in.TechnicalInfrastructure.SourceCodeManagement = models.SCMGitLab
	assert.Contains(t, changeSource(in), "GitLab")

	in.TechnicalInfrastructure.SourceCodeManagement = models.SCMOther
	assert.Equal(t, "your version control system", changeSource(in))
}

func evidenceByID(t *testing.T, items []models.EvidenceItem, id string) models.EvidenceItem {
	t.Helper()
	for _, item := range items {
		if item.ID == id {
			return item
		}
	}
	t.Fatalf("evidence item %s not found", id)
	return models.EvidenceItem{}
}
