package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complypath/internal/domain/models"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func TestGenerateRoadmapDeterministic(t *testing.T) {
	eng := New(WithClock(fixedClock()))
	in := emptyIntake()

	first := eng.GenerateRoadmap(in)
	second := eng.GenerateRoadmap(in)

	assert.Equal(t, first, second, "identical intakes yield identical roadmaps")
}

func TestGenerateRoadmapDoesNotMutateInput(t *testing.T) {
	eng := New()
	in := emptyIntake()
	before := *in

	eng.GenerateRoadmap(in)
	assert.Equal(t, before, *in)
}

func TestGenerateRoadmapTimestamp(t *testing.T) {
	eng := New(WithClock(fixedClock()))
	roadmap := eng.GenerateRoadmap(emptyIntake())
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), roadmap.GeneratedAt)
}

// Greenfield startup pursuing a Type 1 with nothing in place.
func TestGenerateRoadmapGreenfieldType1(t *testing.T) {
	in := emptyIntake()
	in.SOC2Type = models.SOC2Type1
	in.CompanyInfo.EmployeeCount = models.Employees1To10

	roadmap := New().GenerateRoadmap(in)

	assert.Equal(t, 0, roadmap.MaturityScore)
	assert.Equal(t, models.RiskCritical, roadmap.RiskLevel)

	// Sprint 1 must schedule the blocking work
	require.NotEmpty(t, roadmap.Sprints)
	ids := taskIDs(roadmap.Sprints[0].Tasks)
	assert.Contains(t, ids, "s1-mfa")
	assert.Contains(t, ids, "s1-policy")

	require.NotNil(t, riskByID(roadmap.Risks, "risk-mfa"))

	for _, item := range roadmap.Evidence {
		assert.Zero(t, item.DaysRequired, "Type 1 carries no rolling evidence")
	}
}

// Mature company pursuing a Type 2 across security and availability.
func TestGenerateRoadmapMatureType2(t *testing.T) {
	in := matureIntake()
	in.TrustServiceCriteria = []models.TrustCriterion{
		models.CriterionSecurity, models.CriterionAvailability,
	}

	roadmap := New().GenerateRoadmap(in)

	assert.Equal(t, 100, roadmap.MaturityScore)
	assert.Equal(t, models.RiskLow, roadmap.RiskLevel)
	assert.Empty(t, roadmap.Gaps)
	assert.Empty(t, roadmap.Risks)

	rolling := 0
	for _, item := range roadmap.Evidence {
		if item.DaysRequired == 90 {
			rolling++
		}
	}
	assert.Equal(t, 6, rolling, "Type 2 carries the six rolling items")

	assert.Equal(t, []models.TrustCriterion{
		models.CriterionSecurity, models.CriterionAvailability,
	}, roadmap.Scope.Criteria)
}

func TestGenerateRoadmapRiskReferencesFollowRenumbering(t *testing.T) {
	// Access controls and incident readiness are fully covered, so the
	// second theme sprint drops out and later sprints shift up by one.
	// The vendor risk must point at wherever its remediation work landed.
	in := emptyIntake()
	in.AccessControl.HasRBAC = true
	in.AccessControl.HasAccessReviews = true
	in.SecurityPosture.HasIncidentResponsePlan = true
	in.SecurityPosture.HasVulnerabilityManagement = true
	in.VendorManagement.CriticalVendorCount = models.Vendors16To30

	roadmap := New().GenerateRoadmap(in)

	vendorSprint := 0
	for _, sprint := range roadmap.Sprints {
		for _, task := range sprint.Tasks {
			if task.ID == "s3-vendors" {
				vendorSprint = sprint.Number
			}
		}
	}
	require.Equal(t, 2, vendorSprint, "vendor work moves up when the access sprint is empty")

	risk := riskByID(roadmap.Risks, "risk-vendors")
	require.NotNil(t, risk)
	assert.Equal(t, vendorSprint, risk.SprintReference)
}

func TestGenerateRoadmapRiskReferenceClearsWithDroppedSprint(t *testing.T) {
	// The Type 1 monitoring risk is remediated in the access-controls
	// sprint; when that whole theme is satisfied the reference clears
	// rather than pointing at an unrelated sprint.
	in := emptyIntake()
	in.SOC2Type = models.SOC2Type1
	in.AccessControl.HasRBAC = true
	in.AccessControl.HasAccessReviews = true
	in.SecurityPosture.HasIncidentResponsePlan = true
	in.SecurityPosture.HasVulnerabilityManagement = true

	roadmap := New().GenerateRoadmap(in)

	risk := riskByID(roadmap.Risks, "risk-monitoring")
	require.NotNil(t, risk)
	assert.Zero(t, risk.SprintReference)
}

func TestGenerateRoadmapSprintReferencesResolvable(t *testing.T) {
	in := emptyIntake()
	in.DataHandling.HandlesCustomerPII = true
	in.TrustServiceCriteria = append(in.TrustServiceCriteria, models.CriterionAvailability)

	roadmap := New().GenerateRoadmap(in)
	maxSprint := len(roadmap.Sprints)
	for _, risk := range roadmap.Risks {
		if risk.SprintReference > 0 {
			assert.LessOrEqual(t, risk.SprintReference, maxSprint,
				"risk %s points at a sprint that exists", risk.ID)
		}
	}
}

func TestGenerateRoadmapTasksStartIncomplete(t *testing.T) {
	roadmap := New().GenerateRoadmap(emptyIntake())
	for _, sprint := range roadmap.Sprints {
		for _, task := range sprint.Tasks {
			assert.False(t, task.Completed, "engine output never carries completion state")
		}
	}
}
