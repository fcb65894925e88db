package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"complypath/internal/domain/models"
)

func TestEstimateTimeline(t *testing.T) {
	t.Run("type2 mature baseline", func(t *testing.T) {
		in := matureIntake()
		// base 20, -4 for score >= 70
		assert.Equal(t, 16, estimateTimeline(in, 100))
	})

	t.Run("type1 floor applies", func(t *testing.T) {
		in := matureIntake()
		in.SOC2Type = models.SOC2Type1
		// base 8, -4 for score >= 70, floored at 6
		assert.Equal(t, 6, estimateTimeline(in, 100))
	})

	t.Run("low maturity extends type2", func(t *testing.T) {
		in := emptyIntake()
		in.SecurityPosture.HasSecurityTeam = true
		// base 20 + 8 for score < 30
		assert.Equal(t, 28, estimateTimeline(in, 0))
	})

	t.Run("mid maturity extends less", func(t *testing.T) {
		in := emptyIntake()
		in.SecurityPosture.HasSecurityTeam = true
		// base 20 + 4 for score in [30,50)
		assert.Equal(t, 24, estimateTimeline(in, 40))
	})

	t.Run("sensitive data adds four weeks", func(t *testing.T) {
		in := matureIntake()
		in.DataHandling.HandlesPHI = true
		assert.Equal(t, 20, estimateTimeline(in, 100))
	})

	t.Run("each extra criterion adds two weeks", func(t *testing.T) {
		in := matureIntake()
		in.TrustServiceCriteria = []models.TrustCriterion{
			models.CriterionSecurity,
			models.CriterionAvailability,
			models.CriterionConfidentiality,
		}
		assert.Equal(t, 16+4, estimateTimeline(in, 100))
	})

	t.Run("security criterion alone adds nothing", func(t *testing.T) {
		in := matureIntake()
		in.TrustServiceCriteria = nil // security still implied
		assert.Equal(t, 16, estimateTimeline(in, 100))
	})

	t.Run("no security team adds four weeks", func(t *testing.T) {
		in := matureIntake()
		in.SecurityPosture.HasSecurityTeam = false
		assert.Equal(t, 20, estimateTimeline(in, 100))
	})

	t.Run("larger companies add two weeks", func(t *testing.T) {
		for _, size := range []models.EmployeeCount{
			models.Employees51To200,
			models.Employees201To500,
			models.Employees500Plus,
		} {
			in := matureIntake()
			in.CompanyInfo.EmployeeCount = size
			assert.Equal(t, 18, estimateTimeline(in, 100), "size %s", size)
		}
	})

	t.Run("modifiers are additive", func(t *testing.T) {
		in := emptyIntake()
		in.DataHandling.HandlesPaymentData = true
		in.TrustServiceCriteria = []models.TrustCriterion{
			models.CriterionSecurity, models.CriterionPrivacy,
		}
		in.CompanyInfo.EmployeeCount = models.Employees500Plus
		// 20 + 8 (score) + 4 (payment) + 2 (privacy) + 4 (no team) + 2 (size)
		assert.Equal(t, 40, estimateTimeline(in, 0))
	})
}
