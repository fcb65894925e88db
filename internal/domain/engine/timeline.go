package engine

import "complypath/internal/domain/models"

// estimateTimeline returns the recommended number of weeks to audit-ready.
// The base and the floor depend on the report type; every adjustment is
// additive and applied independently.
func estimateTimeline(in *models.Intake, maturityScore int) int {
	weeks := 20
	floor := 12
	if in.SOC2Type == models.SOC2Type1 {
		weeks = 8
		floor = 6
	}

	// Maturity modifier
	switch {
	case maturityScore < 30:
		weeks += 8
	case maturityScore < 50:
		weeks += 4
	case maturityScore >= 70:
		weeks -= 4
	}

	// Sensitive data widens audit scope
	if in.DataHandling.HandlesPHI || in.DataHandling.HandlesPaymentData {
		weeks += 4
	}

	// Each trust criterion beyond Security adds scope
	for _, c := range in.EffectiveCriteria() {
		if c != models.CriterionSecurity {
			weeks += 2
		}
	}

	// Org factors
	if !in.SecurityPosture.HasSecurityTeam {
		weeks += 4
	}
	switch in.CompanyInfo.EmployeeCount {
	case models.Employees51To200, models.Employees201To500, models.Employees500Plus:
		weeks += 2
	}

	if weeks < floor {
		weeks = floor
	}
	return weeks
}
