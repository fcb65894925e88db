package engine

import "complypath/internal/domain/models"

// maturityScore computes the weighted maturity score over all answer
// groups. Point values are fixed; the bucket maxima (34+30+10+12+13+9)
// intentionally sum past 100, so the total is clamped.
func maturityScore(in *models.Intake) int {
	score := 0

	// Access controls (34 pts)
	ac := in.AccessControl
	if ac.HasSSO {
		score += 8
	}
	if ac.HasMFA {
		if ac.MFACoverage == models.MFAAllUsers {
			score += 10
		} else {
			score += 5
		}
	}
	if ac.HasRBAC {
		score += 6
	}
	if ac.HasAccessReviews {
		score += 5
	}
	if ac.HasPrivilegedAccessManagement {
		score += 5
	}

	// Security posture (30 pts)
	sp := in.SecurityPosture
	if sp.HasSecurityPolicies {
		score += 8
	}
	if sp.HasIncidentResponsePlan {
		score += 7
	}
	if sp.HasVulnerabilityManagement {
		score += 6
	}
	if sp.HasPenetrationTesting {
		score += 5
	}
	if sp.HasSecurityAwareness {
		score += 4
	}

	// Technical infrastructure (10 pts)
	ti := in.TechnicalInfrastructure
	if ti.HasMonitoring {
		score += 6
	}
	if ti.HasCICD {
		score += 4
	}

	// Data handling (12 pts)
	dh := in.DataHandling
	if dh.HasDataClassification {
		score += 4
	}
	if dh.HasEncryptionAtRest {
		score += 4
	}
	if dh.HasEncryptionInTransit {
		score += 4
	}

	// Business continuity (13 pts)
	bc := in.BusinessContinuity
	if bc.HasBackupStrategy {
		score += 5
	}
	if bc.HasDisasterRecoveryPlan {
		score += 5
	}
	if bc.HasBCPTesting {
		score += 3
	}

	// Vendor management (9 pts)
	vm := in.VendorManagement
	if vm.HasVendorAssessment {
		score += 4
	}
	if vm.HasDataProcessingAgreements {
		score += 3
	}
	if vm.HasVendorInventory {
		score += 2
	}

	if score > 100 {
		score = 100
	}
	return score
}

// classifyRisk maps a maturity score to a risk level via fixed,
// non-overlapping thresholds
func classifyRisk(score int) models.RiskLevel {
	switch {
	case score < 30:
		return models.RiskCritical
	case score < 50:
		return models.RiskHigh
	case score < 70:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}
