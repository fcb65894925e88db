package services

import (
	"strings"
	"time"

	"complypath/internal/domain/models"
	"complypath/pkg/logger"
)

// knownVendor is one entry in the built-in vendor intelligence catalog
type knownVendor struct {
	name             string
	website          string
	category         models.VendorCategory
	riskTier         models.VendorRiskTier
	dataAccess       []string
	productionAccess bool
	soc2ReportURL    string
}

// knownVendors maps intake answer values to vendor intelligence. Keys
// match the intake enum values so auto-population is a direct lookup.
var knownVendors = map[string]knownVendor{
	"AWS": {
		name: "AWS", website: "https://aws.amazon.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"production data", "customer data", "source code"},
		productionAccess: true, soc2ReportURL: "https://aws.amazon.com/compliance/soc/",
	},
	"Google Cloud (GCP)": {
		name: "Google Cloud (GCP)", website: "https://cloud.google.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"production data", "customer data"},
		productionAccess: true, soc2ReportURL: "https://cloud.google.com/security/compliance/soc-2",
	},
	"Microsoft Azure": {
		name: "Microsoft Azure", website: "https://azure.microsoft.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"production data", "customer data"},
		productionAccess: true, soc2ReportURL: "https://servicetrust.microsoft.com",
	},
	"DigitalOcean": {
		name: "DigitalOcean", website: "https://www.digitalocean.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"production data", "customer data"},
		productionAccess: true, soc2ReportURL: "https://www.digitalocean.com/trust/certification-reports",
	},
	"Heroku": {
		name: "Heroku", website: "https://www.heroku.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierHigh,
		dataAccess:       []string{"production data", "source code"},
		productionAccess: true, soc2ReportURL: "https://www.heroku.com/policy/security",
	},
	"Vercel": {
		name: "Vercel", website: "https://vercel.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierHigh,
		dataAccess:       []string{"source code", "environment variables"},
		productionAccess: true, soc2ReportURL: "https://vercel.com/security",
	},
	"GitHub": {
		name: "GitHub", website: "https://github.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:    []string{"source code", "secrets (if not managed separately)"},
		soc2ReportURL: "https://github.com/security",
	},
	"GitLab": {
		name: "GitLab", website: "https://gitlab.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:    []string{"source code", "CI/CD secrets"},
		soc2ReportURL: "https://about.gitlab.com/security/",
	},
	"Bitbucket": {
		name: "Bitbucket", website: "https://bitbucket.org",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:    []string{"source code"},
		soc2ReportURL: "https://www.atlassian.com/trust/compliance/resources",
	},
	"Azure DevOps": {
		name: "Azure DevOps", website: "https://dev.azure.com",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:    []string{"source code", "CI/CD pipelines"},
		soc2ReportURL: "https://servicetrust.microsoft.com",
	},
	"Okta": {
		name: "Okta", website: "https://www.okta.com",
		category: models.VendorIdentity, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"user identities", "authentication logs", "all system access"},
		productionAccess: true, soc2ReportURL: "https://trust.okta.com",
	},
	"Azure AD": {
		name: "Azure AD (Entra ID)", website: "https://azure.microsoft.com/en-us/products/active-directory",
		category: models.VendorIdentity, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"user identities", "authentication logs", "all system access"},
		productionAccess: true, soc2ReportURL: "https://servicetrust.microsoft.com",
	},
	"Google Workspace": {
		name: "Google Workspace", website: "https://workspace.google.com",
		category: models.VendorIdentity, riskTier: models.VendorTierCritical,
		dataAccess:    []string{"email", "documents", "user identities", "internal communications"},
		soc2ReportURL: "https://workspace.google.com/security",
	},
	"OneLogin": {
		name: "OneLogin", website: "https://www.onelogin.com",
		category: models.VendorIdentity, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"user identities", "authentication logs"},
		productionAccess: true, soc2ReportURL: "https://www.onelogin.com/security",
	},
	"Auth0": {
		name: "Auth0", website: "https://auth0.com",
		category: models.VendorIdentity, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"user identities", "authentication data"},
		productionAccess: true, soc2ReportURL: "https://auth0.com/security",
	},
	"Stripe": {
		name: "Stripe", website: "https://stripe.com",
		category: models.VendorPayment, riskTier: models.VendorTierHigh,
		dataAccess:    []string{"financial data", "payment card data", "PII"},
		soc2ReportURL: "https://stripe.com/docs/security",
	},
	"MongoDB": {
		name: "MongoDB Atlas", website: "https://www.mongodb.com/atlas",
		category: models.VendorInfrastructure, riskTier: models.VendorTierCritical,
		dataAccess:       []string{"customer data", "production data"},
		productionAccess: true, soc2ReportURL: "https://www.mongodb.com/cloud/trust",
	},
	"Slack": {
		name: "Slack", website: "https://slack.com",
		category: models.VendorCommunication, riskTier: models.VendorTierMedium,
		dataAccess:    []string{"internal communications", "potentially sensitive business data"},
		soc2ReportURL: "https://slack.com/trust",
	},
}

// VendorCatalog auto-populates a vendor inventory from intake answers
type VendorCatalog struct {
	now    func() time.Time
	logger *logger.Logger
}

// NewVendorCatalog creates a VendorCatalog
func NewVendorCatalog(log *logger.Logger) *VendorCatalog {
	return &VendorCatalog{
		now:    time.Now,
		logger: log.WithComponent("vendors"),
	}
}

// AutoPopulate derives the starting vendor inventory from the systems the
// company already named in its intake: clouds, SCM, SSO, plus inferred
// entries (Stripe for payment data, MongoDB Atlas as a hosted database,
// Slack as a near-universal default).
func (v *VendorCatalog) AutoPopulate(in *models.Intake) []models.Vendor {
	var vendors []models.Vendor
	seen := make(map[string]bool)

	add := func(key string) {
		known, ok := knownVendors[key]
		if !ok || seen[key] {
			return
		}
		seen[key] = true
		vendors = append(vendors, v.makeVendor(known))
	}

	for _, cloud := range in.TechnicalInfrastructure.CloudProviders {
		add(string(cloud))
	}
	add(string(in.TechnicalInfrastructure.SourceCodeManagement))
	add(string(in.AccessControl.SSOProvider))

	if in.DataHandling.HandlesPaymentData {
		add("Stripe")
	}
	for _, db := range in.TechnicalInfrastructure.DatabaseTypes {
		if db == "MongoDB" {
			add("MongoDB")
		}
	}
	add("Slack")

	v.logger.Debug().Int("count", len(vendors)).Msg("auto-populated vendor inventory")
	return vendors
}

func (v *VendorCatalog) makeVendor(known knownVendor) models.Vendor {
	return models.Vendor{
		ID:                  vendorID(known.name),
		Name:                known.name,
		Website:             known.website,
		Category:            known.category,
		RiskTier:            known.riskTier,
		DataAccess:          known.dataAccess,
		HasProductionAccess: known.productionAccess,
		AssessmentStatus:    models.AssessmentNotStarted,
		NextReviewDue:       v.NextReviewDate(known.riskTier),
		HasSOC2Report:       known.soc2ReportURL != "",
		SOC2ReportURL:       known.soc2ReportURL,
		AutoDetected:        true,
	}
}

// NextReviewDate returns when a vendor of the given tier is next due for
// review: annually for critical/high, every two years for medium,
// every three otherwise.
func (v *VendorCatalog) NextReviewDate(tier models.VendorRiskTier) time.Time {
	days := 1095
	switch tier {
	case models.VendorTierCritical, models.VendorTierHigh:
		days = 365
	case models.VendorTierMedium:
		days = 730
	}
	return v.now().UTC().AddDate(0, 0, days)
}

// vendorID slugs a vendor name into a stable identifier
func vendorID(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}
