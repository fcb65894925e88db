package engine

import (
	"strings"

	"complypath/internal/domain/models"
)

// expand substitutes {name} placeholders in a template string. Unknown
// placeholders are left as-is so a bad template is visible, not silent.
func expand(tmpl string, vars map[string]string) string {
	if len(vars) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// cloudHint names the company's cloud environment for narrative text,
// falling back to a generic phrase when nothing concrete was selected
func cloudHint(in *models.Intake) string {
	var named []string
	for _, c := range in.TechnicalInfrastructure.CloudProviders {
		if c != models.CloudNone {
			named = append(named, string(c))
		}
	}
	if len(named) == 0 {
		return "your infrastructure"
	}
	return strings.Join(named, " / ")
}

// scmHint names the company's source control system for narrative text
func scmHint(in *models.Intake) string {
	if scm := in.TechnicalInfrastructure.SourceCodeManagement; scm != models.SCMUnspecified {
		return string(scm)
	}
	return "your source control system"
}

// ssoHint names the company's identity provider, or "" when none is set
func ssoHint(in *models.Intake) string {
	sso := in.AccessControl.SSOProvider
	if sso == models.SSONone || sso == "" {
		return ""
	}
	return string(sso)
}
