// util/validation_util.go

package util

import (
	"strings"

	cw_errors "github.com/harborworks/causeway-api/errors"
	"github.com/harborworks/causeway-api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidateRole checks structural validity and that every scope belongs to
// the registered scope set, so a typo cannot grant a dead permission.
func (v *ValidationUtil) ValidateRole(role model.Role) error {
	if role.Name == "" {
		return cw_errors.MissingField("name")
	}
	if role.OrganizationID == "" {
		return cw_errors.MissingField("orgId")
	}
	if len(role.Scopes) == 0 {
		return cw_errors.MissingField("scopes")
	}
	return v.ValidateScopes(role.Scopes)
}

// ValidateScopes rejects any scope string outside the registry.
func (v *ValidationUtil) ValidateScopes(scopes []model.Scope) error {
	for _, s := range scopes {
		if !model.KnownScope(s) {
			return cw_errors.InvalidField("scopes", "unknown scope "+s)
		}
	}
	return nil
}

func (v *ValidationUtil) ValidateUser(user model.User) error {
	if user.Email == "" {
		return cw_errors.MissingField("email")
	}
	if user.Name == "" {
		return cw_errors.MissingField("name")
	}
	if user.OrganizationID == "" {
		return cw_errors.MissingField("orgId")
	}
	return nil
}

func (v *ValidationUtil) ValidateTemplate(template model.Template) error {
	if template.Name == "" {
		return cw_errors.MissingField("name")
	}
	if template.OrganizationID == "" {
		return cw_errors.MissingField("orgId")
	}
	for _, field := range template.Fields {
		if field.Name == "" {
			return cw_errors.InvalidField("fields", "field with empty name")
		}
	}
	return nil
}

// ValidateSubmissionFields checks every required template field is present
// and non-empty, failing with the first missing field named.
func (v *ValidationUtil) ValidateSubmissionFields(template *model.Template, fields map[string]string) error {
	for _, field := range template.Fields {
		if !field.Required {
			continue
		}
		if value, ok := fields[field.Name]; !ok || strings.TrimSpace(value) == "" {
			return cw_errors.MissingField(field.Name)
		}
	}
	return nil
}
