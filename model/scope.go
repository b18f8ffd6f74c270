package model

import "strings"

// Scope is an atomic permission token of the form "<category>.<read|write>".
// Matching is exact string membership; holding "admin.read" never implies
// "admin.write" and there is no wildcard form.
type Scope = string

// Known scopes. Roles may only reference scopes from this set; unknown
// strings are rejected at role creation and update so a typo cannot grant a
// dead permission.
const (
	ScopeAdminRead      Scope = "admin.read"
	ScopeAdminWrite     Scope = "admin.write"
	ScopeFinanceRead    Scope = "finance.read"
	ScopeFinanceWrite   Scope = "finance.write"
	ScopeDonorRead      Scope = "donor.read"
	ScopeDonorWrite     Scope = "donor.write"
	ScopeCampaignRead   Scope = "campaign.read"
	ScopeCampaignWrite  Scope = "campaign.write"
	ScopeFormsRead      Scope = "forms.read"
	ScopeFormsWrite     Scope = "forms.write"
	ScopeUsersRead      Scope = "users.read"
	ScopeUsersWrite     Scope = "users.write"
	ScopeRolesRead      Scope = "roles.read"
	ScopeRolesWrite     Scope = "roles.write"
	ScopeAuditRead      Scope = "audit.read"
	ScopeAnalyticsRead  Scope = "analytics.read"
	ScopeAnalyticsWrite Scope = "analytics.write"
)

var knownScopes = map[Scope]struct{}{
	ScopeAdminRead:      {},
	ScopeAdminWrite:     {},
	ScopeFinanceRead:    {},
	ScopeFinanceWrite:   {},
	ScopeDonorRead:      {},
	ScopeDonorWrite:     {},
	ScopeCampaignRead:   {},
	ScopeCampaignWrite:  {},
	ScopeFormsRead:      {},
	ScopeFormsWrite:     {},
	ScopeUsersRead:      {},
	ScopeUsersWrite:     {},
	ScopeRolesRead:      {},
	ScopeRolesWrite:     {},
	ScopeAuditRead:      {},
	ScopeAnalyticsRead:  {},
	ScopeAnalyticsWrite: {},
}

// KnownScope reports whether s belongs to the registered scope set.
func KnownScope(s Scope) bool {
	_, ok := knownScopes[s]
	return ok
}

// ScopeCategory returns the category part of a scope token, e.g. "finance"
// for "finance.write".
func ScopeCategory(s Scope) string {
	if i := strings.IndexByte(s, '.'); i > 0 {
		return s[:i]
	}
	return s
}

// HasScope reports whether required is literally present in scopes. Pure and
// total; this is the single authorization predicate every protected
// operation consults.
func HasScope(scopes []Scope, required Scope) bool {
	for _, s := range scopes {
		if s == required {
			return true
		}
	}
	return false
}

// UnionScopes merges scope lists into a deduplicated set. Order of the
// result is not significant.
func UnionScopes(lists ...[]Scope) []Scope {
	seen := make(map[Scope]struct{})
	var out []Scope
	for _, list := range lists {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
