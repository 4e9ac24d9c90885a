package pricing

import "strings"

// Normalize reduces a role name to its comparison key: lower-cased with every
// character outside [a-z0-9] removed. Two names denote the same role iff their
// keys are equal. The policy is deliberately aggressive about formatting noise
// (case, hyphens, spacing, punctuation) and deliberately strict about
// everything else: no edit-distance matching, so typos and synonyms do not
// match.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeSpaced lower-cases and collapses every run of non-alphanumerics to
// a single space. Used by the oversight classifier, which matches on word
// phrases rather than compacted keys.
func normalizeSpaced(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	pendingSpace := false
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(r)
		} else {
			pendingSpace = true
		}
	}
	return b.String()
}

// MatchMandatory returns the mandatory role definition whose name matches the
// given name under normalization, or nil.
func MatchMandatory(name string) *MandatoryRole {
	key := Normalize(name)
	for i := range MandatoryRoles {
		if Normalize(MandatoryRoles[i].Role) == key {
			return &MandatoryRoles[i]
		}
	}
	return nil
}

// MatchCatalog returns the catalog entry whose role name matches the given
// name under normalization, or nil.
func MatchCatalog(name string, catalog []RateCatalogEntry) *RateCatalogEntry {
	key := Normalize(name)
	for i := range catalog {
		if Normalize(catalog[i].RoleName) == key {
			return &catalog[i]
		}
	}
	return nil
}

// ClassifierConfig is the keyword data behind the management/oversight
// classifier. It is configuration, not logic: extending the phrase lists must
// never require touching the enforcement algorithm.
type ClassifierConfig struct {
	// OversightPhrases mark a role as management/oversight when present in
	// the space-normalized name.
	OversightPhrases []string

	// OversightTitles mark a role as oversight when combined with one of
	// OversightContexts (e.g. "project management" + "director").
	OversightContexts []string
	OversightTitles   []string

	// LeadershipPhrases are never oversight regardless of other keywords;
	// they belong to the top zone when mandatory, the middle zone otherwise.
	LeadershipPhrases []string

	// TechnicalTerms veto the generic director/manager match so that
	// technical-lead titles stay out of the bottom zone.
	TechnicalTerms []string
	GenericTitles  []string
}

// DefaultClassifierConfig returns the keyword set distilled from the delivery
// team's current role taxonomy.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		OversightPhrases: []string{
			"account management",
			"account director",
			"account manager",
			"account coordinator",
			"client manager",
			"relationship manager",
			"engagement manager",
			"portfolio manager",
		},
		OversightContexts: []string{"project management"},
		OversightTitles:   []string{"director", "manager", "coordinator"},
		LeadershipPhrases: []string{"head of"},
		TechnicalTerms:    []string{"tech", "technical", "developer", "engineer", "delivery"},
		GenericTitles:     []string{"director", "manager"},
	}
}

// IsOversight classifies a role as management/oversight, destined for the
// bottom zone of the pricing table.
func (c ClassifierConfig) IsOversight(name string) bool {
	spaced := normalizeSpaced(name)
	if spaced == "" {
		return false
	}

	for _, phrase := range c.LeadershipPhrases {
		if containsPhrase(spaced, phrase) {
			return false
		}
	}

	// Technical director/manager titles are delivery roles, not oversight.
	for _, title := range c.GenericTitles {
		if !containsPhrase(spaced, title) {
			continue
		}
		for _, term := range c.TechnicalTerms {
			if containsPhrase(spaced, term) {
				return false
			}
		}
	}

	for _, phrase := range c.OversightPhrases {
		if containsPhrase(spaced, phrase) {
			return true
		}
	}

	for _, context := range c.OversightContexts {
		if !containsPhrase(spaced, context) {
			continue
		}
		for _, title := range c.OversightTitles {
			if containsPhrase(spaced, title) {
				return true
			}
		}
	}

	return false
}

// IsManagementOversightRole applies the default classifier configuration.
func IsManagementOversightRole(name string) bool {
	return DefaultClassifierConfig().IsOversight(name)
}

// containsPhrase matches phrase on word boundaries within a space-normalized
// string, so "tech" does not match "fintech".
func containsPhrase(spaced, phrase string) bool {
	phrase = strings.TrimSpace(strings.ToLower(phrase))
	if phrase == "" {
		return false
	}
	padded := " " + spaced + " "
	return strings.Contains(padded, " "+phrase+" ")
}
