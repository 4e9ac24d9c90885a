package pricing

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// DefaultFallbackRate prices roles the catalog does not know. It mirrors the
// cheapest (Producer) tier so an unrecognized role is preserved instead of
// silently dropped. Policy, not law: override via Options.FallbackRate.
const DefaultFallbackRate = 120

// Options tune the enforcement policy knobs the business has flagged as
// subject to change.
type Options struct {
	FallbackRate float64
	Classifier   ClassifierConfig
	// NewRowID supplies fresh row ids during the uniqueness pass. Defaults
	// to uuid.NewString.
	NewRowID func() string
}

// DefaultOptions returns the production enforcement policy.
func DefaultOptions() Options {
	return Options{
		FallbackRate: DefaultFallbackRate,
		Classifier:   DefaultClassifierConfig(),
		NewRowID:     uuid.NewString,
	}
}

// ConfigurationError reports a rate catalog that cannot support enforcement:
// one of the mandatory roles has no catalog entry. This is a deployment
// defect, not bad caller data, and aborts the whole operation.
type ConfigurationError struct {
	Role string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("mandatory role %q missing from rate catalog", e.Role)
}

// Enforce applies the production policy. See EnforceWithOptions.
func Enforce(rows []Row, catalog []RateCatalogEntry) ([]Row, error) {
	return EnforceWithOptions(rows, catalog, DefaultOptions())
}

// EnforceWithOptions turns arbitrary AI-suggested rows into a compliant
// pricing table:
//
//	top:    the order-1 and order-2 mandatory roles, in that order
//	middle: remaining catalog or unknown roles, AI order preserved
//	bottom: management/oversight roles, closed by the order-3 mandatory role
//
// Role names and rates always come from the catalog; AI-supplied rates are
// never trusted. Unknown roles are preserved verbatim with the fallback rate.
// Neither input slice is mutated.
func EnforceWithOptions(rows []Row, catalog []RateCatalogEntry, opts Options) ([]Row, error) {
	if opts.FallbackRate <= 0 {
		opts.FallbackRate = DefaultFallbackRate
	}
	if opts.NewRowID == nil {
		opts.NewRowID = uuid.NewString
	}

	deduped, order := dedupeByRole(rows)
	processed := make(map[string]bool, len(deduped))

	var top, middle, bottom []Row

	for _, mandatory := range mandatoryByOrder(1, 2) {
		row, err := buildMandatoryRow(mandatory, deduped, catalog)
		if err != nil {
			return nil, err
		}
		top = append(top, row)
		processed[Normalize(mandatory.Role)] = true
	}

	// The closing mandatory role is handled after classification so detected
	// oversight roles sit above it, never below.
	closing := mandatoryByOrder(3)[0]
	closingKey := Normalize(closing.Role)

	for _, key := range order {
		if processed[key] || key == closingKey {
			continue
		}
		src := deduped[key]

		row := Row{
			ID:          src.ID,
			Description: src.Description,
			Hours:       math.Max(0, sanitizeNumber(src.Hours)),
		}
		if entry := MatchCatalog(src.Role, catalog); entry != nil {
			row.Role = entry.RoleName
			row.Rate = entry.HourlyRate
		} else {
			// Preserve the AI's text rather than losing the line item.
			row.Role = src.Role
			row.Rate = opts.FallbackRate
		}

		if opts.Classifier.IsOversight(row.Role) {
			bottom = append(bottom, row)
		} else {
			middle = append(middle, row)
		}
		processed[key] = true
	}

	closingRow, err := buildMandatoryRow(closing, deduped, catalog)
	if err != nil {
		return nil, err
	}
	bottom = append(bottom, closingRow)

	result := make([]Row, 0, len(top)+len(middle)+len(bottom))
	result = append(result, top...)
	result = append(result, middle...)
	result = append(result, bottom...)

	ensureUniqueIDs(result, opts.NewRowID)
	return result, nil
}

// dedupeByRole collapses rows sharing a normalized role key. The survivor is
// the row with a non-empty description; when tied, the one with more hours.
// First-seen order is preserved for the middle zone.
func dedupeByRole(rows []Row) (map[string]Row, []string) {
	deduped := make(map[string]Row, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		key := Normalize(row.Role)
		existing, seen := deduped[key]
		if !seen {
			deduped[key] = row
			order = append(order, key)
			continue
		}
		if preferRow(row, existing) {
			if row.ID == "" {
				row.ID = existing.ID
			}
			deduped[key] = row
		}
	}
	return deduped, order
}

func preferRow(candidate, incumbent Row) bool {
	candidateDesc := candidate.Description != ""
	incumbentDesc := incumbent.Description != ""
	if candidateDesc != incumbentDesc {
		return candidateDesc
	}
	return sanitizeNumber(candidate.Hours) > sanitizeNumber(incumbent.Hours)
}

func buildMandatoryRow(def MandatoryRole, deduped map[string]Row, catalog []RateCatalogEntry) (Row, error) {
	entry := MatchCatalog(def.Role, catalog)
	if entry == nil {
		return Row{}, &ConfigurationError{Role: def.Role}
	}

	hours := def.DefaultHours
	description := def.Description
	id := ""
	if ai, ok := deduped[Normalize(def.Role)]; ok {
		if h := sanitizeNumber(ai.Hours); h > 0 {
			hours = h
		}
		if ai.Description != "" {
			description = ai.Description
		}
		id = ai.ID
	}

	return Row{
		ID:          id,
		Role:        entry.RoleName,
		Description: description,
		Hours:       clamp(hours, def.MinHours, def.MaxHours),
		Rate:        entry.HourlyRate,
	}, nil
}

func mandatoryByOrder(orders ...int) []MandatoryRole {
	out := make([]MandatoryRole, 0, len(orders))
	for _, want := range orders {
		for _, m := range MandatoryRoles {
			if m.Order == want {
				out = append(out, m)
			}
		}
	}
	return out
}

// ensureUniqueIDs regenerates empty or duplicate ids in place. Ids are never
// reused or left blank, so callers need no global uniqueness guarantees from
// whatever scheme produced them upstream.
func ensureUniqueIDs(rows []Row, newID func() string) {
	seen := make(map[string]bool, len(rows))
	for i := range rows {
		id := rows[i].ID
		if id == "" || seen[id] {
			id = newID()
		}
		seen[id] = true
		rows[i].ID = id
	}
}

func clamp(v, min, max float64) float64 {
	return math.Max(min, math.Min(max, v))
}

// sanitizeNumber maps NaN and infinities to 0 so garbled AI numerics degrade
// instead of propagating.
func sanitizeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
