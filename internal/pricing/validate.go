package pricing

import "fmt"

// ValidationResult is a read-only audit of a pricing table against the
// mandatory role invariants. Findings are reported, never thrown: callers
// (e.g. the export gate) decide what to do with them.
type ValidationResult struct {
	IsValid        bool     `json:"is_valid"`
	MissingRoles   []string `json:"missing_roles"`
	IncorrectOrder bool     `json:"incorrect_order"`
	Details        []string `json:"details"`
}

// Validate runs three independent checks: every mandatory role is present,
// the table opens with the order-1 and order-2 roles and closes with the
// order-3 role, and every mandatory role's hours sit within its bounds.
// The input is never mutated.
func Validate(rows []Row) ValidationResult {
	result := ValidationResult{
		IsValid:      true,
		MissingRoles: []string{},
		Details:      []string{},
	}

	for _, mandatory := range MandatoryRoles {
		if findByRole(rows, mandatory.Role) == nil {
			result.IsValid = false
			result.MissingRoles = append(result.MissingRoles, mandatory.Role)
			result.Details = append(result.Details,
				fmt.Sprintf("missing mandatory role: %s", mandatory.Role))
		}
	}

	if len(result.MissingRoles) == 0 && len(rows) >= 3 {
		checkPosition := func(expected MandatoryRole, actual Row, position string) {
			if Normalize(actual.Role) != Normalize(expected.Role) {
				result.IsValid = false
				result.IncorrectOrder = true
				result.Details = append(result.Details,
					fmt.Sprintf("incorrect order: %s position should be %q, found %q",
						position, expected.Role, actual.Role))
			}
		}
		ordered := mandatoryByOrder(1, 2, 3)
		checkPosition(ordered[0], rows[0], "first")
		checkPosition(ordered[1], rows[1], "second")
		checkPosition(ordered[2], rows[len(rows)-1], "last")
	}

	for _, mandatory := range MandatoryRoles {
		row := findByRole(rows, mandatory.Role)
		if row == nil {
			continue
		}
		if row.Hours < mandatory.MinHours || row.Hours > mandatory.MaxHours {
			result.IsValid = false
			result.Details = append(result.Details,
				fmt.Sprintf("%s: hours %v outside acceptable range (%v-%v)",
					row.Role, row.Hours, mandatory.MinHours, mandatory.MaxHours))
		}
	}

	if result.IsValid {
		result.Details = append(result.Details,
			"all mandatory roles present and correctly ordered")
	}

	return result
}

// SuggestAdjustments produces operator-facing remediation hints for the same
// three checks Validate runs.
func SuggestAdjustments(rows []Row) []string {
	suggestions := []string{}

	for _, mandatory := range MandatoryRoles {
		row := findByRole(rows, mandatory.Role)
		switch {
		case row == nil:
			suggestions = append(suggestions,
				fmt.Sprintf("Add %s with %v hours (%s)",
					mandatory.Role, mandatory.DefaultHours, mandatory.Description))
		case row.Hours < mandatory.MinHours:
			suggestions = append(suggestions,
				fmt.Sprintf("Increase %s from %vh to at least %vh",
					row.Role, row.Hours, mandatory.MinHours))
		case row.Hours > mandatory.MaxHours:
			suggestions = append(suggestions,
				fmt.Sprintf("Reduce %s from %vh to at most %vh",
					row.Role, row.Hours, mandatory.MaxHours))
		}
	}

	return suggestions
}

func findByRole(rows []Row, role string) *Row {
	key := Normalize(role)
	for i := range rows {
		if Normalize(rows[i].Role) == key {
			return &rows[i]
		}
	}
	return nil
}
