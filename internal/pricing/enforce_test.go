package pricing

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []RateCatalogEntry {
	return []RateCatalogEntry{
		{RoleName: "Tech - Head Of - Senior Project Management", HourlyRate: 365},
		{RoleName: "Tech - Delivery - Project Coordination", HourlyRate: 110},
		{RoleName: "Account Management - Senior Account Manager", HourlyRate: 210},
		{RoleName: "Tech - Sr. Consultant", HourlyRate: 295},
		{RoleName: "Tech - Producer - Admin", HourlyRate: 120},
		{RoleName: "Account Management - Account Coordinator", HourlyRate: 120},
	}
}

func TestEnforceEmptyInputYieldsThreeMandatoryRows(t *testing.T) {
	rows, err := Enforce(nil, testCatalog())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Tech - Head Of - Senior Project Management", rows[0].Role)
	assert.Equal(t, float64(8), rows[0].Hours)
	assert.Equal(t, float64(365), rows[0].Rate)

	assert.Equal(t, "Tech - Delivery - Project Coordination", rows[1].Role)
	assert.Equal(t, float64(6), rows[1].Hours)
	assert.Equal(t, float64(110), rows[1].Rate)

	assert.Equal(t, "Account Management - Senior Account Manager", rows[2].Role)
	assert.Equal(t, float64(8), rows[2].Hours)
	assert.Equal(t, float64(210), rows[2].Rate)
}

func TestEnforceClampsMandatoryHoursAndOverridesRate(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "Tech - Head Of - Senior Project Management", Hours: 100, Rate: 999},
	}, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, "Tech - Head Of - Senior Project Management", rows[0].Role)
	assert.Equal(t, float64(15), rows[0].Hours)
	assert.Equal(t, float64(365), rows[0].Rate)
}

func TestEnforceMatchesCompressedRoleNames(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "AccountManagementSeniorAccountManager", Hours: 10},
	}, testCatalog())
	require.NoError(t, err)

	last := rows[len(rows)-1]
	assert.Equal(t, "Account Management - Senior Account Manager", last.Role)
	assert.Equal(t, float64(10), last.Hours)
	assert.Equal(t, float64(210), last.Rate)
}

func TestEnforcePreservesUnknownRolesWithFallbackRate(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "Blockchain Ninja", Hours: 12, Rate: 800},
	}, testCatalog())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Blockchain Ninja", rows[2].Role)
	assert.Equal(t, float64(12), rows[2].Hours)
	assert.Equal(t, float64(DefaultFallbackRate), rows[2].Rate)
}

func TestEnforceFallbackRateIsConfigurable(t *testing.T) {
	opts := DefaultOptions()
	opts.FallbackRate = 95

	rows, err := EnforceWithOptions([]Row{
		{Role: "Blockchain Ninja", Hours: 1},
	}, testCatalog(), opts)
	require.NoError(t, err)
	assert.Equal(t, float64(95), rows[2].Rate)
}

func TestEnforceMissingMandatoryCatalogEntryFails(t *testing.T) {
	catalog := []RateCatalogEntry{
		{RoleName: "Tech - Head Of - Senior Project Management", HourlyRate: 365},
		{RoleName: "Account Management - Senior Account Manager", HourlyRate: 210},
	}

	rows, err := Enforce(nil, catalog)
	assert.Nil(t, rows)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "Tech - Delivery - Project Coordination", cfgErr.Role)
	assert.Contains(t, err.Error(), "Tech - Delivery - Project Coordination")
}

func TestEnforceRoutesOversightRolesToBottomZone(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "Tech - Sr. Consultant", Hours: 20},
		{Role: "Account Management - Account Coordinator", Hours: 4},
		{Role: "Tech - Producer - Admin", Hours: 10},
	}, testCatalog())
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, "Tech - Head Of - Senior Project Management", rows[0].Role)
	assert.Equal(t, "Tech - Delivery - Project Coordination", rows[1].Role)
	// Middle zone keeps the AI's order.
	assert.Equal(t, "Tech - Sr. Consultant", rows[2].Role)
	assert.Equal(t, "Tech - Producer - Admin", rows[3].Role)
	// Oversight sits above the closing mandatory role.
	assert.Equal(t, "Account Management - Account Coordinator", rows[4].Role)
	assert.Equal(t, "Account Management - Senior Account Manager", rows[5].Role)
}

func TestEnforceDeduplicatesByNormalizedRole(t *testing.T) {
	rows, err := Enforce([]Row{
		{ID: "a", Role: "Tech - Sr. Consultant", Hours: 5},
		{ID: "b", Role: "tech sr consultant", Hours: 9, Description: "integration work"},
		{Role: "TechSrConsultant", Hours: 40},
	}, testCatalog())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	// The described row wins over the larger-hours row.
	assert.Equal(t, "Tech - Sr. Consultant", rows[2].Role)
	assert.Equal(t, float64(9), rows[2].Hours)
	assert.Equal(t, "integration work", rows[2].Description)
	assert.Equal(t, "b", rows[2].ID)
}

func TestEnforceDedupTieBreaksOnHours(t *testing.T) {
	rows, err := Enforce([]Row{
		{ID: "small", Role: "Tech - Producer - Admin", Hours: 2},
		{Role: "Tech Producer Admin", Hours: 11},
	}, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, float64(11), rows[2].Hours)
	// Survivor had no id of its own, so the incumbent's id is preserved.
	assert.Equal(t, "small", rows[2].ID)
}

func TestEnforceCarriesMandatoryHoursAndDescription(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "tech delivery project coordination", Hours: 9, Description: "standups & QA"},
	}, testCatalog())
	require.NoError(t, err)

	assert.Equal(t, float64(9), rows[1].Hours)
	assert.Equal(t, "standups & QA", rows[1].Description)
}

func TestEnforceCoercesGarbledHours(t *testing.T) {
	rows, err := Enforce([]Row{
		{Role: "Tech - Sr. Consultant", Hours: -4},
		{Role: "Tech - Producer - Admin", Hours: math.NaN()},
		{Role: "tech head of senior project management", Hours: math.Inf(1)},
	}, testCatalog())
	require.NoError(t, err)

	// Mandatory role falls back to its default, then clamps.
	assert.Equal(t, float64(8), rows[0].Hours)
	for _, row := range rows[2:4] {
		assert.Equal(t, float64(0), row.Hours, row.Role)
	}
}

func TestEnforceRegeneratesMissingAndDuplicateIDs(t *testing.T) {
	rows, err := Enforce([]Row{
		{ID: "dup", Role: "Tech - Sr. Consultant", Hours: 5},
		{ID: "dup", Role: "Tech - Producer - Admin", Hours: 3},
		{Role: "Blockchain Ninja", Hours: 1},
	}, testCatalog())
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.NotEmpty(t, row.ID)
		assert.False(t, seen[row.ID], "duplicate id %s", row.ID)
		seen[row.ID] = true
	}
}

func TestEnforceDoesNotMutateInputs(t *testing.T) {
	input := []Row{
		{ID: "x", Role: "tech head of senior project management", Hours: 100, Rate: 999},
	}
	catalog := testCatalog()

	_, err := Enforce(input, catalog)
	require.NoError(t, err)

	assert.Equal(t, float64(100), input[0].Hours)
	assert.Equal(t, float64(999), input[0].Rate)
	assert.Equal(t, "tech head of senior project management", input[0].Role)
	assert.Equal(t, float64(365), catalog[0].HourlyRate)
}

func TestEnforceIsStableOnItsOwnOutput(t *testing.T) {
	catalog := testCatalog()
	first, err := Enforce([]Row{
		{Role: "Tech - Sr. Consultant", Hours: 20, Description: "build"},
		{Role: "Blockchain Ninja", Hours: 3},
		{Role: "Account Director", Hours: 2},
		{Role: "tech head of senior project management", Hours: 12},
	}, catalog)
	require.NoError(t, err)

	second, err := Enforce(first, catalog)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].Role, second[i].Role, "position %d", i)
		assert.Equal(t, first[i].Hours, second[i].Hours, "position %d", i)
		assert.Equal(t, first[i].Rate, second[i].Rate, "position %d", i)
	}
}

func TestEnforceOutputAlwaysPassesValidation(t *testing.T) {
	catalog := testCatalog()
	inputs := [][]Row{
		nil,
		{{Role: "Blockchain Ninja", Hours: 50}},
		{{Role: "Account Management - Senior Account Manager", Hours: 1}},
		{
			{Role: "tech delivery project coordination", Hours: 200},
			{Role: "Tech - Sr. Consultant", Hours: 8},
			{Role: "Portfolio Manager", Hours: 6},
		},
	}

	for i, input := range inputs {
		rows, err := Enforce(input, catalog)
		require.NoError(t, err, "input %d", i)

		result := Validate(rows)
		assert.True(t, result.IsValid, fmt.Sprintf("input %d: %v", i, result.Details))
	}
}
