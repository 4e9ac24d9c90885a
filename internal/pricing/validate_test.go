package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compliantRows() []Row {
	return []Row{
		{ID: "1", Role: "Tech - Head Of - Senior Project Management", Hours: 8, Rate: 365},
		{ID: "2", Role: "Tech - Delivery - Project Coordination", Hours: 6, Rate: 110},
		{ID: "3", Role: "Tech - Sr. Consultant", Hours: 20, Rate: 295},
		{ID: "4", Role: "Account Management - Senior Account Manager", Hours: 8, Rate: 210},
	}
}

func TestValidateCompliantTable(t *testing.T) {
	result := Validate(compliantRows())

	assert.True(t, result.IsValid)
	assert.Empty(t, result.MissingRoles)
	assert.False(t, result.IncorrectOrder)
	require.Len(t, result.Details, 1)
	assert.Contains(t, result.Details[0], "correctly ordered")
}

func TestValidateReportsMissingRoles(t *testing.T) {
	result := Validate([]Row{
		{Role: "Tech - Head Of - Senior Project Management", Hours: 8},
	})

	assert.False(t, result.IsValid)
	assert.ElementsMatch(t, []string{
		"Tech - Delivery - Project Coordination",
		"Account Management - Senior Account Manager",
	}, result.MissingRoles)
	assert.False(t, result.IncorrectOrder, "ordering is not judged while roles are missing")
}

func TestValidateReportsIncorrectOrder(t *testing.T) {
	rows := compliantRows()
	rows[0], rows[1] = rows[1], rows[0]

	result := Validate(rows)
	assert.False(t, result.IsValid)
	assert.True(t, result.IncorrectOrder)
	assert.Empty(t, result.MissingRoles)
}

func TestValidateAccountManagementMustBeLast(t *testing.T) {
	rows := compliantRows()
	rows[2], rows[3] = rows[3], rows[2]

	result := Validate(rows)
	assert.False(t, result.IsValid)
	assert.True(t, result.IncorrectOrder)
}

func TestValidateReportsOutOfRangeHours(t *testing.T) {
	rows := compliantRows()
	rows[1].Hours = 2 // below the 3h floor

	result := Validate(rows)
	assert.False(t, result.IsValid)
	assert.False(t, result.IncorrectOrder)
	require.Len(t, result.Details, 1)
	assert.Contains(t, result.Details[0], "outside acceptable range")
}

func TestValidateMatchesRolesUnderNormalization(t *testing.T) {
	rows := compliantRows()
	rows[3].Role = "accountmanagementSENIORaccountmanager"

	result := Validate(rows)
	assert.True(t, result.IsValid, result.Details)
}

func TestValidateNeverMutates(t *testing.T) {
	rows := []Row{{Role: "Tech - Head Of - Senior Project Management", Hours: 99}}
	_ = Validate(rows)
	_ = SuggestAdjustments(rows)

	assert.Equal(t, float64(99), rows[0].Hours)
}

func TestSuggestAdjustments(t *testing.T) {
	suggestions := SuggestAdjustments([]Row{
		{Role: "Tech - Head Of - Senior Project Management", Hours: 2},
		{Role: "Account Management - Senior Account Manager", Hours: 40},
	})

	require.Len(t, suggestions, 3)
	assert.Contains(t, suggestions[0], "Increase Tech - Head Of - Senior Project Management from 2h to at least 5h")
	assert.Contains(t, suggestions[1], "Add Tech - Delivery - Project Coordination with 6 hours")
	assert.Contains(t, suggestions[2], "Reduce Account Management - Senior Account Manager from 40h to at most 12h")
}

func TestSuggestAdjustmentsEmptyForCompliantTable(t *testing.T) {
	assert.Empty(t, SuggestAdjustments(compliantRows()))
}
