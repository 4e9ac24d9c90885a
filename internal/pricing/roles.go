package pricing

// RateCatalogEntry is one row of the authoritative rate card, treated as an
// immutable snapshot for the duration of a single enforcement call.
type RateCatalogEntry struct {
	RoleName   string  `json:"role_name"`
	HourlyRate float64 `json:"hourly_rate"`
}

// Row is a single line of a SOW pricing table.
type Row struct {
	ID          string  `json:"id"`
	Role        string  `json:"role"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	Rate        float64 `json:"rate"`
}

// Cost is derived and never stored.
func (r Row) Cost() float64 {
	return sanitizeNumber(r.Hours) * sanitizeNumber(r.Rate)
}

// MandatoryRole describes one of the three roles that must appear, correctly
// ordered and hour-bounded, in every finalized pricing table.
type MandatoryRole struct {
	Role         string
	MinHours     float64
	MaxHours     float64
	DefaultHours float64
	Description  string
	Order        int
}

// MandatoryRoles are engine constants. Do NOT rename or reorder once SOWs
// exist that reference them: order 1 opens the table, order 3 closes it.
var MandatoryRoles = []MandatoryRole{
	{
		Role:         "Tech - Head Of - Senior Project Management",
		MinHours:     5,
		MaxHours:     15,
		DefaultHours: 8,
		Description:  "Strategic oversight & governance",
		Order:        1,
	},
	{
		Role:         "Tech - Delivery - Project Coordination",
		MinHours:     3,
		MaxHours:     10,
		DefaultHours: 6,
		Description:  "Project delivery coordination",
		Order:        2,
	},
	{
		Role:         "Account Management - Senior Account Manager",
		MinHours:     6,
		MaxHours:     12,
		DefaultHours: 8,
		Description:  "Client communication & account governance",
		Order:        3,
	},
}

// MandatoryRoleNames returns the canonical names in table order.
func MandatoryRoleNames() []string {
	names := make([]string, 0, len(MandatoryRoles))
	for _, m := range MandatoryRoles {
		names = append(names, m.Role)
	}
	return names
}

// IsRoleMandatory reports whether name denotes one of the mandatory roles
// under normalization.
func IsRoleMandatory(name string) bool {
	return MatchMandatory(name) != nil
}
