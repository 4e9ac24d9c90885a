package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFoldsFormattingNoise(t *testing.T) {
	variants := []string{
		"Tech - Head Of - Senior Project Management",
		"tech head of senior project management",
		"TechHeadOfSeniorProjectManagement",
		"  TECH -- head of (senior) project management!  ",
	}
	want := Normalize(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, Normalize(v), v)
	}
}

func TestNormalizeDoesNotForgiveTypos(t *testing.T) {
	assert.NotEqual(t,
		Normalize("Tech - Delivery - Project Coordination"),
		Normalize("Tech - Delivery - Project Coordinaton"))
}

func TestMatchMandatory(t *testing.T) {
	def := MatchMandatory("AccountManagementSeniorAccountManager")
	if assert.NotNil(t, def) {
		assert.Equal(t, 3, def.Order)
		assert.Equal(t, "Account Management - Senior Account Manager", def.Role)
	}

	assert.Nil(t, MatchMandatory("Blockchain Ninja"))
	assert.True(t, IsRoleMandatory("tech delivery project coordination"))
	assert.False(t, IsRoleMandatory(""))
}

func TestMatchCatalog(t *testing.T) {
	catalog := []RateCatalogEntry{
		{RoleName: "Tech - Producer - Admin", HourlyRate: 120},
		{RoleName: "Tech - Sr. Consultant", HourlyRate: 295},
	}

	entry := MatchCatalog("tech producer admin", catalog)
	if assert.NotNil(t, entry) {
		assert.Equal(t, "Tech - Producer - Admin", entry.RoleName)
		assert.Equal(t, float64(120), entry.HourlyRate)
	}
	assert.Nil(t, MatchCatalog("Tech Producer", catalog))
}

func TestOversightClassifier(t *testing.T) {
	oversight := []string{
		"Account Management - Senior Account Manager",
		"Account Director",
		"Account Coordinator",
		"Project Management - Director",
		"Client Manager",
		"Relationship Manager",
		"Engagement Manager",
		"Portfolio Manager",
	}
	for _, name := range oversight {
		assert.True(t, IsManagementOversightRole(name), name)
	}

	notOversight := []string{
		"Tech - Head Of - Senior Project Management",
		"Head Of Account Management", // head-of exception wins
		"Technical Delivery Manager",
		"Engineering Manager",
		"Tech - Director of Development",
		"Senior Developer",
		"Producer Admin",
		"",
	}
	for _, name := range notOversight {
		assert.False(t, IsManagementOversightRole(name), name)
	}
}

func TestClassifierKeywordsAreConfigurable(t *testing.T) {
	cfg := DefaultClassifierConfig()
	cfg.OversightPhrases = append(cfg.OversightPhrases, "governance lead")

	assert.True(t, cfg.IsOversight("Governance Lead (APAC)"))
	assert.False(t, IsManagementOversightRole("Governance Lead (APAC)"))
}

func TestContainsPhraseMatchesWholeWords(t *testing.T) {
	assert.False(t, containsPhrase(normalizeSpaced("Fintech Manager Analytics"), "tech"))
	assert.True(t, containsPhrase(normalizeSpaced("Tech - Delivery Manager"), "tech"))
}
