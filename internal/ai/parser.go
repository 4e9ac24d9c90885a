package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/smallbiznis/sowforge/internal/pricing"
)

const (
	FormatSingleScope = "v3.1"
	FormatMultiScope  = "v4.1"
	FormatUnknown     = "unknown"
)

var ErrNoRoles = errors.New("no roles or scopeItems found in response")

// ParseResult carries the rows recovered from a model response together with
// per-row recoverable problems. Errors here are advisory; the rows still go
// through enforcement, which is what actually guarantees compliance.
type ParseResult struct {
	Rows    []pricing.Row
	Format  string
	Scopes  int
	Roles   int
	Matched int
	Errors  []string
}

// MatchPercentage reports how much of the response named real catalog roles.
func (r *ParseResult) MatchPercentage() int {
	if r.Roles == 0 {
		return 0
	}
	return int(float64(r.Matched)/float64(r.Roles)*100 + 0.5)
}

// flexNumber tolerates models that quote numerics ("hours": "12").
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := strings.Trim(string(data), `"`)
	if trimmed == "" || trimmed == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(v)
	return nil
}

type roleItem struct {
	Role        string     `json:"role"`
	Description string     `json:"description"`
	Hours       flexNumber `json:"hours"`
	Rate        flexNumber `json:"rate"`
}

type scopeItem struct {
	ScopeName        string     `json:"scope_name"`
	ScopeDescription string     `json:"scope_description"`
	Roles            []roleItem `json:"roles"`
}

type suggestionEnvelope struct {
	ScopeItems     []scopeItem `json:"scopeItems"`
	Roles          []roleItem  `json:"roles"`
	SuggestedRoles []roleItem  `json:"suggestedRoles"`
}

// ParseSuggestion decodes a model response in either the multi-scope
// ("scopeItems") or the legacy single-scope ("roles"/"suggestedRoles")
// layout and flattens it into pricing rows. Rates from the catalog win over
// model-invented ones; unknown roles are kept and flagged in Errors.
func ParseSuggestion(payload []byte, catalog []pricing.RateCatalogEntry) (*ParseResult, error) {
	var envelope suggestionEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}

	result := &ParseResult{Format: FormatUnknown}

	var scopes []scopeItem
	switch {
	case envelope.ScopeItems != nil:
		result.Format = FormatMultiScope
		scopes = envelope.ScopeItems
	case envelope.Roles != nil:
		result.Format = FormatSingleScope
		scopes = []scopeItem{{ScopeName: "Default Scope", Roles: envelope.Roles}}
	case envelope.SuggestedRoles != nil:
		result.Format = FormatSingleScope
		scopes = []scopeItem{{ScopeName: "Default Scope", Roles: envelope.SuggestedRoles}}
	default:
		return nil, ErrNoRoles
	}

	result.Scopes = len(scopes)

	for _, scope := range scopes {
		for _, item := range scope.Roles {
			if strings.TrimSpace(item.Role) == "" {
				result.Errors = append(result.Errors, "role entry with empty name skipped")
				continue
			}
			result.Roles++

			row := pricing.Row{
				Role:        strings.TrimSpace(item.Role),
				Description: strings.TrimSpace(item.Description),
				Hours:       float64(item.Hours),
				Rate:        float64(item.Rate),
			}
			if entry := pricing.MatchCatalog(row.Role, catalog); entry != nil {
				result.Matched++
				row.Role = entry.RoleName
				row.Rate = entry.HourlyRate
			} else {
				result.Errors = append(result.Errors,
					fmt.Sprintf("role %q not found in rate catalog", row.Role))
			}

			result.Rows = append(result.Rows, row)
		}
	}

	return result, nil
}

// ExtractJSON pulls the first JSON object out of a chat completion, stripping
// markdown fences and any prose the model wrapped around it.
func ExtractJSON(content string) ([]byte, error) {
	content = strings.TrimSpace(content)

	if idx := strings.Index(content, "```"); idx >= 0 {
		rest := content[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			content = rest[:end]
		} else {
			content = rest
		}
		content = strings.TrimSpace(content)
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in response")
	}
	return []byte(content[start : end+1]), nil
}
