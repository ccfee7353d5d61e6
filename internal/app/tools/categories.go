package tools

import (
	"context"
	"strings"

	"github.com/dravina/dravina-agent/internal/domain"
)

const (
	RiskHigh   = "high risk"
	RiskMedium = "medium risk"
	RiskLow    = "low risk"
	RiskAll    = "all risk"

	TermShort = "short term"
	TermMed   = "medium term"
	TermLong  = "long term"
	TermAll   = "all term"
)

var riskTiers = []string{RiskHigh, RiskMedium, RiskLow}
var terms = []string{TermShort, TermMed, TermLong}

// categoryTable is the fixed mapping from (risk tier, duration) to the
// mutual fund categories suited to that pair.
var categoryTable = map[string]map[string][]string{
	RiskHigh: {
		TermShort: {"Credit Risk Fund", "Hybrid Fund"},
		TermMed:   {"Multi Cap Funds"},
		TermLong:  {"Mid Cap Funds", "Small Cap Funds"},
	},
	RiskMedium: {
		TermShort: {"Low duration funds", "Ultra short duration funds"},
		TermMed:   {"Balanced Advantage funds"},
		TermLong:  {"Multi Cap Funds"},
	},
	RiskLow: {
		TermShort: {"Overnight funds", "Liquid Funds"},
		TermMed:   {"Short duration funds", "Gilt Funds"},
		TermLong:  {"Large Cap Funds"},
	},
}

// CategoriesTool maps risk and duration preferences to fund categories.
// Both arguments accept a wildcard ("all risk" / "all term") that
// expands to the corresponding slice of the table.
type CategoriesTool struct{}

func NewCategoriesTool() *CategoriesTool { return &CategoriesTool{} }

func (t *CategoriesTool) Name() string { return "lookup_categories" }

func (t *CategoriesTool) Contract() domain.ToolContract {
	return domain.ToolContract{
		Name: t.Name(),
		Description: "Get mutual fund categories based on risk and duration preferences. " +
			"Call this FIRST to determine suitable fund categories, then use search_funds with these categories as tags.",
		Parameters: &domain.Schema{
			Type: domain.TypeObject,
			Properties: map[string]*domain.Schema{
				"risk": {
					Type:        domain.TypeString,
					Enum:        []string{RiskHigh, RiskMedium, RiskLow, RiskAll},
					Description: "Risk level preference: high, medium, low or all risks. Provide as 'all risk' if unspecified.",
				},
				"time": {
					Type:        domain.TypeString,
					Enum:        []string{TermShort, TermMed, TermLong, TermAll},
					Description: "Duration best suited where less than 3 years implies short term, 3-5 implies medium and 5+ years for long term. Provide as 'all term' if unspecified.",
				},
			},
			Required: []string{"risk", "time"},
		},
	}
}

func (t *CategoriesTool) Call(_ context.Context, _ ToolContext, input map[string]any) (map[string]any, error) {
	risk := strings.ToLower(strings.TrimSpace(getString(input, "risk")))
	term := strings.ToLower(strings.TrimSpace(getString(input, "time")))
	return map[string]any{"output": Categories(risk, term)}, nil
}

// Categories resolves a (risk, time) pair against the category table,
// expanding wildcards. Inputs are expected lower-cased.
func Categories(risk, term string) any {
	switch {
	case risk == RiskAll && term == TermAll:
		return categoryTable

	case risk == RiskAll:
		out := make(map[string][]string, len(riskTiers))
		for _, tier := range riskTiers {
			if list, ok := categoryTable[tier][term]; ok {
				out[tier] = list
			} else {
				out[tier] = []string{}
			}
		}
		return out

	case term == TermAll:
		if sub, ok := categoryTable[risk]; ok {
			return sub
		}
		return map[string][]string{}

	default:
		if list, ok := categoryTable[risk][term]; ok {
			return list
		}
		return []string{}
	}
}
