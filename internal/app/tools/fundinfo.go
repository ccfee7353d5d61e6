package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// FundInfoTool looks up the description of a fund type under a
// classification category. Unknown inputs produce a payload enumerating
// the valid alternatives so the engine can self-correct.
type FundInfoTool struct {
	provider domain.DatasetProvider
}

func NewFundInfoTool(provider domain.DatasetProvider) *FundInfoTool {
	return &FundInfoTool{provider: provider}
}

func (t *FundInfoTool) Name() string { return "lookup_fund_detail" }

func (t *FundInfoTool) Contract() domain.ToolContract {
	return domain.ToolContract{
		Name:        t.Name(),
		Description: "Get details about a specific fund type under a classification category.",
		Parameters: &domain.Schema{
			Type: domain.TypeObject,
			Properties: map[string]*domain.Schema{
				"category": {
					Type:        domain.TypeString,
					Enum:        []string{"structure", "asset class", "investment objectives", "portfolio management", "speciality", "risk appetite"},
					Description: "Classification category under which to look up the fund type",
				},
				"fund": {
					Type:        domain.TypeString,
					Description: "Type of fund like equity or debt for which details are required",
				},
			},
			Required: []string{"category", "fund"},
		},
	}
}

func (t *FundInfoTool) Call(ctx context.Context, _ ToolContext, input map[string]any) (map[string]any, error) {
	category := getString(input, "category")
	fund := getString(input, "fund")

	details, err := t.provider.FundDetails(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("fund detail dataset unavailable", "error", err)
		return map[string]any{"result": "No fund details available from data source"}, nil
	}

	return map[string]any{"result": FundDetail(details, category, fund)}, nil
}

// FundDetail resolves (category, fund) against the detail table. The
// not-found messages enumerate valid alternatives; the engine depends on
// that guidance to retry with corrected arguments.
func FundDetail(details domain.FundDetails, category, fund string) string {
	if len(details) == 0 {
		return "No fund details available from data source"
	}

	byFund, ok := details[category]
	if !ok {
		return fmt.Sprintf("The category '%s' does not exist. Available categories: %v",
			category, sortedKeys(details))
	}

	desc, ok := byFund[fund]
	if !ok {
		return fmt.Sprintf("The fund '%s' is not available in category '%s'. Available funds: %v",
			fund, category, sortedKeys(byFund))
	}
	return desc
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
