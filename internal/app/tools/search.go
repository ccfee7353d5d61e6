package tools

import (
	"context"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// SearchTool returns concrete fund records whose tag set intersects the
// query tags, preserving source order. Missing upstream data degrades to
// an empty list rather than a failure.
type SearchTool struct {
	provider domain.DatasetProvider
}

func NewSearchTool(provider domain.DatasetProvider) *SearchTool {
	return &SearchTool{provider: provider}
}

func (t *SearchTool) Name() string { return "search_funds" }

func (t *SearchTool) Contract() domain.ToolContract {
	return domain.ToolContract{
		Name: t.Name(),
		Description: "Get specific mutual fund recommendations with detailed information using fund categories as tags. " +
			"Call this AFTER lookup_categories to get actual fund names and details.",
		Parameters: &domain.Schema{
			Type: domain.TypeObject,
			Properties: map[string]*domain.Schema{
				"tags": {
					Type:        domain.TypeArray,
					Items:       &domain.Schema{Type: domain.TypeString},
					Description: "Array of fund categories (like 'large cap', 'multi cap') used to select matching funds",
				},
			},
			Required: []string{"tags"},
		},
	}
}

func (t *SearchTool) Call(ctx context.Context, _ ToolContext, input map[string]any) (map[string]any, error) {
	tags := getStringSlice(input, "tags")

	funds, err := t.provider.Funds(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("fund dataset unavailable", "error", err)
		return map[string]any{"output": []domain.Fund{}}, nil
	}

	return map[string]any{"output": SearchFunds(funds, tags)}, nil
}

// SearchFunds filters funds to those whose tag set intersects tags,
// in source order, each record at most once.
func SearchFunds(funds []domain.Fund, tags []string) []domain.Fund {
	want := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		want[tag] = struct{}{}
	}

	matched := []domain.Fund{}
	for _, fund := range funds {
		for _, tag := range fund.Tags {
			if _, ok := want[tag]; ok {
				matched = append(matched, fund)
				break
			}
		}
	}
	return matched
}
