package tools

import (
	"context"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// CommodityTool returns historical gold and silver prices, offered to the
// engine as inflation-hedge context alongside fund recommendations.
type CommodityTool struct {
	provider domain.DatasetProvider
}

func NewCommodityTool(provider domain.DatasetProvider) *CommodityTool {
	return &CommodityTool{provider: provider}
}

func (t *CommodityTool) Name() string { return "lookup_commodity_history" }

func (t *CommodityTool) Contract() domain.ToolContract {
	return domain.ToolContract{
		Name:        t.Name(),
		Description: "Get historical cost price of gold for 24 karat per 10 gram and silver per kilogram.",
		Parameters: &domain.Schema{
			Type: domain.TypeObject,
			Properties: map[string]*domain.Schema{
				"metal": {
					Type:        domain.TypeString,
					Enum:        []string{"gold", "silver", "both"},
					Description: "Which metal's price history to return",
				},
			},
			Required: []string{"metal"},
		},
	}
}

func (t *CommodityTool) Call(ctx context.Context, _ ToolContext, input map[string]any) (map[string]any, error) {
	metal := getString(input, "metal")

	history, err := t.provider.CommodityHistory(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("commodity dataset unavailable", "error", err)
		return map[string]any{"output": domain.CommodityHistory{}}, nil
	}

	switch metal {
	case "gold", "silver":
		out := domain.CommodityHistory{}
		if series, ok := history[metal]; ok {
			out[metal] = series
		}
		return map[string]any{"output": out}, nil
	default:
		return map[string]any{"output": history}, nil
	}
}
