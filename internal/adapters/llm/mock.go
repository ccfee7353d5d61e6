package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/dravina/dravina-agent/internal/app/profile"
	"github.com/dravina/dravina-agent/internal/domain"
)

// MockEngine is a deterministic ReasoningEngine for local mode and
// development. It walks the advisory workflow the way the real engine
// is instructed to: categories first, then a fund search, then a
// marker-prefixed recommendation.
type MockEngine struct{}

func NewMockEngine() *MockEngine {
	return &MockEngine{}
}

func (m *MockEngine) ExtractProfile(_ context.Context, query string) (domain.UserProfile, error) {
	return profile.Classify(query), nil
}

func (m *MockEngine) GenerateText(_ context.Context, _ string, _ string) (string, error) {
	return "### What changed since last time\nThe selected funds and allocations were revised to match your current profile.", nil
}

func (m *MockEngine) Converse(
	_ context.Context,
	_ string,
	turns []domain.Turn,
	_ []domain.ToolContract,
) ([]domain.Part, error) {
	results := toolResults(turns)

	switch len(results) {
	case 0:
		p := profile.Classify(firstUserText(turns))
		return []domain.Part{{Call: &domain.ToolCall{
			ID:   "mock-1",
			Name: "lookup_categories",
			Args: map[string]any{"risk": mockRisk(p.RiskTolerance), "time": mockTerm(p.TimeHorizon)},
		}}}, nil

	case 1:
		return []domain.Part{{Call: &domain.ToolCall{
			ID:   "mock-2",
			Name: "search_funds",
			Args: map[string]any{"tags": categoryTags(results[0].Output)},
		}}}, nil

	default:
		return []domain.Part{{Text: "Result - " + mockRecommendation(results[len(results)-1].Output)}}, nil
	}
}

func toolResults(turns []domain.Turn) []*domain.ToolResult {
	var out []*domain.ToolResult
	for _, t := range turns {
		if t.Kind == domain.TurnToolResult {
			out = append(out, t.Result)
		}
	}
	return out
}

func firstUserText(turns []domain.Turn) string {
	for _, t := range turns {
		if t.Kind == domain.TurnText && t.Role == domain.RoleUser {
			return t.Text
		}
	}
	return ""
}

func mockRisk(r domain.RiskTolerance) string {
	switch r {
	case domain.RiskConservative:
		return "low risk"
	case domain.RiskModerate:
		return "medium risk"
	case domain.RiskAggressive:
		return "high risk"
	default:
		return "all risk"
	}
}

func mockTerm(h domain.TimeHorizon) string {
	switch h {
	case domain.HorizonShortTerm:
		return "short term"
	case domain.HorizonMediumTerm:
		return "medium term"
	case domain.HorizonLongTerm:
		return "long term"
	default:
		return "all term"
	}
}

// categoryTags turns a lookup_categories output into search tags the way
// the advisor prompt requires: lower-cased with "fund"/"funds" removed.
func categoryTags(output map[string]any) []string {
	var categories []string
	switch v := output["output"].(type) {
	case []string:
		categories = v
	case map[string][]string:
		for _, list := range v {
			categories = append(categories, list...)
		}
	}
	if len(categories) == 0 {
		categories = []string{"Large Cap Funds"}
	}

	tags := make([]string, 0, len(categories))
	for _, c := range categories {
		tag := strings.ToLower(c)
		tag = strings.TrimSuffix(tag, " funds")
		tag = strings.TrimSuffix(tag, " fund")
		tags = append(tags, tag)
	}
	return tags
}

func mockRecommendation(output map[string]any) string {
	funds, _ := output["output"].([]domain.Fund)
	if len(funds) == 0 {
		return "No matching funds were found for your profile. Consider widening your risk or duration preferences."
	}

	var b strings.Builder
	b.WriteString("Recommended allocation of your monthly savings:\n")
	share := 100 / len(funds)
	for i, f := range funds {
		if i == len(funds)-1 {
			share = 100 - share*(len(funds)-1)
		}
		fmt.Fprintf(&b, "- %d%% in %s (return %s, expense ratio %s)\n", share, f.Title, f.Return, f.ExpenseRatio)
	}
	b.WriteString("Review this allocation every 12 months.")
	return b.String()
}
