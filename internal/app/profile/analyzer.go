package profile

import (
	"context"
	"fmt"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// Analyzer derives a normalized risk/time profile from free text with a
// single schema-constrained engine call. The result is always inside the
// enumerated domain; unrecognized engine output degrades to
// ready_for_anything rather than an "unknown".
type Analyzer struct {
	engine domain.ReasoningEngine
}

func NewAnalyzer(engine domain.ReasoningEngine) *Analyzer {
	return &Analyzer{engine: engine}
}

func (a *Analyzer) Analyze(ctx context.Context, query string) (domain.UserProfile, error) {
	p, err := a.engine.ExtractProfile(ctx, query)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("extract profile: %w", err)
	}

	normalized := p.Normalize()
	if normalized != p {
		observability.LoggerFromContext(ctx).Warn("profile outside enumerated domain, normalized",
			"risk_tolerance", p.RiskTolerance, "time_horizon", p.TimeHorizon)
	}
	return normalized, nil
}
