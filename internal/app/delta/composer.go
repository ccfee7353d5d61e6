package delta

import (
	"context"
	"fmt"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

const systemPrompt = `You are a professional financial advisor comparing a newly produced
recommendation against the user's previous one.

Summarize, as a short markdown section titled "What changed since last time":
- fund names or categories that were added, removed or replaced
- allocation percentage changes, with absolute currency deltas when a
  monthly savings figure can be inferred from either recommendation
- any change in the risk or duration classification
- a plain-language rationale for why the recommendation moved

Output only the summary section. Do not restate or edit the new
recommendation itself.`

// Composer appends a change summary to a new recommendation when a
// previous one exists for the user. It never edits the new advice; it
// only appends. Without previous advice the new advice passes through
// unchanged.
type Composer struct {
	engine domain.ReasoningEngine
}

func NewComposer(engine domain.ReasoningEngine) *Composer {
	return &Composer{engine: engine}
}

func (c *Composer) Compose(ctx context.Context, newAdvice, previousAdvice string) (string, error) {
	if previousAdvice == "" {
		return newAdvice, nil
	}

	user := fmt.Sprintf("Previous recommendation:\n%s\n\nNew recommendation:\n%s", previousAdvice, newAdvice)
	summary, err := c.engine.GenerateText(ctx, systemPrompt, user)
	if err != nil {
		// The comparison is an annotation, not the answer: fall back to
		// the unannotated advice rather than failing the session.
		observability.LoggerFromContext(ctx).Error("advice delta composition failed", "error", err)
		return newAdvice, nil
	}
	if summary == "" {
		return newAdvice, nil
	}
	return newAdvice + "\n\n" + summary, nil
}
