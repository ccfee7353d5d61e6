package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dravina/dravina-agent/internal/app/tools"
	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

// TerminalMarker is the fixed prefix identifying a model-authored text
// part as the final recommendation.
const TerminalMarker = "Result - "

// ExhaustedMessage is returned when the round ceiling is crossed without
// a terminal part. A normal, reportable outcome, not an error.
const ExhaustedMessage = "Maximum iterations reached without final result"

const maxRounds = 10

// Outcome is the absorbing state a session ended in.
type Outcome string

const (
	OutcomeTerminal  Outcome = "terminal"
	OutcomeExhausted Outcome = "exhausted"
)

// loop drives the reasoning engine through bounded rounds of
// think / call a tool / observe result. One loop owns its turn sequence
// exclusively; turns are append-only for the duration of the run.
type loop struct {
	engine   domain.ReasoningEngine
	registry *tools.Registry
	system   string
	turns    []domain.Turn

	rounds    int
	toolCalls int
}

type loopResult struct {
	Output    string
	Outcome   Outcome
	Rounds    int
	ToolCalls int
	Turns     []domain.Turn
}

// run executes rounds until a terminal marker appears or the ceiling is
// reached. Engine call failures end the session immediately. Tool
// failures do not: they come back as {"error": ...} results the engine
// is expected to adapt to.
func (l *loop) run(ctx context.Context, tctx tools.ToolContext) (loopResult, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", tctx.SessionID)
	contracts := l.registry.Contracts()

	for l.rounds = 1; l.rounds <= maxRounds; l.rounds++ {
		start := time.Now()
		parts, err := l.engine.Converse(ctx, l.system, l.turns, contracts)
		if err != nil {
			log.Error("engine call failed", "round", l.rounds, "error", err)
			return loopResult{}, fmt.Errorf("round %d: %w", l.rounds, err)
		}
		log.Info("round completed",
			"round", l.rounds, "parts", len(parts), "elapsed_ms", time.Since(start).Milliseconds())

		// Parts are processed strictly in emission order; a later tool
		// call may depend on an earlier result being visible next round.
		for _, part := range parts {
			switch {
			case part.Call != nil:
				l.dispatch(ctx, tctx, *part.Call)

			case strings.HasPrefix(part.Text, TerminalMarker):
				l.turns = append(l.turns, domain.TextTurn(domain.RoleModel, part.Text))
				return loopResult{
					Output:    part.Text,
					Outcome:   OutcomeTerminal,
					Rounds:    l.rounds,
					ToolCalls: l.toolCalls,
					Turns:     l.turns,
				}, nil

			default:
				l.turns = append(l.turns, domain.TextTurn(domain.RoleModel, part.Text))
			}
		}
	}

	log.Warn("round ceiling reached without terminal marker", "rounds", maxRounds)
	return loopResult{
		Output:    ExhaustedMessage,
		Outcome:   OutcomeExhausted,
		Rounds:    maxRounds,
		ToolCalls: l.toolCalls,
		Turns:     l.turns,
	}, nil
}

// dispatch appends the call turn, runs the tool synchronously and
// appends the paired result turn carrying the same call id.
func (l *loop) dispatch(ctx context.Context, tctx tools.ToolContext, call domain.ToolCall) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	l.turns = append(l.turns, domain.ToolCallTurn(call))

	output := l.registry.Dispatch(ctx, tctx, call.Name, call.Args)
	l.toolCalls++

	l.turns = append(l.turns, domain.ToolResultTurn(domain.ToolResult{
		ID:     call.ID,
		Name:   call.Name,
		Output: output,
	}))
}
