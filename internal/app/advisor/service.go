package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dravina/dravina-agent/internal/app/delta"
	memorysvc "github.com/dravina/dravina-agent/internal/app/memory"
	"github.com/dravina/dravina-agent/internal/app/profile"
	"github.com/dravina/dravina-agent/internal/app/tools"
	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
	"github.com/dravina/dravina-agent/internal/recorder"
)

// Service runs one advisory session end to end: derive the profile, seed
// the conversation from memory, drive the tool loop, annotate the result
// with the advice delta and write the session back to memory.
//
// The session splits into two phases with independent failure domains:
// compute-and-answer always completes (or fails loudly), then best-effort
// write-back and audit never block or invalidate the answer.
type Service struct {
	engine   domain.ReasoningEngine
	registry *tools.Registry
	analyzer *profile.Analyzer
	memory   *memorysvc.Service
	composer *delta.Composer
	recorder recorder.Recorder
	now      func() time.Time
}

func NewService(
	engine domain.ReasoningEngine,
	registry *tools.Registry,
	memory *memorysvc.Service,
	rec recorder.Recorder,
) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{
		engine:   engine,
		registry: registry,
		analyzer: profile.NewAnalyzer(engine),
		memory:   memory,
		composer: delta.NewComposer(engine),
		recorder: rec,
		now:      time.Now,
	}
}

type AdviseInput struct {
	UserID domain.UserID
	Query  string
}

type AdviseOutput struct {
	Advice  string
	Profile domain.UserProfile
	Outcome Outcome
	Rounds  int
}

func (s *Service) Advise(ctx context.Context, in AdviseInput) (*AdviseOutput, error) {
	sessionID := uuid.NewString()
	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"user_id", in.UserID,
	)
	log.Info("advisory session started")

	userProfile, err := s.analyzer.Analyze(ctx, in.Query)
	if err != nil {
		s.record(ctx, sessionID, in, domain.UserProfile{}, "error", 0, 0, "")
		return nil, fmt.Errorf("analyze profile: %w", err)
	}
	log.Info("profile derived",
		"risk_tolerance", userProfile.RiskTolerance,
		"time_horizon", userProfile.TimeHorizon)

	turns := []domain.Turn{domain.TextTurn(domain.RoleUser, in.Query)}
	for _, item := range s.memory.FetchRecent(ctx, in.UserID) {
		turns = append(turns, domain.TextTurn(domain.RoleUser, item.Content))
	}

	l := &loop{
		engine:   s.engine,
		registry: s.registry,
		system:   buildSystemPrompt(userProfile),
		turns:    turns,
	}
	tctx := tools.ToolContext{
		UserID:    string(in.UserID),
		SessionID: sessionID,
	}

	result, err := l.run(ctx, tctx)
	if err != nil {
		s.record(ctx, sessionID, in, userProfile, "error", l.rounds, l.toolCalls, "")
		return nil, fmt.Errorf("advisory session: %w", err)
	}

	advice := result.Output
	if result.Outcome == OutcomeTerminal {
		previous := s.memory.FetchLastAdvice(ctx, in.UserID)
		advice, err = s.composer.Compose(ctx, result.Output, previous)
		if err != nil {
			// Compose degrades internally; an error here is unexpected
			// but still must not lose the recommendation.
			log.Error("delta composition error", "error", err)
			advice = result.Output
		}
		s.memory.WriteBack(ctx, in.UserID, result.Turns, advice)
	}

	s.record(ctx, sessionID, in, userProfile, string(result.Outcome), result.Rounds, result.ToolCalls, advice)
	log.Info("advisory session finished", "outcome", result.Outcome, "rounds", result.Rounds)

	return &AdviseOutput{
		Advice:  advice,
		Profile: userProfile,
		Outcome: result.Outcome,
		Rounds:  result.Rounds,
	}, nil
}

func (s *Service) record(ctx context.Context, sessionID string, in AdviseInput, p domain.UserProfile, outcome string, rounds, toolCalls int, advice string) {
	err := s.recorder.RecordSession(&recorder.SessionRecord{
		SessionID:     sessionID,
		UserID:        string(in.UserID),
		Query:         in.Query,
		RiskTolerance: string(p.RiskTolerance),
		TimeHorizon:   string(p.TimeHorizon),
		Outcome:       outcome,
		Rounds:        rounds,
		ToolCalls:     toolCalls,
		Advice:        advice,
	})
	if err != nil {
		observability.LoggerFromContext(ctx).Error("session record failed", "error", err)
	}
}
