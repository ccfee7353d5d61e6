package advisor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dravina/dravina-agent/internal/adapters/storage/memstore"
	"github.com/dravina/dravina-agent/internal/app/advisor"
	memorysvc "github.com/dravina/dravina-agent/internal/app/memory"
	"github.com/dravina/dravina-agent/internal/app/tools"
	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/recorder"
)

// scriptedEngine replays a fixed sequence of Converse responses and
// snapshots the turn sequence it was shown on each call. Past the end
// of the script it repeats the last response.
type scriptedEngine struct {
	responses   [][]domain.Part
	converseErr error
	summary     string
	profile     domain.UserProfile

	calls     int
	seenTurns [][]domain.Turn
}

func (e *scriptedEngine) Converse(_ context.Context, _ string, turns []domain.Turn, _ []domain.ToolContract) ([]domain.Part, error) {
	snapshot := make([]domain.Turn, len(turns))
	copy(snapshot, turns)
	e.seenTurns = append(e.seenTurns, snapshot)
	e.calls++

	if e.converseErr != nil {
		return nil, e.converseErr
	}
	i := e.calls - 1
	if i >= len(e.responses) {
		i = len(e.responses) - 1
	}
	return e.responses[i], nil
}

func (e *scriptedEngine) GenerateText(context.Context, string, string) (string, error) {
	return e.summary, nil
}

func (e *scriptedEngine) ExtractProfile(context.Context, string) (domain.UserProfile, error) {
	return e.profile, nil
}

// failingStore rejects every operation; the session must still answer.
type failingStore struct{}

func (failingStore) GetAll(context.Context, domain.UserID, int) ([]domain.MemoryItem, error) {
	return nil, errors.New("store down")
}

func (failingStore) Search(context.Context, string, domain.UserID, string, int) ([]domain.MemoryItem, error) {
	return nil, errors.New("store down")
}

func (failingStore) Add(context.Context, []domain.MemoryItem, domain.UserID, bool) error {
	return errors.New("store down")
}

// captureRecorder keeps every record handed to it.
type captureRecorder struct {
	records []*recorder.SessionRecord
}

func (r *captureRecorder) RecordSession(rec *recorder.SessionRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func (r *captureRecorder) Close() error { return nil }

func newRegistry() *tools.Registry {
	return tools.NewRegistry(tools.NewCategoriesTool())
}

func TestAdviseTerminalOutcome(t *testing.T) {
	engine := &scriptedEngine{
		profile: domain.UserProfile{RiskTolerance: domain.RiskConservative, TimeHorizon: domain.HorizonLongTerm},
		responses: [][]domain.Part{
			{
				{Text: "Let me check suitable categories."},
				{Call: &domain.ToolCall{ID: "call-1", Name: "lookup_categories", Args: map[string]any{"risk": "low risk", "time": "long term"}}},
			},
			{{Text: "Result - invest in Large Cap Funds."}},
		},
	}
	store := memstore.NewStore()
	rec := &captureRecorder{}
	svc := advisor.NewService(engine, newRegistry(), memorysvc.NewService(store, advisor.TerminalMarker), rec)

	out, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "something safe for retirement"})
	require.NoError(t, err)

	assert.Equal(t, "Result - invest in Large Cap Funds.", out.Advice)
	assert.Equal(t, advisor.OutcomeTerminal, out.Outcome)
	assert.Equal(t, 2, out.Rounds)
	assert.Equal(t, domain.RiskConservative, out.Profile.RiskTolerance)

	// Second round must see text, call and paired result in emission order.
	require.Len(t, engine.seenTurns, 2)
	second := engine.seenTurns[1]
	require.Len(t, second, 4)
	assert.Equal(t, domain.TurnText, second[0].Kind)
	assert.Equal(t, "something safe for retirement", second[0].Text)
	assert.Equal(t, domain.TurnText, second[1].Kind)
	assert.Equal(t, domain.RoleModel, second[1].Role)
	require.Equal(t, domain.TurnToolCall, second[2].Kind)
	require.Equal(t, domain.TurnToolResult, second[3].Kind)
	assert.Equal(t, "call-1", second[2].Call.ID)
	assert.Equal(t, "call-1", second[3].Result.ID)
	assert.Equal(t, map[string]any{"output": []string{"Large Cap Funds"}}, second[3].Result.Output)

	// Terminal advice lands in memory.
	items, err := store.GetAll(context.Background(), "u1", 0)
	require.NoError(t, err)
	var adviceItems int
	for _, item := range items {
		if item.Tag == domain.TagFinanceAdvice {
			adviceItems++
			assert.Equal(t, "Result - invest in Large Cap Funds.", item.Content)
		}
	}
	assert.Equal(t, 1, adviceItems)

	require.Len(t, rec.records, 1)
	assert.Equal(t, "terminal", rec.records[0].Outcome)
	assert.Equal(t, 2, rec.records[0].Rounds)
	assert.Equal(t, 1, rec.records[0].ToolCalls)
}

func TestAdviseExhaustsAfterTenRounds(t *testing.T) {
	engine := &scriptedEngine{
		responses: [][]domain.Part{{{Text: "still thinking"}}},
	}
	store := memstore.NewStore()
	rec := &captureRecorder{}
	svc := advisor.NewService(engine, newRegistry(), memorysvc.NewService(store, advisor.TerminalMarker), rec)

	out, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "anything"})
	require.NoError(t, err)

	assert.Equal(t, advisor.ExhaustedMessage, out.Advice)
	assert.Equal(t, advisor.OutcomeExhausted, out.Outcome)
	assert.Equal(t, 10, out.Rounds)
	assert.Equal(t, 10, engine.calls)

	// No write-back on a non-terminal outcome.
	items, err := store.GetAll(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, rec.records, 1)
	assert.Equal(t, "exhausted", rec.records[0].Outcome)
}

func TestAdviseEngineFailure(t *testing.T) {
	engine := &scriptedEngine{converseErr: errors.New("deadline exceeded")}
	rec := &captureRecorder{}
	svc := advisor.NewService(engine, newRegistry(), memorysvc.NewService(memstore.NewStore(), advisor.TerminalMarker), rec)

	_, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "anything"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "round 1")

	require.Len(t, rec.records, 1)
	assert.Equal(t, "error", rec.records[0].Outcome)
}

func TestAdviseFeedsToolErrorBackToEngine(t *testing.T) {
	engine := &scriptedEngine{
		responses: [][]domain.Part{
			{{Call: &domain.ToolCall{Name: "no_such_tool"}}},
			{{Text: "Result - done anyway."}},
		},
	}
	svc := advisor.NewService(engine, newRegistry(), memorysvc.NewService(memstore.NewStore(), advisor.TerminalMarker), nil)

	out, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, advisor.OutcomeTerminal, out.Outcome)

	second := engine.seenTurns[1]
	require.Len(t, second, 3)
	require.Equal(t, domain.TurnToolResult, second[2].Kind)
	assert.Equal(t, map[string]any{"error": "unknown tool: no_such_tool"}, second[2].Result.Output)
	// A missing call id is filled in so the pair stays linked.
	assert.NotEmpty(t, second[1].Call.ID)
	assert.Equal(t, second[1].Call.ID, second[2].Result.ID)
}

func TestAdviseAppendsDeltaWhenPreviousAdviceExists(t *testing.T) {
	engine := &scriptedEngine{
		responses: [][]domain.Part{{{Text: "Result - new plan."}}},
		summary:   "### What changed since last time\nMoved from liquid funds to gilt funds.",
	}
	store := memstore.NewStore()
	memService := memorysvc.NewService(store, advisor.TerminalMarker)
	memService.WriteBack(context.Background(), "u1", nil, "Result - old plan.")

	svc := advisor.NewService(engine, newRegistry(), memService, nil)

	out, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Result - new plan.\n\n### What changed since last time\nMoved from liquid funds to gilt funds.", out.Advice)

	// The annotated version becomes the next "previous advice".
	assert.Equal(t, out.Advice, memService.FetchLastAdvice(context.Background(), "u1"))
}

func TestAdviseAnswersDespiteMemoryFailure(t *testing.T) {
	engine := &scriptedEngine{
		responses: [][]domain.Part{{{Text: "Result - plan."}}},
	}
	svc := advisor.NewService(engine, newRegistry(), memorysvc.NewService(failingStore{}, advisor.TerminalMarker), nil)

	out, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Result - plan.", out.Advice)
	assert.Equal(t, advisor.OutcomeTerminal, out.Outcome)
}

func TestAdviseSeedsConversationFromMemory(t *testing.T) {
	engine := &scriptedEngine{
		responses: [][]domain.Part{{{Text: "Result - plan."}}},
	}
	store := memstore.NewStore()
	memService := memorysvc.NewService(store, advisor.TerminalMarker)
	memService.WriteBack(context.Background(), "u1", []domain.Turn{
		domain.TextTurn(domain.RoleUser, "I already hold gold ETFs"),
	}, "")

	svc := advisor.NewService(engine, newRegistry(), memService, nil)

	_, err := svc.Advise(context.Background(), advisor.AdviseInput{UserID: "u1", Query: "what next?"})
	require.NoError(t, err)

	require.Len(t, engine.seenTurns, 1)
	first := engine.seenTurns[0]
	require.Len(t, first, 2)
	assert.Equal(t, "what next?", first[0].Text)
	assert.Equal(t, "I already hold gold ETFs", first[1].Text)
	assert.Equal(t, domain.RoleUser, first[1].Role)
}
