package delta_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dravina/dravina-agent/internal/app/delta"
	"github.com/dravina/dravina-agent/internal/domain"
)

// textEngine serves a canned GenerateText answer; the other engine
// methods are unused by the composer.
type textEngine struct {
	summary  string
	err      error
	lastUser string
}

func (e *textEngine) GenerateText(_ context.Context, _ string, user string) (string, error) {
	e.lastUser = user
	return e.summary, e.err
}

func (e *textEngine) Converse(context.Context, string, []domain.Turn, []domain.ToolContract) ([]domain.Part, error) {
	return nil, errors.New("not implemented")
}

func (e *textEngine) ExtractProfile(context.Context, string) (domain.UserProfile, error) {
	return domain.UserProfile{}, errors.New("not implemented")
}

func TestComposeWithoutPreviousAdviceIsIdentity(t *testing.T) {
	engine := &textEngine{summary: "should not be called"}
	c := delta.NewComposer(engine)

	got, err := c.Compose(context.Background(), "Result - new advice", "")
	require.NoError(t, err)
	assert.Equal(t, "Result - new advice", got)
	assert.Empty(t, engine.lastUser)
}

func TestComposeAppendsSummary(t *testing.T) {
	engine := &textEngine{summary: "### What changed since last time\nSwapped the liquid fund for a gilt fund."}
	c := delta.NewComposer(engine)

	got, err := c.Compose(context.Background(), "Result - new advice", "Result - old advice")
	require.NoError(t, err)
	assert.Equal(t, "Result - new advice\n\n### What changed since last time\nSwapped the liquid fund for a gilt fund.", got)

	// Both recommendations must reach the engine.
	assert.Contains(t, engine.lastUser, "Result - old advice")
	assert.Contains(t, engine.lastUser, "Result - new advice")
}

func TestComposeFallsBackOnEngineError(t *testing.T) {
	c := delta.NewComposer(&textEngine{err: errors.New("quota exceeded")})

	got, err := c.Compose(context.Background(), "Result - new advice", "Result - old advice")
	require.NoError(t, err)
	assert.Equal(t, "Result - new advice", got)
}

func TestComposeFallsBackOnEmptySummary(t *testing.T) {
	c := delta.NewComposer(&textEngine{summary: ""})

	got, err := c.Compose(context.Background(), "Result - new advice", "Result - old advice")
	require.NoError(t, err)
	assert.Equal(t, "Result - new advice", got)
}
