package memstore_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dravina/dravina-agent/internal/adapters/storage/memstore"
	"github.com/dravina/dravina-agent/internal/domain"
)

func seed(t *testing.T, s *memstore.Store, userID domain.UserID, n int) {
	t.Helper()
	items := make([]domain.MemoryItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.MemoryItem{
			ID:      fmt.Sprintf("%s-%d", userID, i),
			Content: fmt.Sprintf("fragment %d", i),
		})
	}
	require.NoError(t, s.Add(context.Background(), items, userID, false))
}

func TestGetAllReturnsNewestWindowOldestFirst(t *testing.T) {
	s := memstore.NewStore()
	seed(t, s, "u1", 5)

	got, err := s.GetAll(context.Background(), "u1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "fragment 2", got[0].Content)
	assert.Equal(t, "fragment 4", got[2].Content)
}

func TestGetAllUnlimited(t *testing.T) {
	s := memstore.NewStore()
	seed(t, s, "u1", 5)

	got, err := s.GetAll(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestGetAllIsolatesUsers(t *testing.T) {
	s := memstore.NewStore()
	seed(t, s, "u1", 2)

	got, err := s.GetAll(context.Background(), "u2", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchFiltersByTagAndQuery(t *testing.T) {
	s := memstore.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.MemoryItem{
		{ID: "1", Content: "I want to save for a house"},
		{ID: "2", Content: "Result - buy gilt funds", Tag: domain.TagFinanceAdvice},
		{ID: "3", Content: "Result - buy liquid funds", Tag: domain.TagFinanceAdvice},
	}, "u1", false))

	byTag, err := s.Search(ctx, "", "u1", domain.TagFinanceAdvice, 0)
	require.NoError(t, err)
	assert.Len(t, byTag, 2)

	byQuery, err := s.Search(ctx, "GILT", "u1", domain.TagFinanceAdvice, 0)
	require.NoError(t, err)
	require.Len(t, byQuery, 1)
	assert.Equal(t, "2", byQuery[0].ID)

	limited, err := s.Search(ctx, "", "u1", "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAddDefaultsCreatedAt(t *testing.T) {
	s := memstore.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, []domain.MemoryItem{{ID: "1", Content: "hello"}}, "u1", true))

	got, err := s.GetAll(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
	assert.Equal(t, domain.UserID("u1"), got[0].UserID)
}
