package memory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dravina/dravina-agent/internal/domain"
	"github.com/dravina/dravina-agent/internal/observability"
)

const recallLimit = 20

// Service layers recall and write-back semantics over a MemoryStore
// backend. Persistence is best-effort: every backend failure is swallowed
// and reported through the log, never to the caller. A session must
// complete and answer even when memory is unreachable.
type Service struct {
	store          domain.MemoryStore
	terminalPrefix string
	now            func() time.Time
}

func NewService(store domain.MemoryStore, terminalPrefix string) *Service {
	return &Service{
		store:          store,
		terminalPrefix: terminalPrefix,
		now:            time.Now,
	}
}

// FetchRecent returns the user's recent raw dialogue fragments, oldest
// first, excluding stored final advice. It seeds a new session's context
// without re-injecting prior recommendations verbatim.
func (s *Service) FetchRecent(ctx context.Context, userID domain.UserID) []domain.MemoryItem {
	items, err := s.store.GetAll(ctx, userID, recallLimit)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("memory recall failed", "user_id", userID, "error", err)
		return nil
	}

	recent := make([]domain.MemoryItem, 0, len(items))
	for _, item := range items {
		if item.Tag == domain.TagFinanceAdvice {
			continue
		}
		recent = append(recent, item)
	}
	return recent
}

// FetchLastAdvice returns the content of the most recent finance_advice
// item for the user, or empty when none exists. Recency is the max of
// created and updated timestamps; ties keep the first seen.
func (s *Service) FetchLastAdvice(ctx context.Context, userID domain.UserID) string {
	items, err := s.store.Search(ctx, "", userID, domain.TagFinanceAdvice, 0)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("last-advice lookup failed", "user_id", userID, "error", err)
		return ""
	}

	var latest *domain.MemoryItem
	for i := range items {
		if latest == nil || items[i].Recency().After(latest.Recency()) {
			latest = &items[i]
		}
	}
	if latest == nil {
		return ""
	}
	return latest.Content
}

// WriteBack partitions a completed session's turn sequence and persists
// it: conversational text fragments with inference enabled, and the
// terminal advice (already delta-annotated by the caller) verbatim with
// the finance_advice tag. Model-authored narration and tool traffic are
// not stored. Called at most once per session, on success only.
func (s *Service) WriteBack(ctx context.Context, userID domain.UserID, turns []domain.Turn, finalAdvice string) {
	log := observability.LoggerFromContext(ctx).With("user_id", userID)
	now := s.now()

	var fragments []domain.MemoryItem
	for _, turn := range turns {
		if turn.Kind != domain.TurnText {
			continue
		}
		if turn.Role == domain.RoleModel || turn.Role == domain.RoleSystem {
			continue
		}
		if strings.HasPrefix(turn.Text, s.terminalPrefix) {
			continue
		}
		fragments = append(fragments, domain.MemoryItem{
			ID:        uuid.NewString(),
			UserID:    userID,
			Content:   turn.Text,
			Role:      turn.Role,
			CreatedAt: now,
		})
	}

	if len(fragments) > 0 {
		if err := s.store.Add(ctx, fragments, userID, true); err != nil {
			log.Error("memory write-back failed for fragments", "error", err)
		}
	}

	if finalAdvice == "" {
		return
	}
	advice := []domain.MemoryItem{{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   finalAdvice,
		Role:      domain.RoleModel,
		Tag:       domain.TagFinanceAdvice,
		CreatedAt: now,
	}}
	if err := s.store.Add(ctx, advice, userID, false); err != nil {
		log.Error("memory write-back failed for advice", "error", err)
	}
}
