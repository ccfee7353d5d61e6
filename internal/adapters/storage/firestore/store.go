package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dravina/dravina-agent/internal/domain"
)

// Store implements domain.MemoryStore on Firestore.
type Store struct {
	client *firestore.Client
}

// NewStore creates a Firestore-backed memory store.
// Uses the project passed (DRAVINA_GCP_PROJECT).
func NewStore(ctx context.Context, projectID string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID is required for Firestore store")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("creating firestore client: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

// ─────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────

func (s *Store) memoriesCol() *firestore.CollectionRef {
	return s.client.Collection("memories")
}

type memoryDoc struct {
	UserID    string    `firestore:"user_id"`
	Content   string    `firestore:"content"`
	Role      string    `firestore:"role"`
	Tag       string    `firestore:"tag,omitempty"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at,omitempty"`
}

func toItem(id string, d memoryDoc) domain.MemoryItem {
	return domain.MemoryItem{
		ID:        id,
		UserID:    domain.UserID(d.UserID),
		Content:   d.Content,
		Role:      domain.Role(d.Role),
		Tag:       d.Tag,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// ─────────────────────────────────────────
// domain.MemoryStore
// ─────────────────────────────────────────

// GetAll returns up to limit items for the user, oldest first.
func (s *Store) GetAll(ctx context.Context, userID domain.UserID, limit int) ([]domain.MemoryItem, error) {
	q := s.memoriesCol().
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	items, err := s.collect(ctx, q)
	if err != nil {
		return nil, err
	}
	// Query is newest-first to honor the limit; callers expect oldest
	// first.
	reverse(items)
	return items, nil
}

// Search returns items matching the tag filter and a case-insensitive
// substring match on the content. Firestore has no substring operator,
// so the text filter is applied client-side.
func (s *Store) Search(ctx context.Context, query string, userID domain.UserID, tag string, limit int) ([]domain.MemoryItem, error) {
	q := s.memoriesCol().
		Where("user_id", "==", string(userID)).
		OrderBy("created_at", firestore.Asc)
	if tag != "" {
		q = q.Where("tag", "==", tag)
	}

	items, err := s.collect(ctx, q)
	if err != nil {
		return nil, err
	}

	var out []domain.MemoryItem
	for _, item := range items {
		if query != "" && !strings.Contains(strings.ToLower(item.Content), strings.ToLower(query)) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// Add appends items for the user. Firestore stores content verbatim;
// the infer flag is accepted for interface compatibility.
func (s *Store) Add(ctx context.Context, items []domain.MemoryItem, userID domain.UserID, _ bool) error {
	now := time.Now()
	for _, item := range items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		ref := s.memoriesCol().NewDoc()
		if item.ID != "" {
			ref = s.memoriesCol().Doc(item.ID)
		}
		_, err := ref.Set(ctx, memoryDoc{
			UserID:    string(userID),
			Content:   item.Content,
			Role:      string(item.Role),
			Tag:       item.Tag,
			CreatedAt: createdAt,
			UpdatedAt: item.UpdatedAt,
		})
		if err != nil {
			return fmt.Errorf("storing memory item: %w", err)
		}
	}
	return nil
}

func (s *Store) collect(ctx context.Context, q firestore.Query) ([]domain.MemoryItem, error) {
	iter := q.Documents(ctx)
	defer iter.Stop()

	var items []domain.MemoryItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, fmt.Errorf("iterating memories: %w", err)
		}

		var d memoryDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decoding memory item %s: %w", doc.Ref.ID, err)
		}
		items = append(items, toItem(doc.Ref.ID, d))
	}
	return items, nil
}

func reverse(items []domain.MemoryItem) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
