package domain

import "context"

// ReasoningEngine defines how the core interacts with the language-model
// backend. One implementation talks to Gemini; tests use a scripted mock.
type ReasoningEngine interface {
	// Converse submits the system instructions, the full turn sequence and
	// the available tool contracts, and returns one response as an ordered
	// list of parts.
	Converse(ctx context.Context, system string, turns []Turn, tools []ToolContract) ([]Part, error)

	// GenerateText performs a single-shot text generation without tools.
	GenerateText(ctx context.Context, system, user string) (string, error)

	// ExtractProfile performs a schema-constrained extraction of the user's
	// risk/time profile from free text.
	ExtractProfile(ctx context.Context, query string) (UserProfile, error)
}

// DatasetProvider supplies the externally published datasets. Each method
// may legitimately return empty data; absence is "no data", never fatal.
type DatasetProvider interface {
	Funds(ctx context.Context) ([]Fund, error)
	FundDetails(ctx context.Context) (FundDetails, error)
	CommodityHistory(ctx context.Context) (CommodityHistory, error)
}

// MemoryStore persists MemoryItems scoped by user. Implementations must
// guarantee per-user isolation; no cross-user visibility.
type MemoryStore interface {
	// GetAll returns up to limit items for the user, oldest first.
	GetAll(ctx context.Context, userID UserID, limit int) ([]MemoryItem, error)

	// Search returns up to limit items matching the query and tag filter
	// (empty tag means any), oldest first.
	Search(ctx context.Context, query string, userID UserID, tag string, limit int) ([]MemoryItem, error)

	// Add appends items for the user. When infer is set the backend may
	// derive additional structured facts from the content; otherwise the
	// content is stored verbatim.
	Add(ctx context.Context, items []MemoryItem, userID UserID, infer bool) error
}
