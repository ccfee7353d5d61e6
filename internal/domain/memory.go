package domain

import "time"

// TagFinanceAdvice marks a MemoryItem as a distilled final recommendation.
// Items carrying it are excluded from conversational recall and are the
// only items considered by last-advice lookup.
const TagFinanceAdvice = "finance_advice"

// MemoryItem is one stored fragment of a user's history: either a raw
// dialogue fragment (untagged) or a final-advice fragment (tagged
// finance_advice). Items are never mutated after creation.
type MemoryItem struct {
	ID        string
	UserID    UserID
	Content   string
	Role      Role
	Tag       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recency returns the timestamp used to order items: the later of
// created and updated.
func (m MemoryItem) Recency() time.Time {
	if m.UpdatedAt.After(m.CreatedAt) {
		return m.UpdatedAt
	}
	return m.CreatedAt
}
