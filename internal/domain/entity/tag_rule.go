// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TagRule assigns TagID to a transaction whose reference contains Expression,
// compared case-insensitively. Rules are evaluated in creation order.
type TagRule struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TagID      uuid.UUID
	Expression string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTagRule creates a new TagRule entity.
func NewTagRule(userID, tagID uuid.UUID, expression string) *TagRule {
	now := time.Now().UTC()
	return &TagRule{
		ID:         uuid.New(),
		UserID:     userID,
		TagID:      tagID,
		Expression: expression,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Matches reports whether the rule applies to the given reference text.
// An empty expression never matches.
func (r *TagRule) Matches(reference string) bool {
	if r.Expression == "" {
		return false
	}
	return strings.Contains(strings.ToLower(reference), strings.ToLower(r.Expression))
}
