// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a classification label. Tags with a nil UserID are global and
// read-only to everyone. Only top-level tags carry a category.
type Tag struct {
	ID           uuid.UUID
	UserID       *uuid.UUID
	Name         string
	Icon         string
	ParentID     *uuid.UUID
	CategoryCode *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewTag creates a new Tag entity owned by userID.
func NewTag(userID uuid.UUID, name, icon string, parentID *uuid.UUID, categoryCode *string) *Tag {
	now := time.Now().UTC()
	return &Tag{
		ID:           uuid.New(),
		UserID:       &userID,
		Name:         name,
		Icon:         icon,
		ParentID:     parentID,
		CategoryCode: categoryCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsGlobal reports whether the tag is system-owned.
func (t *Tag) IsGlobal() bool {
	return t.UserID == nil
}

// IsChild reports whether the tag is nested under a parent.
func (t *Tag) IsChild() bool {
	return t.ParentID != nil
}

// OwnedBy reports whether userID may modify the tag.
func (t *Tag) OwnedBy(userID uuid.UUID) bool {
	return t.UserID != nil && *t.UserID == userID
}

// VisibleTo reports whether userID may read and assign the tag.
func (t *Tag) VisibleTo(userID uuid.UUID) bool {
	return t.IsGlobal() || t.OwnedBy(userID)
}

// TagWithChildren is a top-level tag together with its child tags.
type TagWithChildren struct {
	Tag      *Tag
	Children []*Tag
}
