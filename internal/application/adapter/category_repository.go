// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// CategoryRepository defines the interface for reporting category persistence.
type CategoryRepository interface {
	// FindAll retrieves all categories ordered by code.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// FindByCode retrieves a category by code.
	FindByCode(ctx context.Context, code string) (*entity.Category, error)

	// Seed inserts the given categories, leaving existing codes untouched.
	Seed(ctx context.Context, categories []*entity.Category) error
}

// TagRepository defines the interface for tag persistence operations.
type TagRepository interface {
	// Create creates a new tag.
	Create(ctx context.Context, tag *entity.Tag) error

	// FindByID retrieves a tag by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error)

	// FindVisibleByUser retrieves global tags and the user's own tags, ordered by name.
	FindVisibleByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error)

	// Update updates an existing tag.
	Update(ctx context.Context, tag *entity.Tag) error

	// Delete removes a tag. Its transactions become untagged and its rules inert.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountChildren counts tags whose parent is the given tag.
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)
}
