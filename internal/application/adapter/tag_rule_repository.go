// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// TagRuleRepository defines the interface for tag rule persistence operations.
type TagRuleRepository interface {
	// Create creates a new rule.
	Create(ctx context.Context, rule *entity.TagRule) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TagRule, error)

	// FindByUser retrieves the user's rules in evaluation order: creation time, then ID.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TagRule, error)

	// Update updates an existing rule.
	Update(ctx context.Context, rule *entity.TagRule) error

	// Delete removes a rule.
	Delete(ctx context.Context, id uuid.UUID) error
}
