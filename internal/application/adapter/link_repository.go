// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// LinkRepository defines the interface for transfer link persistence operations.
type LinkRepository interface {
	// Create stores a link. It returns domainerror.ErrDuplicateLink when either
	// leg already participates in a link.
	Create(ctx context.Context, link *entity.TransferLink) error

	// FindByUser retrieves all links whose legs belong to the user, with both legs loaded.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TransferLinkWithLegs, error)

	// LinkedTransactionIDs returns the ids of every transaction of the user that is a leg.
	LinkedTransactionIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}
