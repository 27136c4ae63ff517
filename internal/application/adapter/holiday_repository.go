// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// HolidayRepository defines the interface for holiday persistence operations.
type HolidayRepository interface {
	// Create creates a new holiday.
	Create(ctx context.Context, holiday *entity.Holiday) error

	// FindByID retrieves a holiday by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Holiday, error)

	// FindByUser retrieves the user's holidays, most recent start date first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Holiday, error)

	// Delete removes a holiday. Transactions referencing it are detached.
	Delete(ctx context.Context, id uuid.UUID) error
}
