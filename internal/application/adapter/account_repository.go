// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Upsert inserts the account or updates the mutable fields of the account
	// with the same resource id.
	Upsert(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts of the user ordered by name.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// FindUsersWithStaleAccounts returns up to limit user ids owning an account
	// whose last import is older than before (or never happened).
	FindUsersWithStaleAccounts(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error)

	// MarkImported stores the fetched balance and import time.
	MarkImported(ctx context.Context, id uuid.UUID, balance decimal.Decimal, importedAt time.Time) error
}

// InstitutionRepository defines the interface for institution persistence operations.
type InstitutionRepository interface {
	// UpsertByCode inserts institutions or updates name and logo of existing codes.
	UpsertByCode(ctx context.Context, institutions []*entity.Institution) error

	// FindAll retrieves all institutions ordered by name.
	FindAll(ctx context.Context) ([]*entity.Institution, error)

	// FindByID retrieves an institution by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Institution, error)

	// FindByCode retrieves an institution by its provider code.
	FindByCode(ctx context.Context, code string) (*entity.Institution, error)
}

// RequisitionRepository defines the interface for requisition persistence operations.
type RequisitionRepository interface {
	// Create creates a new requisition.
	Create(ctx context.Context, requisition *entity.Requisition) error

	// FindByUser retrieves all requisitions of the user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Requisition, error)

	// Update updates status and account ids of a requisition.
	Update(ctx context.Context, requisition *entity.Requisition) error
}
