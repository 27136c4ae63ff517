// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID       uuid.UUID
	StartDate    *time.Time // Inclusive, by booking date
	EndDate      *time.Time // Inclusive, by booking date
	AccountID    *uuid.UUID
	HolidayID    *uuid.UUID
	UnlinkedOnly bool
}

// TagAssignment pairs a transaction with the tag a rule chose for it.
type TagAssignment struct {
	TransactionID uuid.UUID
	TagID         uuid.UUID
}

// UpsertResult reports how many transactions were inserted versus already known.
type UpsertResult struct {
	Inserted int
	Skipped  int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// UpsertBatch inserts transactions, keeping the first write for any internal id
	// that already exists.
	UpsertBatch(ctx context.Context, transactions []*entity.Transaction) (*UpsertResult, error)

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves a user's transactions ordered by booking date, then ID.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// FindUnlinkedByUser retrieves every transaction of the user that no link references.
	FindUnlinkedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindUntaggedByUser retrieves every transaction of the user with no tag.
	FindUntaggedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// UpdateTag sets or clears the tag of a transaction.
	UpdateTag(ctx context.Context, id uuid.UUID, tagID *uuid.UUID) error

	// UpdateHoliday sets or clears the holiday of a transaction.
	UpdateHoliday(ctx context.Context, id uuid.UUID, holidayID *uuid.UUID) error

	// BulkAssignTags writes rule-chosen tags, only to transactions that are still untagged.
	// Returns the count of updated transactions.
	BulkAssignTags(ctx context.Context, assignments []TagAssignment) (int64, error)
}
