package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// AssignHolidayInput represents the input for holiday assignment.
// A nil HolidayID clears the holiday.
type AssignHolidayInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	HolidayID     *uuid.UUID
}

// AssignHolidayOutput represents the output of holiday assignment.
type AssignHolidayOutput struct {
	Transaction *entity.Transaction
}

// AssignHolidayUseCase handles holiday assignment. It does not check the
// booking date against the holiday's date range.
type AssignHolidayUseCase struct {
	transactionRepo adapter.TransactionRepository
	holidayRepo     adapter.HolidayRepository
}

// NewAssignHolidayUseCase creates a new AssignHolidayUseCase instance.
func NewAssignHolidayUseCase(
	transactionRepo adapter.TransactionRepository,
	holidayRepo adapter.HolidayRepository,
) *AssignHolidayUseCase {
	return &AssignHolidayUseCase{
		transactionRepo: transactionRepo,
		holidayRepo:     holidayRepo,
	}
}

// Execute performs the assignment.
func (uc *AssignHolidayUseCase) Execute(ctx context.Context, input AssignHolidayInput) (*AssignHolidayOutput, error) {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.HolidayID != nil {
		holiday, err := uc.holidayRepo.FindByID(ctx, *input.HolidayID)
		if err != nil && !errors.Is(err, domainerror.ErrHolidayNotFound) {
			return nil, fmt.Errorf("failed to find holiday: %w", err)
		}
		if holiday == nil || holiday.UserID != input.UserID {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnHolidayNotFound,
				"holiday not found",
				domainerror.ErrHolidayNotFound,
			)
		}
	}

	if err := uc.transactionRepo.UpdateHoliday(ctx, transaction.ID, input.HolidayID); err != nil {
		return nil, fmt.Errorf("failed to update holiday: %w", err)
	}
	transaction.HolidayID = input.HolidayID

	return &AssignHolidayOutput{Transaction: transaction}, nil
}
