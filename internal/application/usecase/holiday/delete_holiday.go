package holiday

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
)

// DeleteHolidayInput represents the input for holiday deletion.
type DeleteHolidayInput struct {
	HolidayID uuid.UUID
	UserID    uuid.UUID
}

// DeleteHolidayUseCase handles holiday deletion. Its transactions return to the
// standard report.
type DeleteHolidayUseCase struct {
	holidayRepo adapter.HolidayRepository
}

// NewDeleteHolidayUseCase creates a new DeleteHolidayUseCase instance.
func NewDeleteHolidayUseCase(holidayRepo adapter.HolidayRepository) *DeleteHolidayUseCase {
	return &DeleteHolidayUseCase{holidayRepo: holidayRepo}
}

// Execute performs the holiday deletion.
func (uc *DeleteHolidayUseCase) Execute(ctx context.Context, input DeleteHolidayInput) error {
	holiday, err := findOwnedHoliday(ctx, uc.holidayRepo, input.HolidayID, input.UserID)
	if err != nil {
		return err
	}
	if err := uc.holidayRepo.Delete(ctx, holiday.ID); err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	return nil
}
