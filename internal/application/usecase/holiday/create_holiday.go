package holiday

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// CreateHolidayInput represents the input for holiday creation.
type CreateHolidayInput struct {
	UserID    uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// CreateHolidayOutput represents the output of holiday creation.
type CreateHolidayOutput struct {
	Holiday *entity.Holiday
}

// CreateHolidayUseCase handles holiday creation logic.
type CreateHolidayUseCase struct {
	holidayRepo adapter.HolidayRepository
}

// NewCreateHolidayUseCase creates a new CreateHolidayUseCase instance.
func NewCreateHolidayUseCase(holidayRepo adapter.HolidayRepository) *CreateHolidayUseCase {
	return &CreateHolidayUseCase{holidayRepo: holidayRepo}
}

// Execute performs the holiday creation.
func (uc *CreateHolidayUseCase) Execute(ctx context.Context, input CreateHolidayInput) (*CreateHolidayOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewHolidayError(
			domainerror.ErrCodeHolidayNameRequired,
			"name is required",
			domainerror.ErrHolidayNameRequired,
		)
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, domainerror.NewHolidayError(
			domainerror.ErrCodeHolidayInvalidRange,
			"end date must not be before start date",
			domainerror.ErrHolidayInvalidRange,
		)
	}

	holiday := entity.NewHoliday(input.UserID, name, input.StartDate, input.EndDate)
	if err := uc.holidayRepo.Create(ctx, holiday); err != nil {
		return nil, fmt.Errorf("failed to create holiday: %w", err)
	}
	return &CreateHolidayOutput{Holiday: holiday}, nil
}
