package holiday

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// SummarizeHolidayInput represents the input for a holiday summary.
type SummarizeHolidayInput struct {
	HolidayID uuid.UUID
	UserID    uuid.UUID
}

// SummarizeHolidayOutput represents a holiday summary.
type SummarizeHolidayOutput struct {
	Summary *Summary
}

// SummarizeHolidayUseCase computes the spending totals of one holiday.
type SummarizeHolidayUseCase struct {
	holidayRepo     adapter.HolidayRepository
	transactionRepo adapter.TransactionRepository
	tagRepo         adapter.TagRepository
}

// NewSummarizeHolidayUseCase creates a new SummarizeHolidayUseCase instance.
func NewSummarizeHolidayUseCase(
	holidayRepo adapter.HolidayRepository,
	transactionRepo adapter.TransactionRepository,
	tagRepo adapter.TagRepository,
) *SummarizeHolidayUseCase {
	return &SummarizeHolidayUseCase{
		holidayRepo:     holidayRepo,
		transactionRepo: transactionRepo,
		tagRepo:         tagRepo,
	}
}

// Execute computes the summary.
func (uc *SummarizeHolidayUseCase) Execute(ctx context.Context, input SummarizeHolidayInput) (*SummarizeHolidayOutput, error) {
	holiday, err := findOwnedHoliday(ctx, uc.holidayRepo, input.HolidayID, input.UserID)
	if err != nil {
		return nil, err
	}

	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	summary, err := summarizeOne(ctx, uc.transactionRepo, holiday, tags)
	if err != nil {
		return nil, err
	}
	return &SummarizeHolidayOutput{Summary: summary}, nil
}

func summarizeOne(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	holiday *entity.Holiday,
	tags []*entity.Tag,
) (*Summary, error) {
	holidayID := holiday.ID
	transactions, err := transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    holiday.UserID,
		HolidayID: &holidayID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load holiday transactions: %w", err)
	}
	return Summarize(holiday, transactions, tags), nil
}

func findOwnedHoliday(ctx context.Context, holidayRepo adapter.HolidayRepository, holidayID, userID uuid.UUID) (*entity.Holiday, error) {
	holiday, err := holidayRepo.FindByID(ctx, holidayID)
	if err != nil {
		if errors.Is(err, domainerror.ErrHolidayNotFound) {
			return nil, domainerror.NewHolidayError(
				domainerror.ErrCodeHolidayNotFound,
				"holiday not found",
				domainerror.ErrHolidayNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}
	if holiday.UserID != userID {
		return nil, domainerror.NewHolidayError(
			domainerror.ErrCodeHolidayNotFound,
			"holiday not found",
			domainerror.ErrHolidayNotFound,
		)
	}
	return holiday, nil
}
