package holiday

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
)

// ListHolidaysInput represents the input for listing holidays.
type ListHolidaysInput struct {
	UserID uuid.UUID
}

// YearGroup holds the holidays starting in one year.
type YearGroup struct {
	Year     int
	Holidays []*Summary
}

// ListHolidaysOutput lists holidays grouped by start year, most recent first.
type ListHolidaysOutput struct {
	Years []*YearGroup
}

// ListHolidaysUseCase lists a user's holidays with their summaries.
type ListHolidaysUseCase struct {
	holidayRepo     adapter.HolidayRepository
	transactionRepo adapter.TransactionRepository
	tagRepo         adapter.TagRepository
}

// NewListHolidaysUseCase creates a new ListHolidaysUseCase instance.
func NewListHolidaysUseCase(
	holidayRepo adapter.HolidayRepository,
	transactionRepo adapter.TransactionRepository,
	tagRepo adapter.TagRepository,
) *ListHolidaysUseCase {
	return &ListHolidaysUseCase{
		holidayRepo:     holidayRepo,
		transactionRepo: transactionRepo,
		tagRepo:         tagRepo,
	}
}

// Execute lists the holidays.
func (uc *ListHolidaysUseCase) Execute(ctx context.Context, input ListHolidaysInput) (*ListHolidaysOutput, error) {
	holidays, err := uc.holidayRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load holidays: %w", err)
	}

	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	groups := make(map[int]*YearGroup)
	for _, h := range holidays {
		summary, err := summarizeOne(ctx, uc.transactionRepo, h, tags)
		if err != nil {
			return nil, err
		}
		year := h.StartDate.Year()
		group, ok := groups[year]
		if !ok {
			group = &YearGroup{Year: year}
			groups[year] = group
		}
		group.Holidays = append(group.Holidays, summary)
	}

	output := &ListHolidaysOutput{Years: make([]*YearGroup, 0, len(groups))}
	for _, group := range groups {
		sort.SliceStable(group.Holidays, func(i, j int) bool {
			return group.Holidays[i].Holiday.StartDate.After(group.Holidays[j].Holiday.StartDate)
		})
		output.Years = append(output.Years, group)
	}
	sort.Slice(output.Years, func(i, j int) bool {
		return output.Years[i].Year > output.Years[j].Year
	})

	return output, nil
}
