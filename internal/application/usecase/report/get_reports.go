package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/application/usecase/tagrule"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// GetReportsInput represents the input for building reports.
type GetReportsInput struct {
	UserID uuid.UUID
	Year   *int // Optional, restricts the report to one year
	// Backfill runs the tag rules before aggregating.
	Backfill bool
}

// GetReportsOutput represents the output of building reports.
type GetReportsOutput struct {
	Reports *ReportSet
}

// GetReportsUseCase builds a user's category and tag reports.
type GetReportsUseCase struct {
	transactionRepo adapter.TransactionRepository
	tagRepo         adapter.TagRepository
	categoryRepo    adapter.CategoryRepository
	linkRepo        adapter.LinkRepository
	applyRules      *tagrule.ApplyRulesUseCase
}

// NewGetReportsUseCase creates a new GetReportsUseCase instance.
func NewGetReportsUseCase(
	transactionRepo adapter.TransactionRepository,
	tagRepo adapter.TagRepository,
	categoryRepo adapter.CategoryRepository,
	linkRepo adapter.LinkRepository,
	applyRules *tagrule.ApplyRulesUseCase,
) *GetReportsUseCase {
	return &GetReportsUseCase{
		transactionRepo: transactionRepo,
		tagRepo:         tagRepo,
		categoryRepo:    categoryRepo,
		linkRepo:        linkRepo,
		applyRules:      applyRules,
	}
}

// Execute builds the reports.
func (uc *GetReportsUseCase) Execute(ctx context.Context, input GetReportsInput) (*GetReportsOutput, error) {
	filter := adapter.TransactionFilter{UserID: input.UserID}
	if input.Year != nil {
		if *input.Year < 1900 || *input.Year > 9999 {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeInvalidReportYear,
				"year must be a four-digit year",
				domainerror.ErrInvalidReportYear,
			)
		}
		start := time.Date(*input.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(*input.Year, time.December, 31, 0, 0, 0, 0, time.UTC)
		filter.StartDate = &start
		filter.EndDate = &end
	}

	if input.Backfill && uc.applyRules != nil {
		if _, err := uc.applyRules.Execute(ctx, tagrule.ApplyRulesInput{UserID: input.UserID}); err != nil {
			// A stale tag set still yields a consistent report.
			slog.Error("Failed to apply rules before report",
				"user_id", input.UserID,
				"error", err,
			)
		}
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	linked, err := uc.linkRepo.LinkedTransactionIDs(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked transactions: %w", err)
	}

	return &GetReportsOutput{
		Reports: BuildReports(transactions, tags, categories, linked),
	}, nil
}
