package report

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

type stubTransactions struct {
	adapter.TransactionRepository
	transactions []*entity.Transaction
	lastFilter   adapter.TransactionFilter
}

func (s *stubTransactions) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	s.lastFilter = filter
	return s.transactions, nil
}

type stubTags struct {
	adapter.TagRepository
	tags []*entity.Tag
}

func (s *stubTags) FindVisibleByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error) {
	return s.tags, nil
}

type stubCategories struct {
	adapter.CategoryRepository
	categories []*entity.Category
}

func (s *stubCategories) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return s.categories, nil
}

type stubLinks struct {
	adapter.LinkRepository
	linked map[uuid.UUID]struct{}
}

func (s *stubLinks) LinkedTransactionIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return s.linked, nil
}

func TestGetReportsUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	groceries := topTag("Groceries", "ESSENTIAL")
	categories := []*entity.Category{{Code: "ESSENTIAL", Name: "Essentials"}}

	t.Run("builds reports from repositories", func(t *testing.T) {
		linkedTxn := tagged("2024-01-05", "-50.00", nil)
		txns := &stubTransactions{transactions: []*entity.Transaction{
			tagged("2024-01-05", "-10.00", groceries),
			linkedTxn,
		}}
		uc := NewGetReportsUseCase(
			txns,
			&stubTags{tags: []*entity.Tag{groceries}},
			&stubCategories{categories: categories},
			&stubLinks{linked: map[uuid.UUID]struct{}{linkedTxn.ID: {}}},
			nil,
		)

		year := 2024
		output, err := uc.Execute(ctx, GetReportsInput{UserID: uuid.New(), Year: &year})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		root := output.Reports.Years[2024].Root
		expectTotal(t, "ESSENTIAL", root.Category("ESSENTIAL").Total, "-10.00")
		if root.Untagged != 0 {
			t.Errorf("expected linked transaction excluded from untagged, got %d", root.Untagged)
		}
		if txns.lastFilter.StartDate == nil || txns.lastFilter.StartDate.Year() != 2024 {
			t.Error("expected year filter to be applied")
		}
	})

	t.Run("rejects invalid year", func(t *testing.T) {
		uc := NewGetReportsUseCase(&stubTransactions{}, &stubTags{}, &stubCategories{}, &stubLinks{}, nil)
		year := 24

		_, err := uc.Execute(ctx, GetReportsInput{UserID: uuid.New(), Year: &year})
		var reportErr *domainerror.ReportError
		if !errors.As(err, &reportErr) || reportErr.Code != domainerror.ErrCodeInvalidReportYear {
			t.Errorf("expected invalid year error, got %v", err)
		}
	})
}
