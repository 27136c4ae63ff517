package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/usecase/report"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

func TestToReportsResponse(t *testing.T) {
	code := "EXP"
	groceries := &entity.Tag{ID: uuid.New(), Name: "Groceries", CategoryCode: &code}
	supermarket := &entity.Tag{ID: uuid.New(), Name: "Supermarket", ParentID: &groceries.ID}
	account := uuid.New()

	transactions := []*entity.Transaction{
		{ID: uuid.New(), AccountID: account, BookingDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("-10.006"), TagID: &supermarket.ID},
		{ID: uuid.New(), AccountID: account, BookingDate: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("-2.50"), TagID: &groceries.ID},
		{ID: uuid.New(), AccountID: account, BookingDate: time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("-1")},
	}
	categories := []*entity.Category{{Code: code, Name: "Expenses"}}

	set := report.BuildReports(transactions, []*entity.Tag{groceries, supermarket}, categories, nil)
	got := ToReportsResponse(set)

	year, ok := got["2024"]
	if !ok {
		t.Fatalf("ToReportsResponse() keys = %v, want 2024", got)
	}
	if year.Untagged != 1 {
		t.Errorf("Untagged = %d, want 1", year.Untagged)
	}

	exp := year.Categories[code]
	if exp.Total != "-12.51" {
		t.Errorf("category total = %s, want -12.51", exp.Total)
	}
	groceriesResp := exp.Categories["Groceries"]
	if groceriesResp.Total != "-12.51" || groceriesResp.Categories["Supermarket"].Total != "-10.01" {
		t.Errorf("groceries = %+v", groceriesResp)
	}

	january, ok := year.Months["January"]
	if !ok {
		t.Fatalf("months = %v, want January", year.Months)
	}
	if january.Categories[code].Total != "-10.01" {
		t.Errorf("January total = %s, want -10.01", january.Categories[code].Total)
	}
	if year.Months["February"].Untagged != 1 {
		t.Errorf("February untagged = %d, want 1", year.Months["February"].Untagged)
	}
}
