// Package holiday contains holiday use cases and the holiday summarizer.
package holiday

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// Spending bucket tag names.
const (
	TravelTagName = "Travel"
	HotelsTagName = "Hotels"
	FoodTagName   = "Eating Out"
)

// Summary holds a holiday's spending totals, rounded to 2 decimal places.
type Summary struct {
	Holiday          *entity.Holiday
	TransactionCount int
	Total            decimal.Decimal
	Travel           decimal.Decimal
	Hotels           decimal.Decimal
	Food             decimal.Decimal
}

// Summarize totals the transactions assigned to the holiday. Untagged
// transactions only count toward Total.
func Summarize(holiday *entity.Holiday, transactions []*entity.Transaction, tags []*entity.Tag) *Summary {
	byID := make(map[uuid.UUID]*entity.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}

	total := decimal.Zero
	travel := decimal.Zero
	hotels := decimal.Zero
	food := decimal.Zero
	count := 0

	for _, t := range transactions {
		if t.HolidayID == nil || *t.HolidayID != holiday.ID {
			continue
		}
		count++
		total = total.Add(t.Amount)

		if t.TagID == nil {
			continue
		}
		tag, ok := byID[*t.TagID]
		if !ok {
			continue
		}

		switch tag.Name {
		case HotelsTagName:
			hotels = hotels.Add(t.Amount)
			continue
		case FoodTagName:
			food = food.Add(t.Amount)
		}

		if tag.ParentID != nil {
			if parent, ok := byID[*tag.ParentID]; ok && parent.Name == TravelTagName {
				travel = travel.Add(t.Amount)
			}
		}
	}

	return &Summary{
		Holiday:          holiday,
		TransactionCount: count,
		Total:            total.Round(2),
		Travel:           travel.Round(2),
		Hotels:           hotels.Round(2),
		Food:             food.Round(2),
	}
}
