package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func topTag(name, category string) *entity.Tag {
	return &entity.Tag{ID: uuid.New(), Name: name, CategoryCode: strPtr(category)}
}

func childTag(name string, parent *entity.Tag) *entity.Tag {
	return &entity.Tag{ID: uuid.New(), Name: name, ParentID: &parent.ID}
}

func tagged(day string, amount string, tag *entity.Tag) *entity.Transaction {
	date, _ := time.Parse(time.DateOnly, day)
	t := &entity.Transaction{
		ID:          uuid.New(),
		BookingDate: date,
		Amount:      decimal.RequireFromString(amount),
	}
	if tag != nil {
		t.TagID = &tag.ID
	}
	return t
}

func expectTotal(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", label, want, got.String())
	}
}

func TestBuildReports(t *testing.T) {
	categories := []*entity.Category{
		{Code: "ESSENTIAL", Name: "Essentials"},
		{Code: "LEISURE", Name: "Leisure"},
	}
	travel := topTag("Travel", "LEISURE")
	hotels := childTag("Hotels", travel)
	flights := childTag("Flights", travel)
	groceries := topTag("Groceries", "ESSENTIAL")
	tags := []*entity.Tag{travel, hotels, flights, groceries}
	none := map[uuid.UUID]struct{}{}

	t.Run("child tag cascades to parent and category", func(t *testing.T) {
		txn := tagged("2024-03-10", "-12.50", hotels)

		set := BuildReports([]*entity.Transaction{txn}, tags, categories, none)
		year := set.Years[2024]
		if year == nil {
			t.Fatal("expected 2024 in report")
		}

		for label, node := range map[string]*Node{"year": year.Root, "march": year.Months[time.March]} {
			expectTotal(t, label+" LEISURE", node.Category("LEISURE").Total, "-12.50")
			expectTotal(t, label+" Travel", node.Tag(travel.ID).Total, "-12.50")
			expectTotal(t, label+" Hotels", node.Tag(hotels.ID).Total, "-12.50")
			expectTotal(t, label+" Flights", node.Tag(flights.ID).Total, "0")
			expectTotal(t, label+" ESSENTIAL", node.Category("ESSENTIAL").Total, "0")
		}
	})

	t.Run("empty tags are present at zero", func(t *testing.T) {
		txns := []*entity.Transaction{
			tagged("2024-01-02", "2.00", flights),
			tagged("2024-01-03", "3.00", flights),
		}

		set := BuildReports(txns, tags, categories, none)
		node := set.Years[2024].Months[time.January]

		travelBucket := node.Tag(travel.ID)
		if len(travelBucket.Children) != 2 {
			t.Fatalf("expected 2 child buckets, got %d", len(travelBucket.Children))
		}
		expectTotal(t, "Flights", node.Tag(flights.ID).Total, "5.00")
		expectTotal(t, "Hotels", node.Tag(hotels.ID).Total, "0.00")
		expectTotal(t, "Travel", travelBucket.Total, "5.00")

		if node.Tag(groceries.ID) == nil {
			t.Error("expected Groceries bucket in skeleton")
		}
	})

	t.Run("top-level tag adds to tag and category", func(t *testing.T) {
		set := BuildReports([]*entity.Transaction{tagged("2024-05-01", "-40.00", groceries)}, tags, categories, none)
		node := set.Years[2024].Root

		expectTotal(t, "Groceries", node.Tag(groceries.ID).Total, "-40.00")
		expectTotal(t, "ESSENTIAL", node.Category("ESSENTIAL").Total, "-40.00")
		expectTotal(t, "LEISURE", node.Category("LEISURE").Total, "0")
	})

	t.Run("untagged counts unlinked non-holiday transactions", func(t *testing.T) {
		plain := tagged("2024-01-05", "-1.00", nil)
		linkedTxn := tagged("2024-01-05", "-50.00", nil)
		holidayTxn := tagged("2024-01-05", "-9.00", nil)
		holidayID := uuid.New()
		holidayTxn.HolidayID = &holidayID
		linked := map[uuid.UUID]struct{}{linkedTxn.ID: {}}

		set := BuildReports([]*entity.Transaction{plain, linkedTxn, holidayTxn}, tags, categories, linked)
		year := set.Years[2024]
		if year.Root.Untagged != 1 {
			t.Errorf("expected 1 untagged in year, got %d", year.Root.Untagged)
		}
		if year.Months[time.January].Untagged != 1 {
			t.Errorf("expected 1 untagged in January, got %d", year.Months[time.January].Untagged)
		}
	})

	t.Run("holiday transactions are left out", func(t *testing.T) {
		txn := tagged("2024-08-01", "-100.00", hotels)
		holidayID := uuid.New()
		txn.HolidayID = &holidayID

		set := BuildReports([]*entity.Transaction{txn}, tags, categories, none)
		expectTotal(t, "LEISURE", set.Years[2024].Root.Category("LEISURE").Total, "0")
	})

	t.Run("broken tag data is skipped", func(t *testing.T) {
		orphanParent := uuid.New()
		orphan := &entity.Tag{ID: uuid.New(), Name: "Orphan", ParentID: &orphanParent}
		uncategorised := &entity.Tag{ID: uuid.New(), Name: "Loose"}
		unknown := topTag("Mystery", "NOPE")
		broken := append([]*entity.Tag{orphan, uncategorised, unknown}, tags...)

		txns := []*entity.Transaction{
			tagged("2024-02-01", "-1.00", orphan),
			tagged("2024-02-01", "-2.00", uncategorised),
			tagged("2024-02-01", "-3.00", unknown),
			tagged("2024-02-01", "-4.00", &entity.Tag{ID: uuid.New()}),
			tagged("2024-02-01", "-5.00", groceries),
		}

		set := BuildReports(txns, broken, categories, none)
		root := set.Years[2024].Root
		expectTotal(t, "ESSENTIAL", root.Category("ESSENTIAL").Total, "-5.00")
		expectTotal(t, "LEISURE", root.Category("LEISURE").Total, "0")
		if root.Untagged != 0 {
			t.Errorf("expected skipped transactions not counted as untagged, got %d", root.Untagged)
		}
	})

	t.Run("splits by year and month", func(t *testing.T) {
		txns := []*entity.Transaction{
			tagged("2023-12-31", "-1.00", groceries),
			tagged("2024-01-01", "-2.00", groceries),
			tagged("2024-02-01", "-3.00", groceries),
		}

		set := BuildReports(txns, tags, categories, none)
		if got := set.SortedYears(); len(got) != 2 || got[0] != 2023 || got[1] != 2024 {
			t.Fatalf("expected years [2023 2024], got %v", got)
		}
		expectTotal(t, "2024", set.Years[2024].Root.Category("ESSENTIAL").Total, "-5.00")
		expectTotal(t, "2024-02", set.Years[2024].Months[time.February].Category("ESSENTIAL").Total, "-3.00")

		months := set.Years[2024].SortedMonths()
		if len(months) != 2 || months[0] != time.January {
			t.Errorf("expected [January February], got %v", months)
		}
	})

	t.Run("accumulates without float drift", func(t *testing.T) {
		var txns []*entity.Transaction
		for i := 0; i < 1000; i++ {
			txns = append(txns, tagged("2024-04-01", "0.10", groceries))
		}

		set := BuildReports(txns, tags, categories, none)
		expectTotal(t, "Groceries", set.Years[2024].Root.Tag(groceries.ID).Total, "100.00")
	})
}
