package report

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// attribution is the set of buckets one transaction's amount goes into.
type attribution struct {
	categoryCode string
	tagIDs       []uuid.UUID
}

// BuildReports aggregates transactions into per-year and per-month trees.
// linked holds the ids of transactions that are a leg of a transfer link.
func BuildReports(
	transactions []*entity.Transaction,
	tags []*entity.Tag,
	categories []*entity.Category,
	linked map[uuid.UUID]struct{},
) *ReportSet {
	s := newSkeleton(tags, categories)
	set := &ReportSet{Years: make(map[int]*YearReport)}

	for _, t := range transactions {
		year := set.year(s, t.BookingDate.Year())
		month := year.month(s, t.BookingDate.Month())

		if t.OnHoliday() {
			continue
		}
		if !t.IsTagged() {
			if _, isLinked := linked[t.ID]; !isLinked {
				year.Root.Untagged++
				month.Untagged++
			}
			continue
		}

		target, ok := s.attribute(t)
		if !ok {
			continue
		}
		year.Root.add(target, t.Amount)
		month.add(target, t.Amount)
	}

	return set
}

func (r *ReportSet) year(s *skeleton, y int) *YearReport {
	yr, ok := r.Years[y]
	if !ok {
		yr = &YearReport{
			Year:   y,
			Root:   s.newNode(),
			Months: make(map[time.Month]*Node),
		}
		r.Years[y] = yr
	}
	return yr
}

func (y *YearReport) month(s *skeleton, m time.Month) *Node {
	n, ok := y.Months[m]
	if !ok {
		n = s.newNode()
		y.Months[m] = n
	}
	return n
}

// attribute resolves where a tagged transaction's amount belongs. Broken tag
// data is logged and the transaction left out rather than guessed at.
func (s *skeleton) attribute(t *entity.Transaction) (attribution, bool) {
	tag, ok := s.tags[*t.TagID]
	if !ok {
		slog.Warn("Report skipped transaction with unknown tag",
			"transaction_id", t.ID,
			"tag_id", *t.TagID,
		)
		return attribution{}, false
	}

	if !tag.IsChild() {
		if tag.CategoryCode == nil {
			slog.Warn("Report skipped transaction whose tag has no category",
				"transaction_id", t.ID,
				"tag_id", tag.ID,
			)
			return attribution{}, false
		}
		if _, known := s.known[*tag.CategoryCode]; !known {
			slog.Warn("Report skipped transaction with unknown category",
				"transaction_id", t.ID,
				"tag_id", tag.ID,
				"category", *tag.CategoryCode,
			)
			return attribution{}, false
		}
		return attribution{categoryCode: *tag.CategoryCode, tagIDs: []uuid.UUID{tag.ID}}, true
	}

	parent, ok := s.tags[*tag.ParentID]
	if !ok || parent.IsChild() {
		slog.Warn("Report skipped transaction whose tag parent is missing or nested",
			"transaction_id", t.ID,
			"tag_id", tag.ID,
			"parent_id", *tag.ParentID,
		)
		return attribution{}, false
	}
	if parent.CategoryCode == nil {
		slog.Warn("Report skipped transaction whose parent tag has no category",
			"transaction_id", t.ID,
			"tag_id", tag.ID,
			"parent_id", parent.ID,
		)
		return attribution{}, false
	}
	if _, known := s.known[*parent.CategoryCode]; !known {
		slog.Warn("Report skipped transaction with unknown category",
			"transaction_id", t.ID,
			"tag_id", tag.ID,
			"category", *parent.CategoryCode,
		)
		return attribution{}, false
	}

	return attribution{categoryCode: *parent.CategoryCode, tagIDs: []uuid.UUID{tag.ID, parent.ID}}, true
}

func (n *Node) add(target attribution, amount decimal.Decimal) {
	cb := n.categoryByCode[target.categoryCode]
	cb.Total = cb.Total.Add(amount)
	for _, id := range target.tagIDs {
		tb := n.tagByID[id]
		tb.Total = tb.Total.Add(amount)
	}
}
