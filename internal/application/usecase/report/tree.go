// Package report contains the report aggregation use cases.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// TagBucket is the running total of one tag. Children is empty for child tags.
type TagBucket struct {
	TagID    uuid.UUID
	Name     string
	Total    decimal.Decimal
	Children []*TagBucket
}

// CategoryBucket is the running total of one category and its top-level tags.
type CategoryBucket struct {
	Code  string
	Name  string
	Total decimal.Decimal
	Tags  []*TagBucket
}

// Node is one period of the report: a whole year or a single month.
type Node struct {
	Untagged   int
	Categories []*CategoryBucket

	categoryByCode map[string]*CategoryBucket
	tagByID        map[uuid.UUID]*TagBucket
}

// Category returns the bucket for a category code, or nil.
func (n *Node) Category(code string) *CategoryBucket {
	return n.categoryByCode[code]
}

// Tag returns the bucket for a tag id, or nil.
func (n *Node) Tag(id uuid.UUID) *TagBucket {
	return n.tagByID[id]
}

// YearReport holds the year root and its months.
type YearReport struct {
	Year   int
	Root   *Node
	Months map[time.Month]*Node
}

// SortedMonths returns the months present in the report in calendar order.
func (y *YearReport) SortedMonths() []time.Month {
	months := make([]time.Month, 0, len(y.Months))
	for m := range y.Months {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })
	return months
}

// ReportSet is the full report keyed by year.
type ReportSet struct {
	Years map[int]*YearReport
}

// SortedYears returns the years present in the report in ascending order.
func (r *ReportSet) SortedYears() []int {
	years := make([]int, 0, len(r.Years))
	for y := range r.Years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// skeleton is the category, tag and child-tag layout every node starts from.
type skeleton struct {
	categories []*entity.Category
	topLevel   map[string][]*entity.Tag    // by category code
	children   map[uuid.UUID][]*entity.Tag // by parent id
	tags       map[uuid.UUID]*entity.Tag
	known      map[string]struct{}
}

func newSkeleton(tags []*entity.Tag, categories []*entity.Category) *skeleton {
	s := &skeleton{
		categories: make([]*entity.Category, len(categories)),
		topLevel:   make(map[string][]*entity.Tag),
		children:   make(map[uuid.UUID][]*entity.Tag),
		tags:       make(map[uuid.UUID]*entity.Tag, len(tags)),
		known:      make(map[string]struct{}, len(categories)),
	}
	copy(s.categories, categories)
	sort.SliceStable(s.categories, func(i, j int) bool {
		return s.categories[i].Code < s.categories[j].Code
	})
	for _, c := range categories {
		s.known[c.Code] = struct{}{}
	}

	ordered := make([]*entity.Tag, len(tags))
	copy(ordered, tags)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Name != ordered[j].Name {
			return ordered[i].Name < ordered[j].Name
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})

	for _, tag := range ordered {
		s.tags[tag.ID] = tag
	}
	for _, tag := range ordered {
		if tag.IsChild() {
			s.children[*tag.ParentID] = append(s.children[*tag.ParentID], tag)
			continue
		}
		if tag.CategoryCode == nil {
			continue
		}
		if _, ok := s.known[*tag.CategoryCode]; !ok {
			continue
		}
		s.topLevel[*tag.CategoryCode] = append(s.topLevel[*tag.CategoryCode], tag)
	}
	return s
}

// newNode builds a node with every category and tag bucket at zero.
func (s *skeleton) newNode() *Node {
	n := &Node{
		Categories:     make([]*CategoryBucket, 0, len(s.categories)),
		categoryByCode: make(map[string]*CategoryBucket, len(s.categories)),
		tagByID:        make(map[uuid.UUID]*TagBucket, len(s.tags)),
	}
	for _, c := range s.categories {
		cb := &CategoryBucket{Code: c.Code, Name: c.Name, Total: decimal.Zero}
		for _, top := range s.topLevel[c.Code] {
			tb := &TagBucket{TagID: top.ID, Name: top.Name, Total: decimal.Zero}
			for _, child := range s.children[top.ID] {
				ch := &TagBucket{TagID: child.ID, Name: child.Name, Total: decimal.Zero}
				tb.Children = append(tb.Children, ch)
				n.tagByID[child.ID] = ch
			}
			cb.Tags = append(cb.Tags, tb)
			n.tagByID[top.ID] = tb
		}
		n.Categories = append(n.Categories, cb)
		n.categoryByCode[c.Code] = cb
	}
	return n
}
