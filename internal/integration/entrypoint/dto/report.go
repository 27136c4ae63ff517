package dto

import (
	"strconv"

	"github.com/elliotJHarding/transactions/internal/application/usecase/report"
)

// ReportTagResponse is a tag bucket keyed by name in its parent.
type ReportTagResponse struct {
	ID         string                       `json:"id"`
	Total      string                       `json:"total"`
	Categories map[string]ReportTagResponse `json:"categories,omitempty"`
}

// ReportCategoryResponse is a category bucket keyed by code in its node.
type ReportCategoryResponse struct {
	Name       string                       `json:"name"`
	Total      string                       `json:"total"`
	Categories map[string]ReportTagResponse `json:"categories"`
}

// ReportNodeResponse is one year or month of a report.
type ReportNodeResponse struct {
	Untagged   int                               `json:"untagged"`
	Categories map[string]ReportCategoryResponse `json:"categories"`
}

// YearReportResponse is the year root plus its months keyed by month name.
type YearReportResponse struct {
	ReportNodeResponse
	Months map[string]ReportNodeResponse `json:"months"`
}

// ToReportsResponse converts a report set to its DTO keyed by year.
// Totals are rounded to 2 decimal places here and nowhere else.
func ToReportsResponse(set *report.ReportSet) map[string]YearReportResponse {
	out := make(map[string]YearReportResponse, len(set.Years))
	for _, year := range set.SortedYears() {
		yr := set.Years[year]
		resp := YearReportResponse{
			ReportNodeResponse: toReportNode(yr.Root),
			Months:             make(map[string]ReportNodeResponse, len(yr.Months)),
		}
		for _, month := range yr.SortedMonths() {
			resp.Months[month.String()] = toReportNode(yr.Months[month])
		}
		out[strconv.Itoa(year)] = resp
	}
	return out
}

func toReportNode(n *report.Node) ReportNodeResponse {
	resp := ReportNodeResponse{
		Untagged:   n.Untagged,
		Categories: make(map[string]ReportCategoryResponse, len(n.Categories)),
	}
	for _, c := range n.Categories {
		resp.Categories[c.Code] = ReportCategoryResponse{
			Name:       c.Name,
			Total:      c.Total.StringFixed(2),
			Categories: toReportTags(c.Tags),
		}
	}
	return resp
}

// toReportTags keys buckets by tag name. Two tags sharing a name under the
// same parent are told apart by their id.
func toReportTags(buckets []*report.TagBucket) map[string]ReportTagResponse {
	out := make(map[string]ReportTagResponse, len(buckets))
	for _, b := range buckets {
		resp := ReportTagResponse{
			ID:    b.TagID.String(),
			Total: b.Total.StringFixed(2),
		}
		if len(b.Children) > 0 {
			resp.Categories = toReportTags(b.Children)
		}

		key := b.Name
		if _, taken := out[key]; taken {
			key = b.Name + " (" + b.TagID.String() + ")"
		}
		out[key] = resp
	}
	return out
}
