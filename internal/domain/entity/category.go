// Package entity defines the core business entities for the domain layer.
package entity

// Category is a fixed reporting bucket that groups top-level tags.
// Categories are reference data seeded at start-up.
type Category struct {
	Code string
	Name string
}

// DefaultCategories returns the seed set of reporting categories.
func DefaultCategories() []*Category {
	return []*Category{
		{Code: "INCOME", Name: "Income"},
		{Code: "ESSENTIAL", Name: "Essentials"},
		{Code: "LEISURE", Name: "Leisure"},
		{Code: "SAVINGS", Name: "Savings"},
		{Code: "OTHER", Name: "Other"},
	}
}
