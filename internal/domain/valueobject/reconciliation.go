package valueobject

import "github.com/elliotJHarding/transactions/internal/domain/entity"

// Confidence represents how strongly a suggested counterpart resembles a transaction.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceForScore buckets a similarity score in [0, 1].
func ConfidenceForScore(score float64) Confidence {
	switch {
	case score >= 0.75:
		return ConfidenceHigh
	case score >= 0.4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ResolveResult summarises one Link Resolver run.
type ResolveResult struct {
	Created    []*entity.TransferLink
	Ambiguous  int // Transactions with more than one candidate
	Unmatched  int // Transactions with no candidate
	Duplicates int // Pairs rejected by the at-most-one-link constraint
}

// LinkCandidate is one possible counterpart leg for an unlinked transaction.
type LinkCandidate struct {
	Transaction *entity.Transaction
	Score       float64
	Confidence  Confidence
}

// LinkSuggestion lists ranked counterparts for a transaction the resolver left
// ambiguous. Suggestions are advisory and never create links.
type LinkSuggestion struct {
	Transaction *entity.Transaction
	Candidates  []LinkCandidate
}
