// Package valueobject contains domain value objects for the transactions service.
package valueobject

import "github.com/shopspring/decimal"

// MatchingConfig contains the configuration for transfer-leg matching.
type MatchingConfig struct {
	// Minor-unit precision at which two legs must cancel out.
	AmountPlaces int32 // 2 = pence/cents

	// Suggestions scoring below this similarity are dropped.
	MinSuggestionScore float64 // 0.0 - 1.0

	// Upper bound on suggestions returned per unlinked transaction.
	MaxSuggestions int
}

// DefaultMatchingConfig returns the default matching configuration.
func DefaultMatchingConfig() MatchingConfig {
	return MatchingConfig{
		AmountPlaces:       2,
		MinSuggestionScore: 0.0,
		MaxSuggestions:     3,
	}
}

// AmountsCancel reports whether a and b are non-zero additive inverses at the
// configured precision.
func (c MatchingConfig) AmountsCancel(a, b decimal.Decimal) bool {
	a = a.Round(c.AmountPlaces)
	b = b.Round(c.AmountPlaces)
	if a.IsZero() || b.IsZero() {
		return false
	}
	if a.Sign() == b.Sign() {
		return false
	}
	return a.Add(b).IsZero()
}

// AmountKey returns the absolute amount at the configured precision, used to
// bucket candidate legs.
func (c MatchingConfig) AmountKey(amount decimal.Decimal) string {
	return amount.Round(c.AmountPlaces).Abs().StringFixed(c.AmountPlaces)
}
