// Package link contains transfer link use cases.
package link

import (
	"sort"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
	"github.com/elliotJHarding/transactions/internal/domain/valueobject"
)

// candidateIndex buckets a user's unlinked transactions by booking day and
// absolute amount so candidate lookup does not scan the whole history.
type candidateIndex struct {
	config  valueobject.MatchingConfig
	buckets map[string][]*entity.Transaction
}

func newCandidateIndex(transactions []*entity.Transaction, config valueobject.MatchingConfig) *candidateIndex {
	idx := &candidateIndex{
		config:  config,
		buckets: make(map[string][]*entity.Transaction, len(transactions)),
	}
	for _, t := range transactions {
		if t.Amount.Round(config.AmountPlaces).IsZero() {
			continue
		}
		key := idx.key(t)
		idx.buckets[key] = append(idx.buckets[key], t)
	}
	return idx
}

func (idx *candidateIndex) key(t *entity.Transaction) string {
	return t.BookingDay() + "|" + idx.config.AmountKey(t.Amount)
}

// candidates returns the transactions that could be the other leg of t: same
// booking day, different account, amounts cancelling out. Transactions in
// consumed are excluded.
func (idx *candidateIndex) candidates(t *entity.Transaction, consumed map[uuid.UUID]struct{}) []*entity.Transaction {
	var out []*entity.Transaction
	for _, other := range idx.buckets[idx.key(t)] {
		if other.ID == t.ID || other.AccountID == t.AccountID {
			continue
		}
		if _, done := consumed[other.ID]; done {
			continue
		}
		if !idx.config.AmountsCancel(t.Amount, other.Amount) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// Pair is two transactions the resolver decided form one transfer.
type Pair struct {
	A *entity.Transaction
	B *entity.Transaction
}

// MatchStats counts the transactions the matcher could not pair.
type MatchStats struct {
	Ambiguous int
	Unmatched int
}

// FindPairs pairs a and b when b is a's only candidate and a is b's only
// candidate. Anything else is left for manual resolution. The result does not
// depend on the order of transactions.
func FindPairs(transactions []*entity.Transaction, config valueobject.MatchingConfig) ([]Pair, MatchStats) {
	ordered := make([]*entity.Transaction, len(transactions))
	copy(ordered, transactions)
	sortForMatching(ordered)

	idx := newCandidateIndex(ordered, config)
	consumed := make(map[uuid.UUID]struct{})

	var pairs []Pair
	var stats MatchStats

	for _, a := range ordered {
		if _, done := consumed[a.ID]; done {
			continue
		}

		cands := idx.candidates(a, consumed)
		switch len(cands) {
		case 0:
			stats.Unmatched++
			continue
		case 1:
		default:
			stats.Ambiguous++
			continue
		}

		b := cands[0]
		if len(idx.candidates(b, consumed)) != 1 {
			stats.Ambiguous++
			continue
		}

		consumed[a.ID] = struct{}{}
		consumed[b.ID] = struct{}{}
		pairs = append(pairs, Pair{A: a, B: b})
	}

	return pairs, stats
}

func sortForMatching(transactions []*entity.Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		if !transactions[i].BookingDate.Equal(transactions[j].BookingDate) {
			return transactions[i].BookingDate.Before(transactions[j].BookingDate)
		}
		return transactions[i].ID.String() < transactions[j].ID.String()
	})
}
