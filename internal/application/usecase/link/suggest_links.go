package link

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	"github.com/elliotJHarding/transactions/internal/domain/valueobject"
)

// SuggestLinksInput represents the input for listing link suggestions.
type SuggestLinksInput struct {
	UserID uuid.UUID
}

// SuggestLinksOutput represents the suggestions for ambiguous transfers.
type SuggestLinksOutput struct {
	Suggestions []valueobject.LinkSuggestion
}

// SuggestLinksUseCase ranks possible counterparts for outgoing transactions the
// resolver could not pair on its own. It never creates links.
type SuggestLinksUseCase struct {
	transactionRepo adapter.TransactionRepository
	config          valueobject.MatchingConfig
}

// NewSuggestLinksUseCase creates a new SuggestLinksUseCase instance.
func NewSuggestLinksUseCase(transactionRepo adapter.TransactionRepository) *SuggestLinksUseCase {
	return &SuggestLinksUseCase{
		transactionRepo: transactionRepo,
		config:          valueobject.DefaultMatchingConfig(),
	}
}

// Execute builds the suggestions.
func (uc *SuggestLinksUseCase) Execute(ctx context.Context, input SuggestLinksInput) (*SuggestLinksOutput, error) {
	unlinked, err := uc.transactionRepo.FindUnlinkedByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlinked transactions: %w", err)
	}

	ordered := make([]*entity.Transaction, len(unlinked))
	copy(ordered, unlinked)
	sortForMatching(ordered)

	idx := newCandidateIndex(ordered, uc.config)
	none := map[uuid.UUID]struct{}{}

	suggestions := make([]valueobject.LinkSuggestion, 0)
	for _, t := range ordered {
		if !t.IsOutgoing() {
			continue
		}

		cands := idx.candidates(t, none)
		if len(cands) == 0 {
			continue
		}
		if len(cands) == 1 && len(idx.candidates(cands[0], none)) == 1 {
			// Resolvable without help.
			continue
		}

		ranked := make([]valueobject.LinkCandidate, 0, len(cands))
		for _, c := range cands {
			score := similarity(t, c)
			if score < uc.config.MinSuggestionScore {
				continue
			}
			ranked = append(ranked, valueobject.LinkCandidate{
				Transaction: c,
				Score:       score,
				Confidence:  valueobject.ConfidenceForScore(score),
			})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Score > ranked[j].Score
		})
		if uc.config.MaxSuggestions > 0 && len(ranked) > uc.config.MaxSuggestions {
			ranked = ranked[:uc.config.MaxSuggestions]
		}
		if len(ranked) == 0 {
			continue
		}

		suggestions = append(suggestions, valueobject.LinkSuggestion{
			Transaction: t,
			Candidates:  ranked,
		})
	}

	return &SuggestLinksOutput{Suggestions: suggestions}, nil
}

// similarity scores two legs by the edit distance of their references, in [0, 1].
func similarity(a, b *entity.Transaction) float64 {
	left := strings.ToUpper(strings.TrimSpace(a.Reference))
	right := strings.ToUpper(strings.TrimSpace(b.Reference))

	maxLen := len(left)
	if len(right) > maxLen {
		maxLen = len(right)
	}
	if maxLen == 0 {
		return 0
	}
	return 1 - float64(levenshtein.ComputeDistance(left, right))/float64(maxLen)
}
