package dto

import (
	"time"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
	"github.com/elliotJHarding/transactions/internal/domain/valueobject"
)

// LinkResponse represents a transfer link with both legs.
type LinkResponse struct {
	ID        string              `json:"id"`
	From      TransactionResponse `json:"from"`
	To        TransactionResponse `json:"to"`
	CreatedAt time.Time           `json:"created_at"`
}

// ResolveLinksResponse summarises a resolver run.
type ResolveLinksResponse struct {
	Created    int `json:"created"`
	Ambiguous  int `json:"ambiguous"`
	Unmatched  int `json:"unmatched"`
	Duplicates int `json:"duplicates"`
}

// LinkCandidateResponse represents one ranked counterpart.
type LinkCandidateResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Score       float64             `json:"score"`
	Confidence  string              `json:"confidence"`
}

// LinkSuggestionResponse represents ranked counterparts for an ambiguous transaction.
type LinkSuggestionResponse struct {
	Transaction TransactionResponse     `json:"transaction"`
	Candidates  []LinkCandidateResponse `json:"candidates"`
}

// ToLinkResponses converts links with legs to their DTOs.
func ToLinkResponses(links []*entity.TransferLinkWithLegs) []LinkResponse {
	out := make([]LinkResponse, 0, len(links))
	for _, l := range links {
		if l.From == nil || l.To == nil {
			continue
		}
		linked := true
		from := ToTransactionResponse(l.From)
		from.Linked = &linked
		to := ToTransactionResponse(l.To)
		to.Linked = &linked
		out = append(out, LinkResponse{
			ID:        l.Link.ID.String(),
			From:      from,
			To:        to,
			CreatedAt: l.Link.CreatedAt,
		})
	}
	return out
}

// ToResolveLinksResponse converts a resolver result to its DTO.
func ToResolveLinksResponse(r valueobject.ResolveResult) ResolveLinksResponse {
	return ResolveLinksResponse{
		Created:    len(r.Created),
		Ambiguous:  r.Ambiguous,
		Unmatched:  r.Unmatched,
		Duplicates: r.Duplicates,
	}
}

// ToLinkSuggestionResponses converts suggestions to their DTOs.
func ToLinkSuggestionResponses(suggestions []valueobject.LinkSuggestion) []LinkSuggestionResponse {
	out := make([]LinkSuggestionResponse, len(suggestions))
	for i, s := range suggestions {
		candidates := make([]LinkCandidateResponse, len(s.Candidates))
		for j, c := range s.Candidates {
			candidates[j] = LinkCandidateResponse{
				Transaction: ToTransactionResponse(c.Transaction),
				Score:       c.Score,
				Confidence:  string(c.Confidence),
			}
		}
		out[i] = LinkSuggestionResponse{
			Transaction: ToTransactionResponse(s.Transaction),
			Candidates:  candidates,
		}
	}
	return out
}
