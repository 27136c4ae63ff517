package link

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// ListLinksInput represents the input for listing links.
type ListLinksInput struct {
	UserID uuid.UUID
}

// ListLinksOutput represents the output of listing links.
type ListLinksOutput struct {
	Links []*entity.TransferLinkWithLegs
}

// ListLinksUseCase handles listing a user's transfer links.
type ListLinksUseCase struct {
	linkRepo adapter.LinkRepository
}

// NewListLinksUseCase creates a new ListLinksUseCase instance.
func NewListLinksUseCase(linkRepo adapter.LinkRepository) *ListLinksUseCase {
	return &ListLinksUseCase{linkRepo: linkRepo}
}

// Execute lists the links.
func (uc *ListLinksUseCase) Execute(ctx context.Context, input ListLinksInput) (*ListLinksOutput, error) {
	links, err := uc.linkRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ListLinksOutput{Links: links}, nil
}
