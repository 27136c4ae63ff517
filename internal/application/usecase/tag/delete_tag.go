package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// DeleteTagInput represents the input for tag deletion.
type DeleteTagInput struct {
	TagID  uuid.UUID
	UserID uuid.UUID
}

// DeleteTagUseCase handles tag deletion. Transactions lose the tag; rules
// pointing at it become inert.
type DeleteTagUseCase struct {
	tagRepo adapter.TagRepository
}

// NewDeleteTagUseCase creates a new DeleteTagUseCase instance.
func NewDeleteTagUseCase(tagRepo adapter.TagRepository) *DeleteTagUseCase {
	return &DeleteTagUseCase{tagRepo: tagRepo}
}

// Execute performs the tag deletion.
func (uc *DeleteTagUseCase) Execute(ctx context.Context, input DeleteTagInput) error {
	tag, err := findOwnedTag(ctx, uc.tagRepo, input.TagID, input.UserID)
	if err != nil {
		return err
	}

	children, err := uc.tagRepo.CountChildren(ctx, tag.ID)
	if err != nil {
		return fmt.Errorf("failed to count child tags: %w", err)
	}
	if children > 0 {
		return domainerror.NewTagError(
			domainerror.ErrCodeTagHasChildren,
			"delete or move the child tags first",
			domainerror.ErrTagHasChildren,
		)
	}

	if err := uc.tagRepo.Delete(ctx, tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}
