package tag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// UpdateTagInput represents the input for tag update.
type UpdateTagInput struct {
	TagID         uuid.UUID
	UserID        uuid.UUID
	Name          *string
	Icon          *string
	ParentID      *uuid.UUID
	ClearParent   bool
	CategoryCode  *string
	ClearCategory bool
}

// UpdateTagOutput represents the output of tag update.
type UpdateTagOutput struct {
	Tag *entity.Tag
}

// UpdateTagUseCase handles tag update logic. Only the owner may update a tag.
type UpdateTagUseCase struct {
	tagRepo      adapter.TagRepository
	categoryRepo adapter.CategoryRepository
}

// NewUpdateTagUseCase creates a new UpdateTagUseCase instance.
func NewUpdateTagUseCase(tagRepo adapter.TagRepository, categoryRepo adapter.CategoryRepository) *UpdateTagUseCase {
	return &UpdateTagUseCase{
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the tag update.
func (uc *UpdateTagUseCase) Execute(ctx context.Context, input UpdateTagInput) (*UpdateTagOutput, error) {
	tag, err := findOwnedTag(ctx, uc.tagRepo, input.TagID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		tag.Name = name
	}

	if input.Icon != nil {
		if icon := strings.TrimSpace(*input.Icon); icon != "" {
			tag.Icon = icon
		}
	}

	parentID := tag.ParentID
	if input.ClearParent {
		parentID = nil
	} else if input.ParentID != nil {
		parentID = input.ParentID
	}

	categoryCode := tag.CategoryCode
	if input.ClearCategory {
		categoryCode = nil
	} else if input.CategoryCode != nil {
		categoryCode = input.CategoryCode
	}

	// A tag moving under a parent drops its own category.
	if parentID != nil && input.CategoryCode == nil {
		categoryCode = nil
	}

	if err := validatePlacement(ctx, uc.tagRepo, uc.categoryRepo, tag.ID, input.UserID, parentID, categoryCode); err != nil {
		return nil, err
	}
	tag.ParentID = parentID
	tag.CategoryCode = categoryCode
	tag.UpdatedAt = time.Now().UTC()

	if err := uc.tagRepo.Update(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	return &UpdateTagOutput{Tag: tag}, nil
}
