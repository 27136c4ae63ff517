package tag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

const (
	// MaxNameLength is the maximum allowed length for tag names.
	MaxNameLength = 50

	// DefaultIcon is the icon used when none is given.
	DefaultIcon = "tag"
)

// CreateTagInput represents the input for tag creation.
type CreateTagInput struct {
	UserID       uuid.UUID
	Name         string
	Icon         string
	ParentID     *uuid.UUID
	CategoryCode *string
}

// CreateTagOutput represents the output of tag creation.
type CreateTagOutput struct {
	Tag *entity.Tag
}

// CreateTagUseCase handles tag creation logic.
type CreateTagUseCase struct {
	tagRepo      adapter.TagRepository
	categoryRepo adapter.CategoryRepository
}

// NewCreateTagUseCase creates a new CreateTagUseCase instance.
func NewCreateTagUseCase(tagRepo adapter.TagRepository, categoryRepo adapter.CategoryRepository) *CreateTagUseCase {
	return &CreateTagUseCase{
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
	}
}

// Execute performs the tag creation.
func (uc *CreateTagUseCase) Execute(ctx context.Context, input CreateTagInput) (*CreateTagOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	if err := validatePlacement(ctx, uc.tagRepo, uc.categoryRepo, uuid.Nil, input.UserID, input.ParentID, input.CategoryCode); err != nil {
		return nil, err
	}

	icon := strings.TrimSpace(input.Icon)
	if icon == "" {
		icon = DefaultIcon
	}

	tag := entity.NewTag(input.UserID, name, icon, input.ParentID, input.CategoryCode)
	if err := uc.tagRepo.Create(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	return &CreateTagOutput{Tag: tag}, nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewTagError(
			domainerror.ErrCodeTagNameRequired,
			"name is required",
			domainerror.ErrTagNameRequired,
		)
	}
	if len(name) > MaxNameLength {
		return "", domainerror.NewTagError(
			domainerror.ErrCodeTagNameTooLong,
			fmt.Sprintf("name must not exceed %d characters", MaxNameLength),
			domainerror.ErrTagNameTooLong,
		)
	}
	return name, nil
}

// validatePlacement enforces the two-level hierarchy: a parent must be a
// visible top-level tag other than self, and only top-level tags carry a category.
func validatePlacement(
	ctx context.Context,
	tagRepo adapter.TagRepository,
	categoryRepo adapter.CategoryRepository,
	selfID uuid.UUID,
	userID uuid.UUID,
	parentID *uuid.UUID,
	categoryCode *string,
) error {
	if parentID != nil {
		if categoryCode != nil {
			return domainerror.NewTagError(
				domainerror.ErrCodeChildTagCategory,
				"child tags inherit their parent's category",
				domainerror.ErrChildTagCategory,
			)
		}

		parent, err := findVisibleTag(ctx, tagRepo, *parentID, userID)
		if err != nil {
			return err
		}
		if parent.IsChild() || parent.ID == selfID {
			return domainerror.NewTagError(
				domainerror.ErrCodeTagNestingTooDeep,
				"tags can only be nested one level deep",
				domainerror.ErrTagNestingTooDeep,
			)
		}
		if selfID != uuid.Nil {
			children, err := tagRepo.CountChildren(ctx, selfID)
			if err != nil {
				return fmt.Errorf("failed to count child tags: %w", err)
			}
			if children > 0 {
				return domainerror.NewTagError(
					domainerror.ErrCodeTagNestingTooDeep,
					"a tag with children cannot become a child",
					domainerror.ErrTagNestingTooDeep,
				)
			}
		}
	}

	if categoryCode != nil {
		if _, err := categoryRepo.FindByCode(ctx, *categoryCode); err != nil {
			if errors.Is(err, domainerror.ErrCategoryNotFound) {
				return domainerror.NewTagError(
					domainerror.ErrCodeTagCategoryUnknown,
					"category not found",
					domainerror.ErrCategoryNotFound,
				)
			}
			return fmt.Errorf("failed to find category: %w", err)
		}
	}
	return nil
}

func findVisibleTag(ctx context.Context, tagRepo adapter.TagRepository, tagID, userID uuid.UUID) (*entity.Tag, error) {
	tag, err := tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, domainerror.NewTagError(
				domainerror.ErrCodeTagNotFound,
				"tag not found",
				domainerror.ErrTagNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	if !tag.VisibleTo(userID) {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagNotFound,
			"tag not found",
			domainerror.ErrTagNotFound,
		)
	}
	return tag, nil
}

func findOwnedTag(ctx context.Context, tagRepo adapter.TagRepository, tagID, userID uuid.UUID) (*entity.Tag, error) {
	tag, err := findVisibleTag(ctx, tagRepo, tagID, userID)
	if err != nil {
		return nil, err
	}
	if !tag.OwnedBy(userID) {
		return nil, domainerror.NewTagError(
			domainerror.ErrCodeTagReadOnly,
			"global tags cannot be modified",
			domainerror.ErrTagReadOnly,
		)
	}
	return tag, nil
}
