// Package tag contains tag and category use cases.
package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// ListTagsInput represents the input for listing tags.
type ListTagsInput struct {
	UserID uuid.UUID
}

// ListTagsOutput lists top-level tags with their children. Child tags whose
// parent is not visible are listed at the top level.
type ListTagsOutput struct {
	Tags []*entity.TagWithChildren
}

// ListTagsUseCase handles listing the tags visible to a user.
type ListTagsUseCase struct {
	tagRepo adapter.TagRepository
}

// NewListTagsUseCase creates a new ListTagsUseCase instance.
func NewListTagsUseCase(tagRepo adapter.TagRepository) *ListTagsUseCase {
	return &ListTagsUseCase{tagRepo: tagRepo}
}

// Execute lists the tags.
func (uc *ListTagsUseCase) Execute(ctx context.Context, input ListTagsInput) (*ListTagsOutput, error) {
	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	visible := make(map[uuid.UUID]bool, len(tags))
	for _, t := range tags {
		visible[t.ID] = true
	}

	groups := make(map[uuid.UUID]*entity.TagWithChildren)
	output := &ListTagsOutput{Tags: make([]*entity.TagWithChildren, 0)}
	for _, t := range tags {
		if t.IsChild() && visible[*t.ParentID] {
			continue
		}
		group := &entity.TagWithChildren{Tag: t}
		groups[t.ID] = group
		output.Tags = append(output.Tags, group)
	}
	for _, t := range tags {
		if !t.IsChild() {
			continue
		}
		if group, ok := groups[*t.ParentID]; ok {
			group.Children = append(group.Children, t)
		}
	}

	return output, nil
}

// ListCategoriesUseCase handles listing the reporting categories.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{categoryRepo: categoryRepo}
}

// Execute lists the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]*entity.Category, error) {
	return uc.categoryRepo.FindAll(ctx)
}
