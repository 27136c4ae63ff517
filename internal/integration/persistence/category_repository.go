package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	var models []model.CategoryModel
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.Category, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

func (r *categoryRepository) FindByCode(ctx context.Context, code string) (*entity.Category, error) {
	var m model.CategoryModel
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *categoryRepository) Seed(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]model.CategoryModel, len(categories))
	for i, c := range categories {
		models[i] = model.CategoryModel{Code: c.Code, Name: c.Name}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&models).Error
}

// tagRepository implements the adapter.TagRepository interface.
type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository instance.
func NewTagRepository(db *gorm.DB) adapter.TagRepository {
	return &tagRepository{db: db}
}

// Create creates a new tag.
func (r *tagRepository) Create(ctx context.Context, tag *entity.Tag) error {
	return r.db.WithContext(ctx).Create(model.TagFromEntity(tag)).Error
}

// FindByID retrieves a tag by its ID.
func (r *tagRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	var m model.TagModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTagNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindVisibleByUser retrieves global tags plus the user's own tags.
func (r *tagRepository) FindVisibleByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error) {
	var models []model.TagModel
	err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Tag, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// Update updates an existing tag.
func (r *tagRepository) Update(ctx context.Context, tag *entity.Tag) error {
	result := r.db.WithContext(ctx).
		Model(&model.TagModel{}).
		Where("id = ?", tag.ID).
		Updates(map[string]any{
			"name":          tag.Name,
			"icon":          tag.Icon,
			"parent_id":     tag.ParentID,
			"category_code": tag.CategoryCode,
			"updated_at":    time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTagNotFound
	}
	return nil
}

// Delete removes a tag and untags its transactions. Rules pointing at it are
// left in place and stop matching.
func (r *tagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.TransactionModel{}).
			Where("tag_id = ?", id).
			Updates(map[string]any{"tag_id": nil, "updated_at": time.Now().UTC()}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&model.TagModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrTagNotFound
		}
		return nil
	})
}

// CountChildren counts the direct children of a tag.
func (r *tagRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.TagModel{}).Where("parent_id = ?", id).Count(&count).Error
	return count, err
}
