package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

// tagRuleRepository implements the adapter.TagRuleRepository interface.
type tagRuleRepository struct {
	db *gorm.DB
}

// NewTagRuleRepository creates a new tag rule repository instance.
func NewTagRuleRepository(db *gorm.DB) adapter.TagRuleRepository {
	return &tagRuleRepository{db: db}
}

// Create creates a new rule.
func (r *tagRuleRepository) Create(ctx context.Context, rule *entity.TagRule) error {
	return r.db.WithContext(ctx).Create(model.TagRuleFromEntity(rule)).Error
}

// FindByID retrieves a rule by its ID.
func (r *tagRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TagRule, error) {
	var m model.TagRuleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRuleNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByUser retrieves the user's rules in evaluation order.
func (r *tagRuleRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TagRule, error) {
	var models []model.TagRuleModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.TagRule, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// Update changes the tag and expression of a rule. Its position in the
// evaluation order is kept.
func (r *tagRuleRepository) Update(ctx context.Context, rule *entity.TagRule) error {
	result := r.db.WithContext(ctx).
		Model(&model.TagRuleModel{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"tag_id":     rule.TagID,
			"expression": rule.Expression,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule.
func (r *tagRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TagRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRuleNotFound
	}
	return nil
}
