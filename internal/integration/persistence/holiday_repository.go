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

type holidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository creates a new holiday repository instance.
func NewHolidayRepository(db *gorm.DB) adapter.HolidayRepository {
	return &holidayRepository{db: db}
}

func (r *holidayRepository) Create(ctx context.Context, holiday *entity.Holiday) error {
	return r.db.WithContext(ctx).Create(model.HolidayFromEntity(holiday)).Error
}

func (r *holidayRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Holiday, error) {
	var m model.HolidayModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrHolidayNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

func (r *holidayRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Holiday, error) {
	var models []model.HolidayModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Holiday, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// Delete removes a holiday and detaches its transactions.
func (r *holidayRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.TransactionModel{}).
			Where("holiday_id = ?", id).
			Updates(map[string]any{"holiday_id": nil, "updated_at": time.Now().UTC()}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&model.HolidayModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrHolidayNotFound
		}
		return nil
	})
}
