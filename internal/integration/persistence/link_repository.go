package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

// linkRepository implements the adapter.LinkRepository interface.
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new link repository instance.
func NewLinkRepository(db *gorm.DB) adapter.LinkRepository {
	return &linkRepository{db: db}
}

// Create stores a link unless one of its legs is already part of another link.
func (r *linkRepository) Create(ctx context.Context, link *entity.TransferLink) error {
	legs := []uuid.UUID{link.FromTransactionID, link.ToTransactionID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.TransferLinkModel{}).
			Where("from_transaction_id IN ? OR to_transaction_id IN ?", legs, legs).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return domainerror.ErrDuplicateLink
		}

		return tx.Create(model.TransferLinkFromEntity(link)).Error
	})
	if err != nil {
		if errors.Is(err, domainerror.ErrDuplicateLink) || isUniqueViolation(err) {
			return domainerror.ErrDuplicateLink
		}
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

// FindByUser retrieves all links of the user with both legs loaded.
func (r *linkRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TransferLinkWithLegs, error) {
	var models []model.TransferLinkModel
	err := r.db.WithContext(ctx).
		Joins("JOIN transactions ON transactions.id = transfer_links.from_transaction_id").
		Where("transactions.user_id = ?", userID).
		Preload("From").
		Preload("To").
		Order("transactions.booking_date ASC, transfer_links.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.TransferLinkWithLegs, len(models))
	for i := range models {
		out[i] = models[i].ToEntityWithLegs()
	}
	return out, nil
}

// LinkedTransactionIDs returns the ids of every leg of the user's links.
func (r *linkRepository) LinkedTransactionIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var models []model.TransferLinkModel
	err := r.db.WithContext(ctx).
		Select("transfer_links.from_transaction_id", "transfer_links.to_transaction_id").
		Joins("JOIN transactions ON transactions.id = transfer_links.from_transaction_id").
		Where("transactions.user_id = ?", userID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[uuid.UUID]struct{}, len(models)*2)
	for _, m := range models {
		ids[m.FromTransactionID] = struct{}{}
		ids[m.ToTransactionID] = struct{}{}
	}
	return ids, nil
}

// isUniqueViolation also matches drivers that do not translate their errors.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key")
}
