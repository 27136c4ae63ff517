package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

const (
	upsertBatchSize = 500

	notLinkedClause = "id NOT IN (SELECT from_transaction_id FROM transfer_links) " +
		"AND id NOT IN (SELECT to_transaction_id FROM transfer_links)"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{db: db}
}

// UpsertBatch inserts transactions; rows whose internal id already exists are left untouched.
func (r *transactionRepository) UpsertBatch(ctx context.Context, transactions []*entity.Transaction) (*adapter.UpsertResult, error) {
	if len(transactions) == 0 {
		return &adapter.UpsertResult{}, nil
	}

	models := make([]*model.TransactionModel, len(transactions))
	for i, t := range transactions {
		models[i] = model.TransactionFromEntity(t)
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "internal_id"}},
			DoNothing: true,
		}).
		CreateInBatches(models, upsertBatchSize)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to upsert transactions: %w", result.Error)
	}

	inserted := int(result.RowsAffected)
	return &adapter.UpsertResult{
		Inserted: inserted,
		Skipped:  len(transactions) - inserted,
	}, nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var m model.TransactionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByFilter retrieves the user's transactions matching the filter.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("booking_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("booking_date <= ?", *filter.EndDate)
	}
	if filter.AccountID != nil {
		query = query.Where("account_id = ?", *filter.AccountID)
	}
	if filter.HolidayID != nil {
		query = query.Where("holiday_id = ?", *filter.HolidayID)
	}
	if filter.UnlinkedOnly {
		query = query.Where(notLinkedClause)
	}

	return r.find(query)
}

// FindUnlinkedByUser retrieves the user's transactions that are not a leg of any link.
func (r *transactionRepository) FindUnlinkedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID).Where(notLinkedClause))
}

// FindUntaggedByUser retrieves the user's transactions without a tag.
func (r *transactionRepository) FindUntaggedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ? AND tag_id IS NULL", userID))
}

func (r *transactionRepository) find(query *gorm.DB) ([]*entity.Transaction, error) {
	var models []model.TransactionModel
	if err := query.Order("booking_date ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.Transaction, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// UpdateTag sets or clears the tag of a transaction.
func (r *transactionRepository) UpdateTag(ctx context.Context, id uuid.UUID, tagID *uuid.UUID) error {
	return r.updateColumn(ctx, id, "tag_id", tagID)
}

// UpdateHoliday sets or clears the holiday of a transaction.
func (r *transactionRepository) UpdateHoliday(ctx context.Context, id uuid.UUID, holidayID *uuid.UUID) error {
	return r.updateColumn(ctx, id, "holiday_id", holidayID)
}

func (r *transactionRepository) updateColumn(ctx context.Context, id uuid.UUID, column string, value *uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			column:       value,
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// BulkAssignTags writes rule-chosen tags to transactions that are still untagged.
func (r *transactionRepository) BulkAssignTags(ctx context.Context, assignments []adapter.TagAssignment) (int64, error) {
	if len(assignments) == 0 {
		return 0, nil
	}

	byTag := make(map[uuid.UUID][]uuid.UUID)
	order := make([]uuid.UUID, 0)
	for _, a := range assignments {
		if _, ok := byTag[a.TagID]; !ok {
			order = append(order, a.TagID)
		}
		byTag[a.TagID] = append(byTag[a.TagID], a.TransactionID)
	}

	var updated int64
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, tagID := range order {
			result := tx.Model(&model.TransactionModel{}).
				Where("id IN ? AND tag_id IS NULL", byTag[tagID]).
				Updates(map[string]any{
					"tag_id":     tagID,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			updated += result.RowsAffected
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to assign tags: %w", err)
	}

	return updated, nil
}
