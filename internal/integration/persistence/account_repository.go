package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{db: db}
}

// Upsert inserts the account or refreshes the details of the stored account
// with the same resource id. account.ID is set to the stored id.
func (r *accountRepository) Upsert(ctx context.Context, account *entity.Account) error {
	m := model.AccountFromEntity(account)
	m.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "resource_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"institution_id", "name", "owner_name", "currency", "iban", "bban", "updated_at",
			}),
		}).Create(m).Error
		if err != nil {
			return err
		}

		var stored model.AccountModel
		if err := tx.Where("resource_id = ?", account.ResourceID).First(&stored).Error; err != nil {
			return err
		}
		*account = *stored.ToEntity()
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert account: %w", err)
	}
	return nil
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var m model.AccountModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// FindByUser retrieves all accounts of the user.
func (r *accountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var models []model.AccountModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Account, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

// FindUsersWithStaleAccounts returns users owning at least one account not imported since before.
func (r *accountRepository) FindUsersWithStaleAccounts(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Distinct("user_id").
		Where("last_imported_at IS NULL OR last_imported_at < ?", before).
		Limit(limit).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// MarkImported stores the balance and import time of an account.
func (r *accountRepository) MarkImported(ctx context.Context, id uuid.UUID, balance decimal.Decimal, importedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"balance":          balance,
			"last_imported_at": importedAt,
			"updated_at":       time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAccountNotFound
	}
	return nil
}

type institutionRepository struct {
	db *gorm.DB
}

// NewInstitutionRepository creates a new institution repository instance.
func NewInstitutionRepository(db *gorm.DB) adapter.InstitutionRepository {
	return &institutionRepository{db: db}
}

func (r *institutionRepository) UpsertByCode(ctx context.Context, institutions []*entity.Institution) error {
	if len(institutions) == 0 {
		return nil
	}

	models := make([]*model.InstitutionModel, len(institutions))
	for i, in := range institutions {
		models[i] = model.InstitutionFromEntity(in)
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "logo_url", "updated_at"}),
		}).
		CreateInBatches(models, upsertBatchSize).Error
}

func (r *institutionRepository) FindAll(ctx context.Context) ([]*entity.Institution, error) {
	var models []model.InstitutionModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entity.Institution, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

func (r *institutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Institution, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *institutionRepository) FindByCode(ctx context.Context, code string) (*entity.Institution, error) {
	return r.findOne(ctx, "code = ?", code)
}

func (r *institutionRepository) findOne(ctx context.Context, query string, arg any) (*entity.Institution, error) {
	var m model.InstitutionModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInstitutionNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

type requisitionRepository struct {
	db *gorm.DB
}

// NewRequisitionRepository creates a new requisition repository instance.
func NewRequisitionRepository(db *gorm.DB) adapter.RequisitionRepository {
	return &requisitionRepository{db: db}
}

func (r *requisitionRepository) Create(ctx context.Context, requisition *entity.Requisition) error {
	return r.db.WithContext(ctx).Create(model.RequisitionFromEntity(requisition)).Error
}

func (r *requisitionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Requisition, error) {
	var models []model.RequisitionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Requisition, len(models))
	for i := range models {
		out[i] = models[i].ToEntity()
	}
	return out, nil
}

func (r *requisitionRepository) Update(ctx context.Context, requisition *entity.Requisition) error {
	result := r.db.WithContext(ctx).
		Model(&model.RequisitionModel{}).
		Where("id = ?", requisition.ID).
		Updates(map[string]any{
			"status":      string(requisition.Status),
			"account_ids": model.RequisitionFromEntity(requisition).AccountIDs,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRequisitionNotFound
	}
	return nil
}
