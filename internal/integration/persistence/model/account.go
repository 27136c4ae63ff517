package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// InstitutionModel represents the institutions table in the database.
type InstitutionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255);not null"`
	LogoURL   string    `gorm:"type:varchar(500)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the InstitutionModel.
func (InstitutionModel) TableName() string {
	return "institutions"
}

// ToEntity converts an InstitutionModel to a domain Institution entity.
func (m *InstitutionModel) ToEntity() *entity.Institution {
	return &entity.Institution{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		LogoURL:   m.LogoURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// InstitutionFromEntity creates an InstitutionModel from a domain Institution entity.
func InstitutionFromEntity(i *entity.Institution) *InstitutionModel {
	return &InstitutionModel{
		ID:        i.ID,
		Code:      i.Code,
		Name:      i.Name,
		LogoURL:   i.LogoURL,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	InstitutionID  *uuid.UUID      `gorm:"type:uuid;index"`
	ResourceID     string          `gorm:"type:varchar(100);uniqueIndex;not null"`
	Name           string          `gorm:"type:varchar(255)"`
	OwnerName      string          `gorm:"type:varchar(255)"`
	Balance        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Currency       string          `gorm:"type:varchar(3)"`
	IBAN           *string         `gorm:"type:varchar(34)"`
	BBAN           *string         `gorm:"type:varchar(34)"`
	LastImportedAt *time.Time      `gorm:"index"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`

	User        *UserModel        `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Institution *InstitutionModel `gorm:"foreignKey:InstitutionID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:             m.ID,
		UserID:         m.UserID,
		InstitutionID:  m.InstitutionID,
		ResourceID:     m.ResourceID,
		Name:           m.Name,
		OwnerName:      m.OwnerName,
		Balance:        m.Balance,
		Currency:       m.Currency,
		IBAN:           m.IBAN,
		BBAN:           m.BBAN,
		LastImportedAt: m.LastImportedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:             a.ID,
		UserID:         a.UserID,
		InstitutionID:  a.InstitutionID,
		ResourceID:     a.ResourceID,
		Name:           a.Name,
		OwnerName:      a.OwnerName,
		Balance:        a.Balance,
		Currency:       a.Currency,
		IBAN:           a.IBAN,
		BBAN:           a.BBAN,
		LastImportedAt: a.LastImportedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

// RequisitionModel represents the requisitions table in the database.
type RequisitionModel struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	InstitutionID uuid.UUID      `gorm:"type:uuid;not null"`
	ProviderID    string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Link          string         `gorm:"type:varchar(1000)"`
	Status        string         `gorm:"type:varchar(4);not null"`
	AccountIDs    pq.StringArray `gorm:"type:text"`
	CreatedAt     time.Time      `gorm:"not null"`
	UpdatedAt     time.Time      `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the RequisitionModel.
func (RequisitionModel) TableName() string {
	return "requisitions"
}

// ToEntity converts a RequisitionModel to a domain Requisition entity.
func (m *RequisitionModel) ToEntity() *entity.Requisition {
	accountIDs := make([]string, len(m.AccountIDs))
	copy(accountIDs, m.AccountIDs)

	return &entity.Requisition{
		ID:            m.ID,
		UserID:        m.UserID,
		InstitutionID: m.InstitutionID,
		ProviderID:    m.ProviderID,
		Link:          m.Link,
		Status:        entity.RequisitionStatus(m.Status),
		AccountIDs:    accountIDs,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// RequisitionFromEntity creates a RequisitionModel from a domain Requisition entity.
func RequisitionFromEntity(r *entity.Requisition) *RequisitionModel {
	return &RequisitionModel{
		ID:            r.ID,
		UserID:        r.UserID,
		InstitutionID: r.InstitutionID,
		ProviderID:    r.ProviderID,
		Link:          r.Link,
		Status:        string(r.Status),
		AccountIDs:    pq.StringArray(r.AccountIDs),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
