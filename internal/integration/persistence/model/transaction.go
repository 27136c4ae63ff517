package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_user_date,priority:1"`
	ExternalID          *string         `gorm:"type:varchar(255)"`
	InternalID          string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	BookingDate         time.Time       `gorm:"type:date;not null;index:idx_transactions_user_date,priority:2"`
	BookedAt            *time.Time
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency            string          `gorm:"type:varchar(3);not null"`
	Reference           string          `gorm:"type:varchar(500)"`
	CreditorName        *string         `gorm:"type:varchar(255)"`
	CreditorAccount     *string         `gorm:"type:varchar(34)"`
	DebtorName          *string         `gorm:"type:varchar(255)"`
	DebtorAccount       *string         `gorm:"type:varchar(34)"`
	BankTransactionCode string          `gorm:"type:varchar(50)"`
	TagID               *uuid.UUID      `gorm:"type:uuid;index"`
	HolidayID           *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Account *AccountModel `gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
	Tag     *TagModel     `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:SET NULL"`
	Holiday *HolidayModel `gorm:"foreignKey:HolidayID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                  m.ID,
		AccountID:           m.AccountID,
		UserID:              m.UserID,
		ExternalID:          m.ExternalID,
		InternalID:          m.InternalID,
		BookingDate:         m.BookingDate,
		BookedAt:            m.BookedAt,
		Amount:              m.Amount,
		Currency:            m.Currency,
		Reference:           m.Reference,
		CreditorName:        m.CreditorName,
		CreditorAccount:     m.CreditorAccount,
		DebtorName:          m.DebtorName,
		DebtorAccount:       m.DebtorAccount,
		BankTransactionCode: m.BankTransactionCode,
		TagID:               m.TagID,
		HolidayID:           m.HolidayID,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                  t.ID,
		AccountID:           t.AccountID,
		UserID:              t.UserID,
		ExternalID:          t.ExternalID,
		InternalID:          t.InternalID,
		BookingDate:         t.BookingDate,
		BookedAt:            t.BookedAt,
		Amount:              t.Amount,
		Currency:            t.Currency,
		Reference:           t.Reference,
		CreditorName:        t.CreditorName,
		CreditorAccount:     t.CreditorAccount,
		DebtorName:          t.DebtorName,
		DebtorAccount:       t.DebtorAccount,
		BankTransactionCode: t.BankTransactionCode,
		TagID:               t.TagID,
		HolidayID:           t.HolidayID,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

// TransferLinkModel represents the transfer_links table. Each leg column is
// unique on its own; the repository also rejects a transaction appearing as
// the from leg of one link and the to leg of another.
type TransferLinkModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	FromTransactionID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ToTransactionID   uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt         time.Time `gorm:"not null"`

	From *TransactionModel `gorm:"foreignKey:FromTransactionID;references:ID;constraint:OnDelete:CASCADE"`
	To   *TransactionModel `gorm:"foreignKey:ToTransactionID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the TransferLinkModel.
func (TransferLinkModel) TableName() string {
	return "transfer_links"
}

// ToEntity converts a TransferLinkModel to a domain TransferLink entity.
func (m *TransferLinkModel) ToEntity() *entity.TransferLink {
	return &entity.TransferLink{
		ID:                m.ID,
		FromTransactionID: m.FromTransactionID,
		ToTransactionID:   m.ToTransactionID,
		CreatedAt:         m.CreatedAt,
	}
}

// ToEntityWithLegs converts a TransferLinkModel with preloaded legs.
func (m *TransferLinkModel) ToEntityWithLegs() *entity.TransferLinkWithLegs {
	out := &entity.TransferLinkWithLegs{Link: m.ToEntity()}
	if m.From != nil {
		out.From = m.From.ToEntity()
	}
	if m.To != nil {
		out.To = m.To.ToEntity()
	}
	return out
}

// TransferLinkFromEntity creates a TransferLinkModel from a domain TransferLink entity.
func TransferLinkFromEntity(l *entity.TransferLink) *TransferLinkModel {
	return &TransferLinkModel{
		ID:                l.ID,
		FromTransactionID: l.FromTransactionID,
		ToTransactionID:   l.ToTransactionID,
		CreatedAt:         l.CreatedAt,
	}
}
