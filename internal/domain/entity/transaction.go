// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one posted ledger entry on one account.
type Transaction struct {
	ID                  uuid.UUID
	AccountID           uuid.UUID
	UserID              uuid.UUID // Owner of AccountID, denormalized for per-user queries
	ExternalID          *string
	InternalID          string // Idempotency key, globally unique
	BookingDate         time.Time
	BookedAt            *time.Time
	Amount              decimal.Decimal // Negative for outgoing, positive for incoming
	Currency            string
	Reference           string
	CreditorName        *string
	CreditorAccount     *string
	DebtorName          *string
	DebtorAccount       *string
	BankTransactionCode string
	TagID               *uuid.UUID
	HolidayID           *uuid.UUID
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsOutgoing reports whether money left the account.
func (t *Transaction) IsOutgoing() bool {
	return t.Amount.IsNegative()
}

// IsTagged reports whether a tag is assigned.
func (t *Transaction) IsTagged() bool {
	return t.TagID != nil
}

// OnHoliday reports whether the transaction is assigned to a holiday.
func (t *Transaction) OnHoliday() bool {
	return t.HolidayID != nil
}

// BookingDay returns the booking date formatted as YYYY-MM-DD.
func (t *Transaction) BookingDay() string {
	return t.BookingDate.Format(time.DateOnly)
}

// CounterpartyName returns the creditor name for outgoing and the debtor name
// for incoming transactions.
func (t *Transaction) CounterpartyName() string {
	name := t.DebtorName
	if t.IsOutgoing() {
		name = t.CreditorName
	}
	if name == nil {
		return ""
	}
	return *name
}
