// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransferLink pairs the two legs of one transfer between a user's own accounts.
// FromTransactionID is always the negative leg, ToTransactionID the positive one.
type TransferLink struct {
	ID                uuid.UUID
	FromTransactionID uuid.UUID
	ToTransactionID   uuid.UUID
	CreatedAt         time.Time
}

// NewTransferLink orients a and b into a link. It returns false when the two
// transactions are not of opposite sign.
func NewTransferLink(a, b *Transaction) (*TransferLink, bool) {
	from, to := a, b
	if a.Amount.IsPositive() && b.Amount.IsNegative() {
		from, to = b, a
	} else if !(a.Amount.IsNegative() && b.Amount.IsPositive()) {
		return nil, false
	}

	return &TransferLink{
		ID:                uuid.New(),
		FromTransactionID: from.ID,
		ToTransactionID:   to.ID,
		CreatedAt:         time.Now().UTC(),
	}, true
}

// Involves reports whether the transaction is one of the link's legs.
func (l *TransferLink) Involves(transactionID uuid.UUID) bool {
	return l.FromTransactionID == transactionID || l.ToTransactionID == transactionID
}

// TransferLinkWithLegs is a link with both transactions loaded.
type TransferLinkWithLegs struct {
	Link *TransferLink
	From *Transaction
	To   *Transaction
}
