package dto

import (
	"time"

	"github.com/elliotJHarding/transactions/internal/application/usecase/transaction"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// AssignTagRequest represents the request body for tagging a transaction.
// A null tag_id clears the tag.
type AssignTagRequest struct {
	TagID *string `json:"tag_id"`
}

// AssignHolidayRequest represents the request body for assigning a holiday.
// A null holiday_id clears the holiday.
type AssignHolidayRequest struct {
	HolidayID *string `json:"holiday_id"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  string     `json:"id"`
	AccountID           string     `json:"account_id"`
	InternalID          string     `json:"internal_id"`
	BookingDate         string     `json:"booking_date"`
	BookedAt            *time.Time `json:"booked_at,omitempty"`
	Amount              string     `json:"amount"`
	Currency            string     `json:"currency"`
	Reference           string     `json:"reference"`
	CreditorName        *string    `json:"creditor_name,omitempty"`
	CreditorAccount     *string    `json:"creditor_account,omitempty"`
	DebtorName          *string    `json:"debtor_name,omitempty"`
	DebtorAccount       *string    `json:"debtor_account,omitempty"`
	BankTransactionCode string     `json:"bank_transaction_code,omitempty"`
	TagID               *string    `json:"tag_id,omitempty"`
	HolidayID           *string    `json:"holiday_id,omitempty"`
	Linked              *bool      `json:"linked,omitempty"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Count        int                   `json:"count"`
}

// ToTransactionResponse converts a Transaction entity to its DTO. Linked is
// left unset; callers that know the link state fill it in.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:                  t.ID.String(),
		AccountID:           t.AccountID.String(),
		InternalID:          t.InternalID,
		BookingDate:         t.BookingDate.Format(time.DateOnly),
		BookedAt:            t.BookedAt,
		Amount:              t.Amount.StringFixed(2),
		Currency:            t.Currency,
		Reference:           t.Reference,
		CreditorName:        t.CreditorName,
		CreditorAccount:     t.CreditorAccount,
		DebtorName:          t.DebtorName,
		DebtorAccount:       t.DebtorAccount,
		BankTransactionCode: t.BankTransactionCode,
		TagID:               uuidString(t.TagID),
		HolidayID:           uuidString(t.HolidayID),
	}
}

// ToTransactionListResponse converts the list use case output to its DTO.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	items := make([]TransactionResponse, len(output.Transactions))
	for i, t := range output.Transactions {
		linked := t.Linked
		items[i] = ToTransactionResponse(t.Transaction)
		items[i].Linked = &linked
	}
	return TransactionListResponse{
		Transactions: items,
		Count:        len(items),
	}
}
