// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderInstitution is an institution as reported by the banking provider.
type ProviderInstitution struct {
	Code    string
	Name    string
	LogoURL string
}

// ProviderRequisition is a consent record as reported by the banking provider.
type ProviderRequisition struct {
	ID         string
	Link       string
	Status     string
	AccountIDs []string
}

// ProviderAccount is the detail of one account as reported by the banking provider.
type ProviderAccount struct {
	ResourceID string
	Name       string
	OwnerName  string
	Currency   string
	IBAN       string
	BBAN       string
}

// RawTransaction is one booked transaction as reported by the banking provider.
type RawTransaction struct {
	TransactionID       string
	InternalID          string
	BookingDate         time.Time
	BookedAt            *time.Time
	Amount              decimal.Decimal
	Currency            string
	Reference           string
	CreditorName        string
	CreditorAccount     string
	DebtorName          string
	DebtorAccount       string
	BankTransactionCode string
}

// BankingClient defines the open-banking provider operations the service consumes.
type BankingClient interface {
	// ListInstitutions lists institutions available in the configured country.
	ListInstitutions(ctx context.Context) ([]ProviderInstitution, error)

	// CreateRequisition creates an end-user agreement and a requisition for an institution.
	CreateRequisition(ctx context.Context, institutionCode, reference string) (*ProviderRequisition, error)

	// GetRequisition fetches the current state of a requisition.
	GetRequisition(ctx context.Context, requisitionID string) (*ProviderRequisition, error)

	// GetAccountDetails fetches the details of an account.
	GetAccountDetails(ctx context.Context, resourceID string) (*ProviderAccount, error)

	// FetchTransactions fetches booked transactions of an account since the given date.
	FetchTransactions(ctx context.Context, resourceID string, since *time.Time) ([]RawTransaction, error)

	// FetchBalance fetches the current balance of an account.
	FetchBalance(ctx context.Context, resourceID string) (decimal.Decimal, error)
}
