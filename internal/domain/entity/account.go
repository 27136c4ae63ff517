// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Institution is a bank reachable through the open-banking provider.
type Institution struct {
	ID        uuid.UUID
	Code      string // Provider institution identifier, unique
	Name      string
	LogoURL   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInstitution creates a new Institution entity.
func NewInstitution(code, name, logoURL string) *Institution {
	now := time.Now().UTC()
	return &Institution{
		ID:        uuid.New(),
		Code:      code,
		Name:      name,
		LogoURL:   logoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Account is one bank account belonging to one user at one institution.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	InstitutionID  *uuid.UUID
	ResourceID     string // Provider account identifier, unique
	Name           string
	OwnerName      string
	Balance        decimal.Decimal
	Currency       string
	IBAN           *string
	BBAN           *string
	LastImportedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(userID uuid.UUID, institutionID *uuid.UUID, resourceID, name string) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:            uuid.New(),
		UserID:        userID,
		InstitutionID: institutionID,
		ResourceID:    resourceID,
		Name:          name,
		Balance:       decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// BankNumber returns the IBAN if set, else the BBAN, else nil.
func (a *Account) BankNumber() *string {
	if a.IBAN != nil && *a.IBAN != "" {
		return a.IBAN
	}
	if a.BBAN != nil && *a.BBAN != "" {
		return a.BBAN
	}
	return nil
}

// NeedsImport reports whether the account was last imported before now-staleAfter.
func (a *Account) NeedsImport(now time.Time, staleAfter time.Duration) bool {
	if a.LastImportedAt == nil {
		return true
	}
	return a.LastImportedAt.Before(now.Add(-staleAfter))
}

// RequisitionStatus mirrors the provider's consent lifecycle states we care about.
type RequisitionStatus string

const (
	RequisitionStatusCreated RequisitionStatus = "CR"
	RequisitionStatusLinked  RequisitionStatus = "LN"
	RequisitionStatusExpired RequisitionStatus = "EX"
)

// Requisition is the provider's consent record for one institution.
type Requisition struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	InstitutionID uuid.UUID
	ProviderID    string
	Link          string
	Status        RequisitionStatus
	AccountIDs    []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
