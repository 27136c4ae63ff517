package dto

import (
	"time"

	"github.com/elliotJHarding/transactions/internal/application/usecase/account"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// InstitutionResponse represents an institution in API responses.
type InstitutionResponse struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	LogoURL string `json:"logo_url,omitempty"`
}

// SyncInstitutionsResponse represents the result of an institution sync.
type SyncInstitutionsResponse struct {
	Synced int `json:"synced"`
}

// CreateRequisitionRequest represents the request body for starting a bank link.
type CreateRequisitionRequest struct {
	InstitutionID string `json:"institution_id" binding:"required"`
}

// RequisitionResponse represents a requisition in API responses.
type RequisitionResponse struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institution_id"`
	Link          string `json:"link"`
	Status        string `json:"status"`
}

// AccountResponse represents a bank account in API responses.
type AccountResponse struct {
	ID             string     `json:"id"`
	InstitutionID  *string    `json:"institution_id,omitempty"`
	Name           string     `json:"name"`
	OwnerName      string     `json:"owner_name,omitempty"`
	Balance        string     `json:"balance"`
	Currency       string     `json:"currency"`
	IBAN           *string    `json:"iban,omitempty"`
	BBAN           *string    `json:"bban,omitempty"`
	LastImportedAt *time.Time `json:"last_imported_at,omitempty"`
}

// SyncAccountsResponse represents the result of an account sync.
type SyncAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Pending  int               `json:"pending_requisitions"`
}

// ImportRequest represents the request body for an import run.
type ImportRequest struct {
	Force bool `json:"force"`
}

// ImportResponse summarises an import run.
type ImportResponse struct {
	AccountsImported int   `json:"accounts_imported"`
	AccountsSkipped  int   `json:"accounts_skipped"`
	AccountsFailed   int   `json:"accounts_failed"`
	Inserted         int   `json:"inserted"`
	Duplicates       int   `json:"duplicates"`
	Invalid          int   `json:"invalid"`
	LinksCreated     int   `json:"links_created"`
	Tagged           int64 `json:"tagged"`
}

// ToInstitutionResponse converts an Institution entity to its DTO.
func ToInstitutionResponse(i *entity.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:      i.ID.String(),
		Code:    i.Code,
		Name:    i.Name,
		LogoURL: i.LogoURL,
	}
}

// ToInstitutionResponses converts a list of institutions.
func ToInstitutionResponses(institutions []*entity.Institution) []InstitutionResponse {
	out := make([]InstitutionResponse, len(institutions))
	for i, in := range institutions {
		out[i] = ToInstitutionResponse(in)
	}
	return out
}

// ToRequisitionResponse converts a Requisition entity to its DTO.
func ToRequisitionResponse(r *entity.Requisition) RequisitionResponse {
	return RequisitionResponse{
		ID:            r.ID.String(),
		InstitutionID: r.InstitutionID.String(),
		Link:          r.Link,
		Status:        string(r.Status),
	}
}

// ToAccountResponse converts an Account entity to its DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	resp := AccountResponse{
		ID:             a.ID.String(),
		Name:           a.Name,
		OwnerName:      a.OwnerName,
		Balance:        a.Balance.StringFixed(2),
		Currency:       a.Currency,
		IBAN:           a.IBAN,
		BBAN:           a.BBAN,
		LastImportedAt: a.LastImportedAt,
	}
	if a.InstitutionID != nil {
		id := a.InstitutionID.String()
		resp.InstitutionID = &id
	}
	return resp
}

// ToAccountResponses converts a list of accounts.
func ToAccountResponses(accounts []*entity.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		out[i] = ToAccountResponse(a)
	}
	return out
}

// ToImportResponse converts an import summary to its DTO.
func ToImportResponse(o *account.ImportTransactionsOutput) ImportResponse {
	return ImportResponse{
		AccountsImported: o.AccountsImported,
		AccountsSkipped:  o.AccountsSkipped,
		AccountsFailed:   o.AccountsFailed,
		Inserted:         o.Inserted,
		Duplicates:       o.Duplicates,
		Invalid:          o.Invalid,
		LinksCreated:     o.LinksCreated,
		Tagged:           o.Tagged,
	}
}
