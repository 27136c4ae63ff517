// Package account contains bank account, institution and import use cases.
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// SyncInstitutionsOutput represents the output of an institution sync.
type SyncInstitutionsOutput struct {
	Synced int
}

// SyncInstitutionsUseCase refreshes the institution list from the provider.
type SyncInstitutionsUseCase struct {
	institutionRepo adapter.InstitutionRepository
	banking         adapter.BankingClient
}

// NewSyncInstitutionsUseCase creates a new SyncInstitutionsUseCase instance.
func NewSyncInstitutionsUseCase(
	institutionRepo adapter.InstitutionRepository,
	banking adapter.BankingClient,
) *SyncInstitutionsUseCase {
	return &SyncInstitutionsUseCase{
		institutionRepo: institutionRepo,
		banking:         banking,
	}
}

// Execute performs the sync.
func (uc *SyncInstitutionsUseCase) Execute(ctx context.Context) (*SyncInstitutionsOutput, error) {
	remote, err := uc.banking.ListInstitutions(ctx)
	if err != nil {
		return nil, providerError("failed to list institutions", err)
	}

	institutions := make([]*entity.Institution, 0, len(remote))
	for _, r := range remote {
		if r.Code == "" {
			continue
		}
		institutions = append(institutions, entity.NewInstitution(r.Code, r.Name, r.LogoURL))
	}

	if err := uc.institutionRepo.UpsertByCode(ctx, institutions); err != nil {
		return nil, fmt.Errorf("failed to save institutions: %w", err)
	}

	slog.Info("Synced institutions", "count", len(institutions))
	return &SyncInstitutionsOutput{Synced: len(institutions)}, nil
}

// ListInstitutionsUseCase lists the known institutions.
type ListInstitutionsUseCase struct {
	institutionRepo adapter.InstitutionRepository
}

// NewListInstitutionsUseCase creates a new ListInstitutionsUseCase instance.
func NewListInstitutionsUseCase(institutionRepo adapter.InstitutionRepository) *ListInstitutionsUseCase {
	return &ListInstitutionsUseCase{institutionRepo: institutionRepo}
}

// Execute lists the institutions.
func (uc *ListInstitutionsUseCase) Execute(ctx context.Context) ([]*entity.Institution, error) {
	return uc.institutionRepo.FindAll(ctx)
}

func providerError(message string, err error) error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeBankingProvider,
		message,
		fmt.Errorf("%w: %w", domainerror.ErrBankingProvider, err),
	)
}
