package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// SyncAccountsInput represents the input for materializing a user's accounts.
type SyncAccountsInput struct {
	UserID uuid.UUID
}

// SyncAccountsOutput represents the output of an account sync.
type SyncAccountsOutput struct {
	Accounts []*entity.Account
	Pending  int // Requisitions the user has not finished linking
}

// SyncAccountsUseCase turns linked requisitions into accounts.
type SyncAccountsUseCase struct {
	requisitionRepo adapter.RequisitionRepository
	accountRepo     adapter.AccountRepository
	banking         adapter.BankingClient
}

// NewSyncAccountsUseCase creates a new SyncAccountsUseCase instance.
func NewSyncAccountsUseCase(
	requisitionRepo adapter.RequisitionRepository,
	accountRepo adapter.AccountRepository,
	banking adapter.BankingClient,
) *SyncAccountsUseCase {
	return &SyncAccountsUseCase{
		requisitionRepo: requisitionRepo,
		accountRepo:     accountRepo,
		banking:         banking,
	}
}

// Execute performs the sync.
func (uc *SyncAccountsUseCase) Execute(ctx context.Context, input SyncAccountsInput) (*SyncAccountsOutput, error) {
	requisitions, err := uc.requisitionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requisitions: %w", err)
	}

	output := &SyncAccountsOutput{Accounts: make([]*entity.Account, 0)}
	for _, req := range requisitions {
		if req.Status == entity.RequisitionStatusExpired {
			continue
		}

		remote, err := uc.banking.GetRequisition(ctx, req.ProviderID)
		if err != nil {
			return nil, providerError("failed to fetch requisition", err)
		}

		req.Status = entity.RequisitionStatus(remote.Status)
		req.AccountIDs = remote.AccountIDs
		req.UpdatedAt = time.Now().UTC()
		if err := uc.requisitionRepo.Update(ctx, req); err != nil {
			return nil, fmt.Errorf("failed to update requisition: %w", err)
		}

		if req.Status != entity.RequisitionStatusLinked {
			output.Pending++
			continue
		}

		institutionID := req.InstitutionID
		for _, resourceID := range req.AccountIDs {
			details, err := uc.banking.GetAccountDetails(ctx, resourceID)
			if err != nil {
				return nil, providerError("failed to fetch account details", err)
			}

			acc := entity.NewAccount(input.UserID, &institutionID, resourceID, details.Name)
			acc.OwnerName = details.OwnerName
			acc.Currency = details.Currency
			if details.IBAN != "" {
				iban := details.IBAN
				acc.IBAN = &iban
			}
			if details.BBAN != "" {
				bban := details.BBAN
				acc.BBAN = &bban
			}

			if err := uc.accountRepo.Upsert(ctx, acc); err != nil {
				return nil, fmt.Errorf("failed to save account: %w", err)
			}
			output.Accounts = append(output.Accounts, acc)
		}
	}

	slog.Info("Synced accounts",
		"user_id", input.UserID,
		"accounts", len(output.Accounts),
		"pending", output.Pending,
	)
	return output, nil
}

// ListAccountsUseCase lists a user's accounts.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	return uc.accountRepo.FindByUser(ctx, userID)
}
