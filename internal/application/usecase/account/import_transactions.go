package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/application/usecase/link"
	"github.com/elliotJHarding/transactions/internal/application/usecase/tagrule"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// refetchWindow is how far before the last import a refetch starts, to pick
// up transactions the bank booked late.
const refetchWindow = 7 * 24 * time.Hour

// ImportTransactionsInput represents the input for an import run.
type ImportTransactionsInput struct {
	UserID uuid.UUID
	Force  bool // Import every account regardless of when it was last imported
}

// ImportTransactionsOutput summarises an import run.
type ImportTransactionsOutput struct {
	AccountsImported int
	AccountsSkipped  int
	AccountsFailed   int
	Inserted         int
	Duplicates       int
	Invalid          int
	LinksCreated     int
	Tagged           int64
}

// ImportTransactionsUseCase fetches new transactions for a user's stale
// accounts, then links transfers and applies tag rules.
type ImportTransactionsUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	banking         adapter.BankingClient
	locker          adapter.UserLocker
	resolveLinks    *link.ResolveLinksUseCase
	applyRules      *tagrule.ApplyRulesUseCase
	staleAfter      time.Duration
	now             func() time.Time
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	banking adapter.BankingClient,
	locker adapter.UserLocker,
	resolveLinks *link.ResolveLinksUseCase,
	applyRules *tagrule.ApplyRulesUseCase,
	staleAfter time.Duration,
) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		banking:         banking,
		locker:          locker,
		resolveLinks:    resolveLinks,
		applyRules:      applyRules,
		staleAfter:      staleAfter,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used for staleness checks.
func (uc *ImportTransactionsUseCase) WithClock(now func() time.Time) *ImportTransactionsUseCase {
	uc.now = now
	return uc
}

// Execute runs the import for one user.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrResolverBusy) {
				return nil, domainerror.NewAccountError(
					domainerror.ErrCodeImportInProgress,
					"an import is already running",
					domainerror.ErrImportInProgress,
				)
			}
			return nil, fmt.Errorf("failed to acquire import lock: %w", err)
		}
		defer unlock()
	}

	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	output := &ImportTransactionsOutput{}
	now := uc.now()

	for _, acc := range accounts {
		if !input.Force && !acc.NeedsImport(now, uc.staleAfter) {
			output.AccountsSkipped++
			continue
		}

		if err := uc.importAccount(ctx, acc, input.Force, now, output); err != nil {
			slog.Error("Failed to import account",
				"user_id", input.UserID,
				"account_id", acc.ID,
				"error", err,
			)
			output.AccountsFailed++
			continue
		}
		output.AccountsImported++
	}

	if output.AccountsImported == 0 {
		return output, nil
	}

	if uc.resolveLinks != nil {
		resolved, err := uc.resolveLinks.ExecuteLocked(ctx, link.ResolveLinksInput{UserID: input.UserID})
		if err != nil {
			return nil, fmt.Errorf("failed to resolve links: %w", err)
		}
		output.LinksCreated = len(resolved.Result.Created)
	}

	if uc.applyRules != nil {
		applied, err := uc.applyRules.Execute(ctx, tagrule.ApplyRulesInput{UserID: input.UserID})
		if err != nil {
			return nil, fmt.Errorf("failed to apply rules: %w", err)
		}
		output.Tagged = applied.TransactionsTagged
	}

	slog.Info("Imported transactions",
		"user_id", input.UserID,
		"accounts", output.AccountsImported,
		"inserted", output.Inserted,
		"links", output.LinksCreated,
		"tagged", output.Tagged,
	)
	return output, nil
}

func (uc *ImportTransactionsUseCase) importAccount(
	ctx context.Context,
	acc *entity.Account,
	force bool,
	now time.Time,
	output *ImportTransactionsOutput,
) error {
	var since *time.Time
	if !force && acc.LastImportedAt != nil {
		from := acc.LastImportedAt.Add(-refetchWindow)
		since = &from
	}

	raw, err := uc.banking.FetchTransactions(ctx, acc.ResourceID, since)
	if err != nil {
		return providerError("failed to fetch transactions", err)
	}

	transactions := make([]*entity.Transaction, 0, len(raw))
	for _, r := range raw {
		t, ok := FromRaw(acc, r, now)
		if !ok {
			output.Invalid++
			slog.Warn("Skipping transaction without identifier",
				"account_id", acc.ID,
				"booking_date", r.BookingDate.Format(time.DateOnly),
			)
			continue
		}
		transactions = append(transactions, t)
	}

	result, err := uc.transactionRepo.UpsertBatch(ctx, transactions)
	if err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	output.Inserted += result.Inserted
	output.Duplicates += result.Skipped

	balance, err := uc.banking.FetchBalance(ctx, acc.ResourceID)
	if err != nil {
		return providerError("failed to fetch balance", err)
	}

	if err := uc.accountRepo.MarkImported(ctx, acc.ID, balance, now); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	acc.Balance = balance
	acc.LastImportedAt = &now
	return nil
}

// FromRaw normalizes a provider transaction. The internal id falls back to the
// provider transaction id; a transaction with neither is rejected.
func FromRaw(acc *entity.Account, r adapter.RawTransaction, now time.Time) (*entity.Transaction, bool) {
	internalID := r.InternalID
	if internalID == "" {
		internalID = r.TransactionID
	}
	if internalID == "" {
		return nil, false
	}

	t := &entity.Transaction{
		ID:                  uuid.New(),
		AccountID:           acc.ID,
		UserID:              acc.UserID,
		InternalID:          internalID,
		BookingDate:         r.BookingDate,
		BookedAt:            r.BookedAt,
		Amount:              r.Amount,
		Currency:            r.Currency,
		Reference:           r.Reference,
		BankTransactionCode: r.BankTransactionCode,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if r.TransactionID != "" {
		id := r.TransactionID
		t.ExternalID = &id
	}
	if t.Currency == "" {
		t.Currency = acc.Currency
	}

	// Only the counterparty side matching the sign is kept.
	if r.Amount.IsNegative() {
		t.CreditorName = optional(r.CreditorName)
		t.CreditorAccount = optional(r.CreditorAccount)
	} else {
		t.DebtorName = optional(r.DebtorName)
		t.DebtorAccount = optional(r.DebtorAccount)
	}
	return t, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
