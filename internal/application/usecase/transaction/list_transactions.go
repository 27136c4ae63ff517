// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID       uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	AccountID    *uuid.UUID
	UnlinkedOnly bool
}

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	Transaction *entity.Transaction
	Linked      bool
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
}

// ListTransactionsUseCase handles listing transactions. It never writes.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
	linkRepo        adapter.LinkRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(
	transactionRepo adapter.TransactionRepository,
	linkRepo adapter.LinkRepository,
) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
		linkRepo:        linkRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidDateRange,
			"from date must not be after to date",
			domainerror.ErrInvalidDateRange,
		)
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:       input.UserID,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		AccountID:    input.AccountID,
		UnlinkedOnly: input.UnlinkedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	linked, err := uc.linkRepo.LinkedTransactionIDs(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked transactions: %w", err)
	}

	output := &ListTransactionsOutput{Transactions: make([]*TransactionOutput, 0, len(transactions))}
	for _, t := range transactions {
		_, isLinked := linked[t.ID]
		output.Transactions = append(output.Transactions, &TransactionOutput{
			Transaction: t,
			Linked:      isLinked,
		})
	}
	return output, nil
}

func findOwnedTransaction(ctx context.Context, transactionRepo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := transactionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if transaction.UserID != userID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}
	return transaction, nil
}
