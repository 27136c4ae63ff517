package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// AssignTagInput represents the input for manual tag assignment.
// A nil TagID clears the tag.
type AssignTagInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	TagID         *uuid.UUID
}

// AssignTagOutput represents the output of manual tag assignment.
type AssignTagOutput struct {
	Transaction *entity.Transaction
}

// AssignTagUseCase handles manual tag assignment. Manual assignment replaces
// any tag, including one set by a rule.
type AssignTagUseCase struct {
	transactionRepo adapter.TransactionRepository
	tagRepo         adapter.TagRepository
}

// NewAssignTagUseCase creates a new AssignTagUseCase instance.
func NewAssignTagUseCase(transactionRepo adapter.TransactionRepository, tagRepo adapter.TagRepository) *AssignTagUseCase {
	return &AssignTagUseCase{
		transactionRepo: transactionRepo,
		tagRepo:         tagRepo,
	}
}

// Execute performs the assignment.
func (uc *AssignTagUseCase) Execute(ctx context.Context, input AssignTagInput) (*AssignTagOutput, error) {
	transaction, err := findOwnedTransaction(ctx, uc.transactionRepo, input.TransactionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.TagID != nil {
		tag, err := uc.tagRepo.FindByID(ctx, *input.TagID)
		if err != nil && !errors.Is(err, domainerror.ErrTagNotFound) {
			return nil, fmt.Errorf("failed to find tag: %w", err)
		}
		if tag == nil || !tag.VisibleTo(input.UserID) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTxnTagNotFound,
				"tag not found",
				domainerror.ErrTagNotFound,
			)
		}
	}

	if err := uc.transactionRepo.UpdateTag(ctx, transaction.ID, input.TagID); err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	transaction.TagID = input.TagID

	return &AssignTagOutput{Transaction: transaction}, nil
}
