package account

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

// CreateRequisitionInput represents the input for starting a bank connection.
type CreateRequisitionInput struct {
	UserID        uuid.UUID
	InstitutionID uuid.UUID
}

// CreateRequisitionOutput carries the link the user follows to grant access.
type CreateRequisitionOutput struct {
	Requisition *entity.Requisition
}

// CreateRequisitionUseCase starts the consent flow for one institution.
type CreateRequisitionUseCase struct {
	institutionRepo adapter.InstitutionRepository
	requisitionRepo adapter.RequisitionRepository
	banking         adapter.BankingClient
}

// NewCreateRequisitionUseCase creates a new CreateRequisitionUseCase instance.
func NewCreateRequisitionUseCase(
	institutionRepo adapter.InstitutionRepository,
	requisitionRepo adapter.RequisitionRepository,
	banking adapter.BankingClient,
) *CreateRequisitionUseCase {
	return &CreateRequisitionUseCase{
		institutionRepo: institutionRepo,
		requisitionRepo: requisitionRepo,
		banking:         banking,
	}
}

// Execute creates the agreement and requisition.
func (uc *CreateRequisitionUseCase) Execute(ctx context.Context, input CreateRequisitionInput) (*CreateRequisitionOutput, error) {
	institution, err := uc.institutionRepo.FindByID(ctx, input.InstitutionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrInstitutionNotFound) {
			return nil, domainerror.NewAccountError(
				domainerror.ErrCodeInstitutionNotFound,
				"institution not found",
				domainerror.ErrInstitutionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find institution: %w", err)
	}

	id := uuid.New()
	remote, err := uc.banking.CreateRequisition(ctx, institution.Code, id.String())
	if err != nil {
		return nil, providerError("failed to create requisition", err)
	}

	now := time.Now().UTC()
	requisition := &entity.Requisition{
		ID:            id,
		UserID:        input.UserID,
		InstitutionID: institution.ID,
		ProviderID:    remote.ID,
		Link:          remote.Link,
		Status:        entity.RequisitionStatus(remote.Status),
		AccountIDs:    remote.AccountIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if requisition.Status == "" {
		requisition.Status = entity.RequisitionStatusCreated
	}

	if err := uc.requisitionRepo.Create(ctx, requisition); err != nil {
		return nil, fmt.Errorf("failed to save requisition: %w", err)
	}

	return &CreateRequisitionOutput{Requisition: requisition}, nil
}
