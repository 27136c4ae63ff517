package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/usecase/account"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// AccountController handles institution, bank link, account and import endpoints.
type AccountController struct {
	listInstitutionsUseCase  *account.ListInstitutionsUseCase
	syncInstitutionsUseCase  *account.SyncInstitutionsUseCase
	createRequisitionUseCase *account.CreateRequisitionUseCase
	listAccountsUseCase      *account.ListAccountsUseCase
	syncAccountsUseCase      *account.SyncAccountsUseCase
	importUseCase            *account.ImportTransactionsUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	listInstitutionsUseCase *account.ListInstitutionsUseCase,
	syncInstitutionsUseCase *account.SyncInstitutionsUseCase,
	createRequisitionUseCase *account.CreateRequisitionUseCase,
	listAccountsUseCase *account.ListAccountsUseCase,
	syncAccountsUseCase *account.SyncAccountsUseCase,
	importUseCase *account.ImportTransactionsUseCase,
) *AccountController {
	return &AccountController{
		listInstitutionsUseCase:  listInstitutionsUseCase,
		syncInstitutionsUseCase:  syncInstitutionsUseCase,
		createRequisitionUseCase: createRequisitionUseCase,
		listAccountsUseCase:      listAccountsUseCase,
		syncAccountsUseCase:      syncAccountsUseCase,
		importUseCase:            importUseCase,
	}
}

// ListInstitutions handles GET /institutions requests.
func (c *AccountController) ListInstitutions(ctx *gin.Context) {
	institutions, err := c.listInstitutionsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInstitutionResponses(institutions))
}

// SyncInstitutions handles POST /institutions/sync requests.
func (c *AccountController) SyncInstitutions(ctx *gin.Context) {
	output, err := c.syncInstitutionsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncInstitutionsResponse{Synced: output.Synced})
}

// CreateRequisition handles POST /requisitions requests.
func (c *AccountController) CreateRequisition(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRequisitionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	institutionID, err := uuid.Parse(req.InstitutionID)
	if err != nil {
		badRequest(ctx, "Invalid institution ID format")
		return
	}

	output, err := c.createRequisitionUseCase.Execute(ctx.Request.Context(), account.CreateRequisitionInput{
		UserID:        userID,
		InstitutionID: institutionID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRequisitionResponse(output.Requisition))
}

// ListAccounts handles GET /accounts requests.
func (c *AccountController) ListAccounts(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	accounts, err := c.listAccountsUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// SyncAccounts handles POST /accounts/sync requests.
func (c *AccountController) SyncAccounts(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.syncAccountsUseCase.Execute(ctx.Request.Context(), account.SyncAccountsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SyncAccountsResponse{
		Accounts: dto.ToAccountResponses(output.Accounts),
		Pending:  output.Pending,
	})
}

// Import handles POST /import requests. The body is optional.
func (c *AccountController) Import(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.ImportRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body")
			return
		}
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), account.ImportTransactionsInput{
		UserID: userID,
		Force:  req.Force,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportResponse(output))
}
