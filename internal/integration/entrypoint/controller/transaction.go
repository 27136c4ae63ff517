package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/usecase/transaction"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase          *transaction.ListTransactionsUseCase
	assignTagUseCase     *transaction.AssignTagUseCase
	assignHolidayUseCase *transaction.AssignHolidayUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	assignTagUseCase *transaction.AssignTagUseCase,
	assignHolidayUseCase *transaction.AssignHolidayUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:          listUseCase,
		assignTagUseCase:     assignTagUseCase,
		assignHolidayUseCase: assignHolidayUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{UserID: userID}

	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			badRequest(ctx, "Invalid from date. Use YYYY-MM-DD")
			return
		}
		input.StartDate = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			badRequest(ctx, "Invalid to date. Use YYYY-MM-DD")
			return
		}
		input.EndDate = &to
	}
	if accountStr := ctx.Query("account_id"); accountStr != "" {
		accountID, err := uuid.Parse(accountStr)
		if err != nil {
			badRequest(ctx, "Invalid account ID format")
			return
		}
		input.AccountID = &accountID
	}
	if unlinkedStr := ctx.Query("unlinked"); unlinkedStr != "" {
		unlinked, err := strconv.ParseBool(unlinkedStr)
		if err != nil {
			badRequest(ctx, "Invalid unlinked flag")
			return
		}
		input.UnlinkedOnly = unlinked
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// AssignTag handles PATCH /transactions/:id/tag requests.
func (c *TransactionController) AssignTag(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.AssignTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	tagID, err := optionalID(req.TagID)
	if err != nil {
		badRequest(ctx, "Invalid tag ID format")
		return
	}

	output, err := c.assignTagUseCase.Execute(ctx.Request.Context(), transaction.AssignTagInput{
		TransactionID: transactionID,
		UserID:        userID,
		TagID:         tagID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// AssignHoliday handles PATCH /transactions/:id/holiday requests.
func (c *TransactionController) AssignHoliday(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	transactionID, ok := pathID(ctx, "transaction")
	if !ok {
		return
	}

	var req dto.AssignHolidayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	holidayID, err := optionalID(req.HolidayID)
	if err != nil {
		badRequest(ctx, "Invalid holiday ID format")
		return
	}

	output, err := c.assignHolidayUseCase.Execute(ctx.Request.Context(), transaction.AssignHolidayInput{
		TransactionID: transactionID,
		UserID:        userID,
		HolidayID:     holidayID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}
