package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elliotJHarding/transactions/internal/application/usecase/holiday"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// HolidayController handles holiday endpoints.
type HolidayController struct {
	listUseCase      *holiday.ListHolidaysUseCase
	createUseCase    *holiday.CreateHolidayUseCase
	deleteUseCase    *holiday.DeleteHolidayUseCase
	summarizeUseCase *holiday.SummarizeHolidayUseCase
}

// NewHolidayController creates a new holiday controller instance.
func NewHolidayController(
	listUseCase *holiday.ListHolidaysUseCase,
	createUseCase *holiday.CreateHolidayUseCase,
	deleteUseCase *holiday.DeleteHolidayUseCase,
	summarizeUseCase *holiday.SummarizeHolidayUseCase,
) *HolidayController {
	return &HolidayController{
		listUseCase:      listUseCase,
		createUseCase:    createUseCase,
		deleteUseCase:    deleteUseCase,
		summarizeUseCase: summarizeUseCase,
	}
}

// List handles GET /holidays requests.
func (c *HolidayController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), holiday.ListHolidaysInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHolidayYearResponses(output.Years))
}

// Create handles POST /holidays requests.
func (c *HolidayController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateHolidayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start date. Use YYYY-MM-DD")
		return
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end date. Use YYYY-MM-DD")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), holiday.CreateHolidayInput{
		UserID:    userID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToHolidayResponse(output.Holiday))
}

// Delete handles DELETE /holidays/:id requests.
func (c *HolidayController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	holidayID, ok := pathID(ctx, "holiday")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), holiday.DeleteHolidayInput{HolidayID: holidayID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Summary handles GET /holidays/:id/summary requests.
func (c *HolidayController) Summary(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	holidayID, ok := pathID(ctx, "holiday")
	if !ok {
		return
	}

	output, err := c.summarizeUseCase.Execute(ctx.Request.Context(), holiday.SummarizeHolidayInput{
		HolidayID: holidayID,
		UserID:    userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToHolidaySummaryResponse(output.Summary))
}
