package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elliotJHarding/transactions/internal/application/usecase/report"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	getReportsUseCase *report.GetReportsUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(getReportsUseCase *report.GetReportsUseCase) *ReportController {
	return &ReportController{
		getReportsUseCase: getReportsUseCase,
	}
}

// Get handles GET /reports requests.
// Query: year (optional) and refresh (default true) to run the tag rules first.
func (c *ReportController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	input := report.GetReportsInput{UserID: userID, Backfill: true}

	if yearStr := ctx.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			badRequest(ctx, "Invalid year")
			return
		}
		input.Year = &year
	}
	if refreshStr := ctx.Query("refresh"); refreshStr != "" {
		refresh, err := strconv.ParseBool(refreshStr)
		if err != nil {
			badRequest(ctx, "Invalid refresh flag")
			return
		}
		input.Backfill = refresh
	}

	output, err := c.getReportsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportsResponse(output.Reports))
}
