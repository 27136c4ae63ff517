package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elliotJHarding/transactions/internal/application/usecase/link"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// LinkController handles transfer link endpoints.
type LinkController struct {
	listUseCase    *link.ListLinksUseCase
	resolveUseCase *link.ResolveLinksUseCase
	suggestUseCase *link.SuggestLinksUseCase
}

// NewLinkController creates a new link controller instance.
func NewLinkController(
	listUseCase *link.ListLinksUseCase,
	resolveUseCase *link.ResolveLinksUseCase,
	suggestUseCase *link.SuggestLinksUseCase,
) *LinkController {
	return &LinkController{
		listUseCase:    listUseCase,
		resolveUseCase: resolveUseCase,
		suggestUseCase: suggestUseCase,
	}
}

// List handles GET /links requests.
func (c *LinkController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), link.ListLinksInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLinkResponses(output.Links))
}

// Resolve handles POST /links/resolve requests.
func (c *LinkController) Resolve(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.resolveUseCase.Execute(ctx.Request.Context(), link.ResolveLinksInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToResolveLinksResponse(output.Result))
}

// Suggestions handles GET /links/suggestions requests.
func (c *LinkController) Suggestions(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), link.SuggestLinksInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLinkSuggestionResponses(output.Suggestions))
}
