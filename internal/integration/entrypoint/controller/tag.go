package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elliotJHarding/transactions/internal/application/usecase/tag"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// TagController handles tag and category endpoints.
type TagController struct {
	listUseCase           *tag.ListTagsUseCase
	createUseCase         *tag.CreateTagUseCase
	updateUseCase         *tag.UpdateTagUseCase
	deleteUseCase         *tag.DeleteTagUseCase
	listCategoriesUseCase *tag.ListCategoriesUseCase
}

// NewTagController creates a new tag controller instance.
func NewTagController(
	listUseCase *tag.ListTagsUseCase,
	createUseCase *tag.CreateTagUseCase,
	updateUseCase *tag.UpdateTagUseCase,
	deleteUseCase *tag.DeleteTagUseCase,
	listCategoriesUseCase *tag.ListCategoriesUseCase,
) *TagController {
	return &TagController{
		listUseCase:           listUseCase,
		createUseCase:         createUseCase,
		updateUseCase:         updateUseCase,
		deleteUseCase:         deleteUseCase,
		listCategoriesUseCase: listCategoriesUseCase,
	}
}

// List handles GET /tags requests.
func (c *TagController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), tag.ListTagsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagTreeResponses(output.Tags))
}

// Create handles POST /tags requests.
func (c *TagController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	parentID, err := optionalID(req.ParentID)
	if err != nil {
		badRequest(ctx, "Invalid parent ID format")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), tag.CreateTagInput{
		UserID:       userID,
		Name:         req.Name,
		Icon:         req.Icon,
		ParentID:     parentID,
		CategoryCode: req.CategoryCode,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTagResponse(output.Tag))
}

// Update handles PATCH /tags/:id requests.
func (c *TagController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, "tag")
	if !ok {
		return
	}

	var req dto.UpdateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	parentID, err := optionalID(req.ParentID)
	if err != nil {
		badRequest(ctx, "Invalid parent ID format")
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), tag.UpdateTagInput{
		TagID:         tagID,
		UserID:        userID,
		Name:          req.Name,
		Icon:          req.Icon,
		ParentID:      parentID,
		ClearParent:   req.ClearParent,
		CategoryCode:  req.CategoryCode,
		ClearCategory: req.ClearCategory,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTagResponse(output.Tag))
}

// Delete handles DELETE /tags/:id requests.
func (c *TagController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx, "tag")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tag.DeleteTagInput{TagID: tagID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListCategories handles GET /categories requests.
func (c *TagController) ListCategories(ctx *gin.Context) {
	categories, err := c.listCategoriesUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponses(categories))
}
