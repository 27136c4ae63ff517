package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/usecase/tagrule"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

// RuleController handles tag rule endpoints.
type RuleController struct {
	listUseCase   *tagrule.ListRulesUseCase
	createUseCase *tagrule.CreateRuleUseCase
	updateUseCase *tagrule.UpdateRuleUseCase
	deleteUseCase *tagrule.DeleteRuleUseCase
	applyUseCase  *tagrule.ApplyRulesUseCase
}

// NewRuleController creates a new rule controller instance.
func NewRuleController(
	listUseCase *tagrule.ListRulesUseCase,
	createUseCase *tagrule.CreateRuleUseCase,
	updateUseCase *tagrule.UpdateRuleUseCase,
	deleteUseCase *tagrule.DeleteRuleUseCase,
	applyUseCase *tagrule.ApplyRulesUseCase,
) *RuleController {
	return &RuleController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		applyUseCase:  applyUseCase,
	}
}

// List handles GET /rules requests.
func (c *RuleController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), tagrule.ListRulesInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRuleResponses(output.Rules))
}

// Create handles POST /rules requests.
func (c *RuleController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	tagID, err := uuid.Parse(req.TagID)
	if err != nil {
		badRequest(ctx, "Invalid tag ID format")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), tagrule.CreateRuleInput{
		UserID:     userID,
		TagID:      tagID,
		Expression: req.Expression,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.RuleMutationResponse{
		Rule:               dto.ToRuleResponse(output.Rule),
		TransactionsTagged: output.TransactionsTagged,
	})
}

// Update handles PATCH /rules/:id requests.
func (c *RuleController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := pathID(ctx, "rule")
	if !ok {
		return
	}

	var req dto.UpdateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body")
		return
	}
	tagID, err := optionalID(req.TagID)
	if err != nil {
		badRequest(ctx, "Invalid tag ID format")
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), tagrule.UpdateRuleInput{
		RuleID:     ruleID,
		UserID:     userID,
		TagID:      tagID,
		Expression: req.Expression,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.RuleMutationResponse{
		Rule:               dto.ToRuleResponse(output.Rule),
		TransactionsTagged: output.TransactionsTagged,
	})
}

// Delete handles DELETE /rules/:id requests.
func (c *RuleController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	ruleID, ok := pathID(ctx, "rule")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), tagrule.DeleteRuleInput{RuleID: ruleID, UserID: userID}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Apply handles POST /rules/apply requests.
func (c *RuleController) Apply(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.applyUseCase.Execute(ctx.Request.Context(), tagrule.ApplyRulesInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ApplyRulesResponse{TransactionsTagged: output.TransactionsTagged})
}
