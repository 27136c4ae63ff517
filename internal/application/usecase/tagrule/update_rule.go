package tagrule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// UpdateRuleInput represents the input for rule update.
type UpdateRuleInput struct {
	RuleID     uuid.UUID
	UserID     uuid.UUID
	TagID      *uuid.UUID
	Expression *string
}

// UpdateRuleOutput represents the output of rule update.
type UpdateRuleOutput struct {
	Rule               *entity.TagRule
	TransactionsTagged int64
}

// UpdateRuleUseCase handles rule update logic. Existing tags set by the old
// version of the rule stay in place.
type UpdateRuleUseCase struct {
	ruleRepo   adapter.TagRuleRepository
	tagRepo    adapter.TagRepository
	applyRules *ApplyRulesUseCase
}

// NewUpdateRuleUseCase creates a new UpdateRuleUseCase instance.
func NewUpdateRuleUseCase(
	ruleRepo adapter.TagRuleRepository,
	tagRepo adapter.TagRepository,
	applyRules *ApplyRulesUseCase,
) *UpdateRuleUseCase {
	return &UpdateRuleUseCase{
		ruleRepo:   ruleRepo,
		tagRepo:    tagRepo,
		applyRules: applyRules,
	}
}

// Execute performs the rule update.
func (uc *UpdateRuleUseCase) Execute(ctx context.Context, input UpdateRuleInput) (*UpdateRuleOutput, error) {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Expression != nil {
		expression, err := validateExpression(*input.Expression)
		if err != nil {
			return nil, err
		}
		rule.Expression = expression
	}

	if input.TagID != nil {
		if err := ensureTagVisible(ctx, uc.tagRepo, *input.TagID, input.UserID); err != nil {
			return nil, err
		}
		rule.TagID = *input.TagID
	}

	rule.UpdatedAt = time.Now().UTC()
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to update rule: %w", err)
	}

	output := &UpdateRuleOutput{Rule: rule}
	if uc.applyRules != nil {
		applied, err := uc.applyRules.Execute(ctx, ApplyRulesInput{UserID: input.UserID})
		if err != nil {
			slog.Error("Failed to apply rules after update",
				"user_id", input.UserID,
				"rule_id", rule.ID,
				"error", err,
			)
		} else {
			output.TransactionsTagged = applied.TransactionsTagged
		}
	}

	return output, nil
}

func findOwnedRule(ctx context.Context, ruleRepo adapter.TagRuleRepository, ruleID, userID uuid.UUID) (*entity.TagRule, error) {
	rule, err := ruleRepo.FindByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, domainerror.ErrRuleNotFound) {
			return nil, domainerror.NewRuleError(
				domainerror.ErrCodeRuleNotFound,
				"rule not found",
				domainerror.ErrRuleNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find rule: %w", err)
	}

	// Foreign rules look the same as missing ones.
	if rule.UserID != userID {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleNotFound,
			"rule not found",
			domainerror.ErrRuleNotFound,
		)
	}
	return rule, nil
}
