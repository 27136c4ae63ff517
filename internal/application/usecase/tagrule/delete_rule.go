package tagrule

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
)

// DeleteRuleInput represents the input for rule deletion.
type DeleteRuleInput struct {
	RuleID uuid.UUID
	UserID uuid.UUID
}

// DeleteRuleUseCase handles rule deletion. Tags already assigned by the rule are kept.
type DeleteRuleUseCase struct {
	ruleRepo adapter.TagRuleRepository
}

// NewDeleteRuleUseCase creates a new DeleteRuleUseCase instance.
func NewDeleteRuleUseCase(ruleRepo adapter.TagRuleRepository) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{ruleRepo: ruleRepo}
}

// Execute performs the rule deletion.
func (uc *DeleteRuleUseCase) Execute(ctx context.Context, input DeleteRuleInput) error {
	rule, err := findOwnedRule(ctx, uc.ruleRepo, input.RuleID, input.UserID)
	if err != nil {
		return err
	}

	if err := uc.ruleRepo.Delete(ctx, rule.ID); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}
