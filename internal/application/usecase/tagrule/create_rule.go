package tagrule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

const (
	// MaxExpressionLength is the maximum allowed length for rule expressions.
	MaxExpressionLength = 255
)

// CreateRuleInput represents the input for rule creation.
type CreateRuleInput struct {
	UserID     uuid.UUID
	TagID      uuid.UUID
	Expression string
}

// CreateRuleOutput represents the output of rule creation.
type CreateRuleOutput struct {
	Rule               *entity.TagRule
	TransactionsTagged int64
}

// CreateRuleUseCase handles rule creation logic.
type CreateRuleUseCase struct {
	ruleRepo   adapter.TagRuleRepository
	tagRepo    adapter.TagRepository
	applyRules *ApplyRulesUseCase
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(
	ruleRepo adapter.TagRuleRepository,
	tagRepo adapter.TagRepository,
	applyRules *ApplyRulesUseCase,
) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo:   ruleRepo,
		tagRepo:    tagRepo,
		applyRules: applyRules,
	}
}

// Execute creates the rule and backfills the user's untagged transactions.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	expression, err := validateExpression(input.Expression)
	if err != nil {
		return nil, err
	}

	if err := ensureTagVisible(ctx, uc.tagRepo, input.TagID, input.UserID); err != nil {
		return nil, err
	}

	rule := entity.NewTagRule(input.UserID, input.TagID, expression)
	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, fmt.Errorf("failed to create rule: %w", err)
	}

	output := &CreateRuleOutput{Rule: rule}

	if uc.applyRules != nil {
		applied, err := uc.applyRules.Execute(ctx, ApplyRulesInput{UserID: input.UserID})
		if err != nil {
			// The rule is saved; the next backfill picks it up.
			slog.Error("Failed to apply rules after create",
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

func validateExpression(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", domainerror.NewRuleError(
			domainerror.ErrCodeRuleExpressionRequired,
			"expression is required",
			domainerror.ErrRuleExpressionRequired,
		)
	}
	if len(expression) > MaxExpressionLength {
		return "", domainerror.NewRuleError(
			domainerror.ErrCodeRuleExpressionTooLong,
			fmt.Sprintf("expression must not exceed %d characters", MaxExpressionLength),
			domainerror.ErrRuleExpressionTooLong,
		)
	}
	return expression, nil
}

func ensureTagVisible(ctx context.Context, tagRepo adapter.TagRepository, tagID, userID uuid.UUID) error {
	tag, err := tagRepo.FindByID(ctx, tagID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTagNotFound) {
			return domainerror.NewRuleError(
				domainerror.ErrCodeRuleTagNotFound,
				"tag not found",
				domainerror.ErrTagNotFound,
			)
		}
		return fmt.Errorf("failed to find tag: %w", err)
	}
	if !tag.VisibleTo(userID) {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleTagNotFound,
			"tag not found",
			domainerror.ErrTagNotFound,
		)
	}
	return nil
}
