package tagrule

import (
	"context"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// ListRulesInput represents the input for listing rules.
type ListRulesInput struct {
	UserID uuid.UUID
}

// RuleOutput is a rule with the name of its tag. TagName is empty when the
// tag no longer exists, in which case the rule never matches.
type RuleOutput struct {
	Rule    *entity.TagRule
	TagName string
	Inert   bool
}

// ListRulesOutput represents the output of listing rules, in evaluation order.
type ListRulesOutput struct {
	Rules []*RuleOutput
}

// ListRulesUseCase handles listing rules.
type ListRulesUseCase struct {
	ruleRepo adapter.TagRuleRepository
	tagRepo  adapter.TagRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.TagRuleRepository, tagRepo adapter.TagRepository) *ListRulesUseCase {
	return &ListRulesUseCase{
		ruleRepo: ruleRepo,
		tagRepo:  tagRepo,
	}
}

// Execute lists the rules.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(tags))
	for _, tag := range tags {
		names[tag.ID] = tag.Name
	}

	output := &ListRulesOutput{Rules: make([]*RuleOutput, 0, len(rules))}
	for _, rule := range OrderRules(rules) {
		name, ok := names[rule.TagID]
		output.Rules = append(output.Rules, &RuleOutput{
			Rule:    rule,
			TagName: name,
			Inert:   !ok,
		})
	}
	return output, nil
}
