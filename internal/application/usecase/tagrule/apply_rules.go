// Package tagrule contains tag rule use cases, including the rule backfill.
package tagrule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
)

// ApplyRules picks a tag for every untagged transaction: the tag of the first
// rule, in creation order, whose expression occurs in the reference. Tagged
// transactions are left alone. Rules whose tag is not in liveTags are skipped.
func ApplyRules(
	transactions []*entity.Transaction,
	rules []*entity.TagRule,
	liveTags map[uuid.UUID]struct{},
) []adapter.TagAssignment {
	ordered := OrderRules(rules)

	var assignments []adapter.TagAssignment
	for _, t := range transactions {
		if t.IsTagged() {
			continue
		}
		for _, rule := range ordered {
			if _, ok := liveTags[rule.TagID]; !ok {
				continue
			}
			if rule.Matches(t.Reference) {
				assignments = append(assignments, adapter.TagAssignment{
					TransactionID: t.ID,
					TagID:         rule.TagID,
				})
				break
			}
		}
	}
	return assignments
}

// OrderRules returns the rules sorted by creation time, ties broken by ID.
func OrderRules(rules []*entity.TagRule) []*entity.TagRule {
	ordered := make([]*entity.TagRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
		}
		return ordered[i].ID.String() < ordered[j].ID.String()
	})
	return ordered
}

// ApplyRulesInput represents the input for the rule backfill.
type ApplyRulesInput struct {
	UserID uuid.UUID
}

// ApplyRulesOutput represents the output of the rule backfill.
type ApplyRulesOutput struct {
	TransactionsTagged int64
}

// ApplyRulesUseCase writes rule-chosen tags to the user's untagged transactions.
type ApplyRulesUseCase struct {
	transactionRepo adapter.TransactionRepository
	ruleRepo        adapter.TagRuleRepository
	tagRepo         adapter.TagRepository
}

// NewApplyRulesUseCase creates a new ApplyRulesUseCase instance.
func NewApplyRulesUseCase(
	transactionRepo adapter.TransactionRepository,
	ruleRepo adapter.TagRuleRepository,
	tagRepo adapter.TagRepository,
) *ApplyRulesUseCase {
	return &ApplyRulesUseCase{
		transactionRepo: transactionRepo,
		ruleRepo:        ruleRepo,
		tagRepo:         tagRepo,
	}
}

// Execute runs the backfill.
func (uc *ApplyRulesUseCase) Execute(ctx context.Context, input ApplyRulesInput) (*ApplyRulesOutput, error) {
	rules, err := uc.ruleRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}
	if len(rules) == 0 {
		return &ApplyRulesOutput{}, nil
	}

	tags, err := uc.tagRepo.FindVisibleByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	liveTags := make(map[uuid.UUID]struct{}, len(tags))
	for _, tag := range tags {
		liveTags[tag.ID] = struct{}{}
	}

	untagged, err := uc.transactionRepo.FindUntaggedByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load untagged transactions: %w", err)
	}

	assignments := ApplyRules(untagged, rules, liveTags)
	if len(assignments) == 0 {
		return &ApplyRulesOutput{}, nil
	}

	updated, err := uc.transactionRepo.BulkAssignTags(ctx, assignments)
	if err != nil {
		return nil, fmt.Errorf("failed to save tag assignments: %w", err)
	}

	slog.Info("Applied tag rules",
		"user_id", input.UserID,
		"rules", len(rules),
		"tagged", updated,
	)

	return &ApplyRulesOutput{TransactionsTagged: updated}, nil
}
