package tagrule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

func TestApplyRules(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	groceries := globalTag("Groceries")
	convenience := globalTag("Convenience")
	live := map[uuid.UUID]struct{}{groceries.ID: {}, convenience.ID: {}}

	t.Run("first matching rule wins", func(t *testing.T) {
		rules := []*entity.TagRule{
			ruleAt(userID, convenience.ID, "tesco express", base.Add(time.Hour)),
			ruleAt(userID, groceries.ID, "tesco", base),
		}
		txn := txnWithReference(userID, "TESCO EXPRESS LONDON")

		got := ApplyRules([]*entity.Transaction{txn}, rules, live)
		if len(got) != 1 {
			t.Fatalf("expected 1 assignment, got %d", len(got))
		}
		if got[0].TagID != groceries.ID {
			t.Errorf("expected Groceries, got %s", got[0].TagID)
		}
	})

	t.Run("never overwrites an existing tag", func(t *testing.T) {
		rules := []*entity.TagRule{ruleAt(userID, groceries.ID, "tesco", base)}
		txn := txnWithReference(userID, "TESCO")
		existing := convenience.ID
		txn.TagID = &existing

		if got := ApplyRules([]*entity.Transaction{txn}, rules, live); len(got) != 0 {
			t.Errorf("expected no assignment, got %d", len(got))
		}
	})

	t.Run("no match leaves untagged", func(t *testing.T) {
		rules := []*entity.TagRule{ruleAt(userID, groceries.ID, "sainsbury", base)}
		txn := txnWithReference(userID, "TESCO")

		if got := ApplyRules([]*entity.Transaction{txn}, rules, live); len(got) != 0 {
			t.Errorf("expected no assignment, got %d", len(got))
		}
	})

	t.Run("rule for deleted tag is inert", func(t *testing.T) {
		rules := []*entity.TagRule{
			ruleAt(userID, uuid.New(), "tesco", base),
			ruleAt(userID, convenience.ID, "tesco", base.Add(time.Minute)),
		}
		txn := txnWithReference(userID, "Tesco Metro")

		got := ApplyRules([]*entity.Transaction{txn}, rules, live)
		if len(got) != 1 || got[0].TagID != convenience.ID {
			t.Errorf("expected fallthrough to Convenience, got %+v", got)
		}
	})

	t.Run("empty expression never matches", func(t *testing.T) {
		rules := []*entity.TagRule{ruleAt(userID, groceries.ID, "", base)}
		txn := txnWithReference(userID, "anything")

		if got := ApplyRules([]*entity.Transaction{txn}, rules, live); len(got) != 0 {
			t.Errorf("expected no assignment, got %d", len(got))
		}
	})
}

func TestApplyRulesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	groceries := globalTag("Groceries")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("writes assignments back", func(t *testing.T) {
		txn := txnWithReference(userID, "TESCO STORES 1234")
		other := txnWithReference(userID, "NETFLIX")
		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{txn, other}}
		ruleRepo := &fakeRuleRepo{rules: []*entity.TagRule{ruleAt(userID, groceries.ID, "tesco", base)}}
		tagRepo := &fakeTagRepo{tags: []*entity.Tag{groceries}}

		output, err := NewApplyRulesUseCase(txRepo, ruleRepo, tagRepo).Execute(ctx, ApplyRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.TransactionsTagged != 1 {
			t.Errorf("expected 1 tagged, got %d", output.TransactionsTagged)
		}
		if txn.TagID == nil || *txn.TagID != groceries.ID {
			t.Error("expected transaction tagged Groceries")
		}
		if other.TagID != nil {
			t.Error("expected other transaction untouched")
		}
	})

	t.Run("ignores another user's rules", func(t *testing.T) {
		txn := txnWithReference(userID, "TESCO")
		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{txn}}
		ruleRepo := &fakeRuleRepo{rules: []*entity.TagRule{ruleAt(uuid.New(), groceries.ID, "tesco", base)}}
		tagRepo := &fakeTagRepo{tags: []*entity.Tag{groceries}}

		output, err := NewApplyRulesUseCase(txRepo, ruleRepo, tagRepo).Execute(ctx, ApplyRulesInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.TransactionsTagged != 0 {
			t.Errorf("expected 0 tagged, got %d", output.TransactionsTagged)
		}
	})
}

func TestCreateRuleUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates rule and backfills", func(t *testing.T) {
		groceries := globalTag("Groceries")
		txn := txnWithReference(userID, "Tesco Extra")
		txRepo := &fakeTransactionRepo{transactions: []*entity.Transaction{txn}}
		ruleRepo := &fakeRuleRepo{}
		tagRepo := &fakeTagRepo{tags: []*entity.Tag{groceries}}
		apply := NewApplyRulesUseCase(txRepo, ruleRepo, tagRepo)

		output, err := NewCreateRuleUseCase(ruleRepo, tagRepo, apply).Execute(ctx, CreateRuleInput{
			UserID:     userID,
			TagID:      groceries.ID,
			Expression: "  tesco ",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Rule.Expression != "tesco" {
			t.Errorf("expected trimmed expression, got %q", output.Rule.Expression)
		}
		if output.TransactionsTagged != 1 {
			t.Errorf("expected 1 tagged, got %d", output.TransactionsTagged)
		}
	})

	t.Run("rejects empty expression", func(t *testing.T) {
		tagRepo := &fakeTagRepo{tags: []*entity.Tag{globalTag("Groceries")}}
		_, err := NewCreateRuleUseCase(&fakeRuleRepo{}, tagRepo, nil).Execute(ctx, CreateRuleInput{
			UserID:     userID,
			TagID:      tagRepo.tags[0].ID,
			Expression: "   ",
		})

		var ruleErr *domainerror.RuleError
		if !errors.As(err, &ruleErr) || ruleErr.Code != domainerror.ErrCodeRuleExpressionRequired {
			t.Errorf("expected expression required error, got %v", err)
		}
	})

	t.Run("rejects another user's tag", func(t *testing.T) {
		owner := uuid.New()
		private := entity.NewTag(owner, "Private", "", nil, nil)
		tagRepo := &fakeTagRepo{tags: []*entity.Tag{private}}

		_, err := NewCreateRuleUseCase(&fakeRuleRepo{}, tagRepo, nil).Execute(ctx, CreateRuleInput{
			UserID:     userID,
			TagID:      private.ID,
			Expression: "x",
		})
		if !errors.Is(err, domainerror.ErrTagNotFound) {
			t.Errorf("expected ErrTagNotFound, got %v", err)
		}
	})
}

func TestDeleteRuleUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	rule := entity.NewTagRule(uuid.New(), uuid.New(), "tesco")
	ruleRepo := &fakeRuleRepo{rules: []*entity.TagRule{rule}}

	err := NewDeleteRuleUseCase(ruleRepo).Execute(ctx, DeleteRuleInput{RuleID: rule.ID, UserID: userID})
	if !errors.Is(err, domainerror.ErrRuleNotFound) {
		t.Errorf("expected ErrRuleNotFound for foreign rule, got %v", err)
	}
	if len(ruleRepo.rules) != 1 {
		t.Error("expected foreign rule to survive")
	}
}
