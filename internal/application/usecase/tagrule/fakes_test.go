package tagrule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

type fakeTransactionRepo struct {
	transactions []*entity.Transaction
}

func (r *fakeTransactionRepo) UpsertBatch(ctx context.Context, transactions []*entity.Transaction) (*adapter.UpsertResult, error) {
	return &adapter.UpsertResult{}, nil
}

func (r *fakeTransactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range r.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepo) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *fakeTransactionRepo) FindUnlinkedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *fakeTransactionRepo) FindUntaggedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID == userID && t.TagID == nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) UpdateTag(ctx context.Context, id uuid.UUID, tagID *uuid.UUID) error {
	return nil
}

func (r *fakeTransactionRepo) UpdateHoliday(ctx context.Context, id uuid.UUID, holidayID *uuid.UUID) error {
	return nil
}

func (r *fakeTransactionRepo) BulkAssignTags(ctx context.Context, assignments []adapter.TagAssignment) (int64, error) {
	var n int64
	for _, a := range assignments {
		t, err := r.FindByID(ctx, a.TransactionID)
		if err != nil || t.TagID != nil {
			continue
		}
		tagID := a.TagID
		t.TagID = &tagID
		n++
	}
	return n, nil
}

type fakeRuleRepo struct {
	rules []*entity.TagRule
}

func (r *fakeRuleRepo) Create(ctx context.Context, rule *entity.TagRule) error {
	r.rules = append(r.rules, rule)
	return nil
}

func (r *fakeRuleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TagRule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, domainerror.ErrRuleNotFound
}

func (r *fakeRuleRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TagRule, error) {
	var out []*entity.TagRule
	for _, rule := range r.rules {
		if rule.UserID == userID {
			out = append(out, rule)
		}
	}
	return out, nil
}

func (r *fakeRuleRepo) Update(ctx context.Context, rule *entity.TagRule) error {
	return nil
}

func (r *fakeRuleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, rule := range r.rules {
		if rule.ID == id {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrRuleNotFound
}

type fakeTagRepo struct {
	tags []*entity.Tag
}

func (r *fakeTagRepo) Create(ctx context.Context, tag *entity.Tag) error {
	r.tags = append(r.tags, tag)
	return nil
}

func (r *fakeTagRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tag, error) {
	for _, tag := range r.tags {
		if tag.ID == id {
			return tag, nil
		}
	}
	return nil, domainerror.ErrTagNotFound
}

func (r *fakeTagRepo) FindVisibleByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Tag, error) {
	var out []*entity.Tag
	for _, tag := range r.tags {
		if tag.VisibleTo(userID) {
			out = append(out, tag)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Update(ctx context.Context, tag *entity.Tag) error { return nil }

func (r *fakeTagRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeTagRepo) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

func globalTag(name string) *entity.Tag {
	return &entity.Tag{ID: uuid.New(), Name: name}
}

func ruleAt(userID, tagID uuid.UUID, expression string, createdAt time.Time) *entity.TagRule {
	rule := entity.NewTagRule(userID, tagID, expression)
	rule.CreatedAt = createdAt
	return rule
}

func txnWithReference(userID uuid.UUID, reference string) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New(),
		AccountID:   uuid.New(),
		UserID:      userID,
		InternalID:  uuid.NewString(),
		BookingDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-4.20"),
		Reference:   reference,
	}
}
