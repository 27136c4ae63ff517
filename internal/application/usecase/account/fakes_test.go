package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

var errProvider = errors.New("provider unavailable")

type fakeAccountRepo struct {
	accounts []*entity.Account
	imported map[uuid.UUID]decimal.Decimal
}

func (r *fakeAccountRepo) Upsert(ctx context.Context, account *entity.Account) error {
	for i, a := range r.accounts {
		if a.ResourceID == account.ResourceID {
			account.ID = a.ID
			r.accounts[i] = account
			return nil
		}
	}
	r.accounts = append(r.accounts, account)
	return nil
}

func (r *fakeAccountRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	for _, a := range r.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domainerror.ErrAccountNotFound
}

func (r *fakeAccountRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) FindUsersWithStaleAccounts(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error) {
	return nil, nil
}

func (r *fakeAccountRepo) MarkImported(ctx context.Context, id uuid.UUID, balance decimal.Decimal, importedAt time.Time) error {
	if r.imported == nil {
		r.imported = make(map[uuid.UUID]decimal.Decimal)
	}
	r.imported[id] = balance
	return nil
}

type fakeTransactionRepo struct {
	adapter.TransactionRepository
	saved map[string]*entity.Transaction
}

func (r *fakeTransactionRepo) UpsertBatch(ctx context.Context, transactions []*entity.Transaction) (*adapter.UpsertResult, error) {
	if r.saved == nil {
		r.saved = make(map[string]*entity.Transaction)
	}
	result := &adapter.UpsertResult{}
	for _, t := range transactions {
		if _, ok := r.saved[t.InternalID]; ok {
			result.Skipped++
			continue
		}
		r.saved[t.InternalID] = t
		result.Inserted++
	}
	return result, nil
}

type fakeInstitutionRepo struct {
	institutions []*entity.Institution
}

func (r *fakeInstitutionRepo) UpsertByCode(ctx context.Context, institutions []*entity.Institution) error {
	for _, in := range institutions {
		found := false
		for _, existing := range r.institutions {
			if existing.Code == in.Code {
				existing.Name = in.Name
				existing.LogoURL = in.LogoURL
				found = true
			}
		}
		if !found {
			r.institutions = append(r.institutions, in)
		}
	}
	return nil
}

func (r *fakeInstitutionRepo) FindAll(ctx context.Context) ([]*entity.Institution, error) {
	return r.institutions, nil
}

func (r *fakeInstitutionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Institution, error) {
	for _, in := range r.institutions {
		if in.ID == id {
			return in, nil
		}
	}
	return nil, domainerror.ErrInstitutionNotFound
}

func (r *fakeInstitutionRepo) FindByCode(ctx context.Context, code string) (*entity.Institution, error) {
	for _, in := range r.institutions {
		if in.Code == code {
			return in, nil
		}
	}
	return nil, domainerror.ErrInstitutionNotFound
}

type fakeRequisitionRepo struct {
	requisitions []*entity.Requisition
}

func (r *fakeRequisitionRepo) Create(ctx context.Context, requisition *entity.Requisition) error {
	r.requisitions = append(r.requisitions, requisition)
	return nil
}

func (r *fakeRequisitionRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Requisition, error) {
	var out []*entity.Requisition
	for _, req := range r.requisitions {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequisitionRepo) Update(ctx context.Context, requisition *entity.Requisition) error {
	return nil
}

type fakeBanking struct {
	institutions []adapter.ProviderInstitution
	requisitions map[string]*adapter.ProviderRequisition
	details      map[string]*adapter.ProviderAccount
	transactions map[string][]adapter.RawTransaction
	balances     map[string]decimal.Decimal
	failFor      map[string]bool
	since        map[string]*time.Time
}

func (b *fakeBanking) ListInstitutions(ctx context.Context) ([]adapter.ProviderInstitution, error) {
	return b.institutions, nil
}

func (b *fakeBanking) CreateRequisition(ctx context.Context, institutionCode, reference string) (*adapter.ProviderRequisition, error) {
	if b.failFor[institutionCode] {
		return nil, errProvider
	}
	return &adapter.ProviderRequisition{
		ID:     "req-" + institutionCode,
		Link:   "https://bank.example/consent/" + reference,
		Status: "CR",
	}, nil
}

func (b *fakeBanking) GetRequisition(ctx context.Context, requisitionID string) (*adapter.ProviderRequisition, error) {
	req, ok := b.requisitions[requisitionID]
	if !ok {
		return nil, errProvider
	}
	return req, nil
}

func (b *fakeBanking) GetAccountDetails(ctx context.Context, resourceID string) (*adapter.ProviderAccount, error) {
	d, ok := b.details[resourceID]
	if !ok {
		return nil, errProvider
	}
	return d, nil
}

func (b *fakeBanking) FetchTransactions(ctx context.Context, resourceID string, since *time.Time) ([]adapter.RawTransaction, error) {
	if b.failFor[resourceID] {
		return nil, errProvider
	}
	if b.since == nil {
		b.since = make(map[string]*time.Time)
	}
	b.since[resourceID] = since
	return b.transactions[resourceID], nil
}

func (b *fakeBanking) FetchBalance(ctx context.Context, resourceID string) (decimal.Decimal, error) {
	return b.balances[resourceID], nil
}

type busyLocker struct{}

func (busyLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	return nil, domainerror.ErrResolverBusy
}

func raw(id string, day string, amount string, ref string) adapter.RawTransaction {
	date, _ := time.Parse(time.DateOnly, day)
	return adapter.RawTransaction{
		TransactionID: id,
		InternalID:    "int-" + id,
		BookingDate:   date,
		Amount:        decimal.RequireFromString(amount),
		Currency:      "GBP",
		Reference:     ref,
	}
}
