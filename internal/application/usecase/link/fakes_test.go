package link

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// memoryStore is an in-memory transaction and link store for use case tests.
type memoryStore struct {
	mu           sync.Mutex
	transactions []*entity.Transaction
	links        []*entity.TransferLink
	createErr    error
}

func (s *memoryStore) linked() map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{})
	for _, l := range s.links {
		out[l.FromTransactionID] = struct{}{}
		out[l.ToTransactionID] = struct{}{}
	}
	return out
}

func (s *memoryStore) UpsertBatch(ctx context.Context, transactions []*entity.Transaction) (*adapter.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append(s.transactions, transactions...)
	return &adapter.UpsertResult{Inserted: len(transactions)}, nil
}

func (s *memoryStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (s *memoryStore) FindByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	for _, t := range s.transactions {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *memoryStore) FindUnlinkedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	linked := s.linked()
	var out []*entity.Transaction
	for _, t := range s.transactions {
		if _, ok := linked[t.ID]; ok || t.UserID != userID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *memoryStore) FindUntaggedByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (s *memoryStore) UpdateTag(ctx context.Context, id uuid.UUID, tagID *uuid.UUID) error {
	return nil
}

func (s *memoryStore) UpdateHoliday(ctx context.Context, id uuid.UUID, holidayID *uuid.UUID) error {
	return nil
}

func (s *memoryStore) BulkAssignTags(ctx context.Context, assignments []adapter.TagAssignment) (int64, error) {
	return 0, nil
}

func (s *memoryStore) Create(ctx context.Context, link *entity.TransferLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	linked := s.linked()
	if _, ok := linked[link.FromTransactionID]; ok {
		return domainerror.ErrDuplicateLink
	}
	if _, ok := linked[link.ToTransactionID]; ok {
		return domainerror.ErrDuplicateLink
	}
	s.links = append(s.links, link)
	return nil
}

func (s *memoryStore) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.TransferLinkWithLegs, error) {
	var out []*entity.TransferLinkWithLegs
	for _, l := range s.links {
		from, _ := s.FindByID(ctx, l.FromTransactionID)
		to, _ := s.FindByID(ctx, l.ToTransactionID)
		if from == nil || from.UserID != userID {
			continue
		}
		out = append(out, &entity.TransferLinkWithLegs{Link: l, From: from, To: to})
	}
	return out, nil
}

func (s *memoryStore) LinkedTransactionIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	return s.linked(), nil
}

// linkCount returns how many links reference the transaction.
func (s *memoryStore) linkCount(id uuid.UUID) int {
	n := 0
	for _, l := range s.links {
		if l.Involves(id) {
			n++
		}
	}
	return n
}

type busyLocker struct{}

func (busyLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	return nil, domainerror.ErrResolverBusy
}

func newTxn(userID, accountID uuid.UUID, day string, amount string, reference string) *entity.Transaction {
	date, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return &entity.Transaction{
		ID:          uuid.New(),
		AccountID:   accountID,
		UserID:      userID,
		InternalID:  uuid.NewString(),
		BookingDate: date,
		Amount:      decimal.RequireFromString(amount),
		Currency:    "GBP",
		Reference:   reference,
	}
}
