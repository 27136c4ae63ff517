package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

func TestImportTransactionsUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	newFixture := func() (*fakeAccountRepo, *fakeTransactionRepo, *fakeBanking, *entity.Account, *entity.Account) {
		fresh := entity.NewAccount(userID, nil, "res-fresh", "Savings")
		recent := now.Add(-time.Hour)
		fresh.LastImportedAt = &recent

		stale := entity.NewAccount(userID, nil, "res-stale", "Current")
		old := now.Add(-7 * time.Hour)
		stale.LastImportedAt = &old

		accounts := &fakeAccountRepo{accounts: []*entity.Account{fresh, stale}}
		txns := &fakeTransactionRepo{}
		banking := &fakeBanking{
			transactions: map[string][]adapter.RawTransaction{
				"res-stale": {
					raw("a", "2024-03-09", "-12.50", "TESCO"),
					raw("b", "2024-03-09", "100.00", "SALARY"),
				},
				"res-fresh": {raw("c", "2024-03-09", "-1.00", "COFFEE")},
			},
			balances: map[string]decimal.Decimal{
				"res-stale": decimal.RequireFromString("87.50"),
				"res-fresh": decimal.RequireFromString("10.00"),
			},
		}
		return accounts, txns, banking, fresh, stale
	}

	t.Run("imports only stale accounts", func(t *testing.T) {
		accounts, txns, banking, fresh, stale := newFixture()
		uc := NewImportTransactionsUseCase(accounts, txns, banking, nil, nil, nil, 6*time.Hour).
			WithClock(func() time.Time { return now })

		output, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.AccountsImported != 1 || output.AccountsSkipped != 1 {
			t.Errorf("expected 1 imported and 1 skipped, got %d and %d", output.AccountsImported, output.AccountsSkipped)
		}
		if output.Inserted != 2 {
			t.Errorf("expected 2 inserted, got %d", output.Inserted)
		}
		if _, ok := accounts.imported[fresh.ID]; ok {
			t.Error("fresh account should not be marked imported")
		}
		if !accounts.imported[stale.ID].Equal(decimal.RequireFromString("87.50")) {
			t.Errorf("expected balance 87.50, got %s", accounts.imported[stale.ID])
		}
		if !stale.LastImportedAt.Equal(now) {
			t.Errorf("expected last import %v, got %v", now, stale.LastImportedAt)
		}
		since := banking.since["res-stale"]
		if since == nil || !since.Equal(now.Add(-7*time.Hour).Add(-refetchWindow)) {
			t.Errorf("unexpected fetch window start: %v", since)
		}
	})

	t.Run("force imports every account from the start", func(t *testing.T) {
		accounts, txns, banking, _, _ := newFixture()
		uc := NewImportTransactionsUseCase(accounts, txns, banking, nil, nil, nil, 6*time.Hour).
			WithClock(func() time.Time { return now })

		output, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID, Force: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.AccountsImported != 2 {
			t.Errorf("expected 2 imported, got %d", output.AccountsImported)
		}
		if banking.since["res-stale"] != nil {
			t.Error("forced import should fetch without a start date")
		}
	})

	t.Run("reimport skips known transactions", func(t *testing.T) {
		accounts, txns, banking, _, _ := newFixture()
		uc := NewImportTransactionsUseCase(accounts, txns, banking, nil, nil, nil, 6*time.Hour).
			WithClock(func() time.Time { return now })

		if _, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID, Force: true}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		output, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID, Force: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Inserted != 0 || output.Duplicates != 3 {
			t.Errorf("expected 0 inserted and 3 duplicates, got %d and %d", output.Inserted, output.Duplicates)
		}
	})

	t.Run("failing account does not stop the run", func(t *testing.T) {
		accounts, txns, banking, _, _ := newFixture()
		banking.failFor = map[string]bool{"res-fresh": true}
		uc := NewImportTransactionsUseCase(accounts, txns, banking, nil, nil, nil, 6*time.Hour).
			WithClock(func() time.Time { return now })

		output, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID, Force: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.AccountsFailed != 1 || output.AccountsImported != 1 {
			t.Errorf("expected 1 failed and 1 imported, got %d and %d", output.AccountsFailed, output.AccountsImported)
		}
	})

	t.Run("transactions without identifiers are counted invalid", func(t *testing.T) {
		accounts, txns, banking, _, _ := newFixture()
		banking.transactions["res-stale"] = append(banking.transactions["res-stale"], adapter.RawTransaction{
			Amount: decimal.RequireFromString("-3.00"),
		})
		uc := NewImportTransactionsUseCase(accounts, txns, banking, nil, nil, nil, 6*time.Hour).
			WithClock(func() time.Time { return now })

		output, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if output.Invalid != 1 {
			t.Errorf("expected 1 invalid, got %d", output.Invalid)
		}
	})

	t.Run("busy lock reports import in progress", func(t *testing.T) {
		accounts, txns, banking, _, _ := newFixture()
		uc := NewImportTransactionsUseCase(accounts, txns, banking, busyLocker{}, nil, nil, 6*time.Hour)

		_, err := uc.Execute(ctx, ImportTransactionsInput{UserID: userID})
		if !errors.Is(err, domainerror.ErrImportInProgress) {
			t.Fatalf("expected ErrImportInProgress, got %v", err)
		}

		var accErr *domainerror.AccountError
		if !errors.As(err, &accErr) || accErr.Code != domainerror.ErrCodeImportInProgress {
			t.Errorf("expected code %s, got %v", domainerror.ErrCodeImportInProgress, err)
		}
	})
}

func TestFromRaw(t *testing.T) {
	acc := entity.NewAccount(uuid.New(), nil, "res", "Current")
	acc.Currency = "GBP"
	now := time.Now().UTC()

	tests := []struct {
		name         string
		raw          adapter.RawTransaction
		wantOK       bool
		wantInternal string
		wantExternal bool
	}{
		{
			name:         "internal id preferred",
			raw:          adapter.RawTransaction{TransactionID: "t1", InternalID: "i1", Amount: decimal.NewFromInt(-5)},
			wantOK:       true,
			wantInternal: "i1",
			wantExternal: true,
		},
		{
			name:         "falls back to transaction id",
			raw:          adapter.RawTransaction{TransactionID: "t2", Amount: decimal.NewFromInt(5)},
			wantOK:       true,
			wantInternal: "t2",
			wantExternal: true,
		},
		{
			name:         "internal id only",
			raw:          adapter.RawTransaction{InternalID: "i3", Amount: decimal.NewFromInt(5)},
			wantOK:       true,
			wantInternal: "i3",
		},
		{
			name:   "no identifiers",
			raw:    adapter.RawTransaction{Amount: decimal.NewFromInt(5)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromRaw(acc, tt.raw, now)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if !ok {
				return
			}
			if got.InternalID != tt.wantInternal {
				t.Errorf("expected internal id %q, got %q", tt.wantInternal, got.InternalID)
			}
			if (got.ExternalID != nil) != tt.wantExternal {
				t.Errorf("unexpected external id %v", got.ExternalID)
			}
			if got.Currency != "GBP" {
				t.Errorf("expected account currency fallback, got %q", got.Currency)
			}
			if got.UserID != acc.UserID || got.AccountID != acc.ID {
				t.Error("transaction should belong to the account and its user")
			}
		})
	}

	t.Run("keeps counterparty matching the direction", func(t *testing.T) {
		out, _ := FromRaw(acc, adapter.RawTransaction{
			TransactionID: "x",
			Amount:        decimal.NewFromInt(-10),
			CreditorName:  "Landlord",
			DebtorName:    "Me",
		}, now)
		if out.CreditorName == nil || *out.CreditorName != "Landlord" {
			t.Errorf("expected creditor name, got %v", out.CreditorName)
		}
		if out.DebtorName != nil {
			t.Errorf("expected no debtor name, got %v", *out.DebtorName)
		}
	})
}

func TestSyncInstitutionsUseCase(t *testing.T) {
	repo := &fakeInstitutionRepo{institutions: []*entity.Institution{
		entity.NewInstitution("MONZO_GB", "Old Monzo", ""),
	}}
	banking := &fakeBanking{institutions: []adapter.ProviderInstitution{
		{Code: "MONZO_GB", Name: "Monzo", LogoURL: "https://logo/monzo.png"},
		{Code: "STARLING_GB", Name: "Starling"},
		{Code: "", Name: "Broken"},
	}}

	output, err := NewSyncInstitutionsUseCase(repo, banking).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Synced != 2 {
		t.Errorf("expected 2 synced, got %d", output.Synced)
	}
	if len(repo.institutions) != 2 {
		t.Fatalf("expected 2 institutions, got %d", len(repo.institutions))
	}
	if repo.institutions[0].Name != "Monzo" {
		t.Errorf("expected name updated on code, got %q", repo.institutions[0].Name)
	}
}

func TestCreateRequisitionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	monzo := entity.NewInstitution("MONZO_GB", "Monzo", "")
	institutions := &fakeInstitutionRepo{institutions: []*entity.Institution{monzo}}

	t.Run("creates requisition", func(t *testing.T) {
		requisitions := &fakeRequisitionRepo{}
		uc := NewCreateRequisitionUseCase(institutions, requisitions, &fakeBanking{})

		output, err := uc.Execute(ctx, CreateRequisitionInput{UserID: userID, InstitutionID: monzo.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := output.Requisition
		if req.ProviderID != "req-MONZO_GB" || req.Status != entity.RequisitionStatusCreated {
			t.Errorf("unexpected requisition %+v", req)
		}
		if req.Link != "https://bank.example/consent/"+req.ID.String() {
			t.Errorf("expected reference to be the requisition id, got link %q", req.Link)
		}
		if len(requisitions.requisitions) != 1 {
			t.Error("requisition should be saved")
		}
	})

	t.Run("unknown institution", func(t *testing.T) {
		uc := NewCreateRequisitionUseCase(institutions, &fakeRequisitionRepo{}, &fakeBanking{})

		_, err := uc.Execute(ctx, CreateRequisitionInput{UserID: userID, InstitutionID: uuid.New()})
		if !errors.Is(err, domainerror.ErrInstitutionNotFound) {
			t.Errorf("expected ErrInstitutionNotFound, got %v", err)
		}
	})

	t.Run("provider failure", func(t *testing.T) {
		banking := &fakeBanking{failFor: map[string]bool{"MONZO_GB": true}}
		uc := NewCreateRequisitionUseCase(institutions, &fakeRequisitionRepo{}, banking)

		_, err := uc.Execute(ctx, CreateRequisitionInput{UserID: userID, InstitutionID: monzo.ID})
		if !errors.Is(err, domainerror.ErrBankingProvider) {
			t.Errorf("expected ErrBankingProvider, got %v", err)
		}
	})
}

func TestSyncAccountsUseCase(t *testing.T) {
	userID := uuid.New()
	institutionID := uuid.New()
	requisitions := &fakeRequisitionRepo{requisitions: []*entity.Requisition{
		{ID: uuid.New(), UserID: userID, InstitutionID: institutionID, ProviderID: "linked", Status: entity.RequisitionStatusCreated},
		{ID: uuid.New(), UserID: userID, InstitutionID: institutionID, ProviderID: "pending", Status: entity.RequisitionStatusCreated},
	}}
	banking := &fakeBanking{
		requisitions: map[string]*adapter.ProviderRequisition{
			"linked":  {ID: "linked", Status: "LN", AccountIDs: []string{"res-1"}},
			"pending": {ID: "pending", Status: "CR"},
		},
		details: map[string]*adapter.ProviderAccount{
			"res-1": {ResourceID: "res-1", Name: "Current", OwnerName: "E Harding", Currency: "GBP", BBAN: "12345678"},
		},
	}
	accounts := &fakeAccountRepo{}

	output, err := NewSyncAccountsUseCase(requisitions, accounts, banking).
		Execute(context.Background(), SyncAccountsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if output.Pending != 1 {
		t.Errorf("expected 1 pending requisition, got %d", output.Pending)
	}
	if len(accounts.accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(accounts.accounts))
	}
	acc := accounts.accounts[0]
	if acc.ResourceID != "res-1" || acc.Currency != "GBP" || *acc.InstitutionID != institutionID {
		t.Errorf("unexpected account %+v", acc)
	}
	if acc.BankNumber() == nil || *acc.BankNumber() != "12345678" {
		t.Errorf("expected BBAN as bank number, got %v", acc.BankNumber())
	}
}
