package link

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/domain/valueobject"
)

// ResolveLinksInput represents the input for resolving transfer links.
type ResolveLinksInput struct {
	UserID uuid.UUID
}

// ResolveLinksOutput represents the result of one resolver run.
type ResolveLinksOutput struct {
	Result valueobject.ResolveResult
}

// ResolveLinksUseCase discovers transfers between a user's own accounts and
// records them as links.
type ResolveLinksUseCase struct {
	transactionRepo adapter.TransactionRepository
	linkRepo        adapter.LinkRepository
	locker          adapter.UserLocker
	config          valueobject.MatchingConfig
}

// NewResolveLinksUseCase creates a new ResolveLinksUseCase instance.
// locker may be nil when the caller already serializes runs per user.
func NewResolveLinksUseCase(
	transactionRepo adapter.TransactionRepository,
	linkRepo adapter.LinkRepository,
	locker adapter.UserLocker,
) *ResolveLinksUseCase {
	return &ResolveLinksUseCase{
		transactionRepo: transactionRepo,
		linkRepo:        linkRepo,
		locker:          locker,
		config:          valueobject.DefaultMatchingConfig(),
	}
}

// Execute runs the resolver for one user.
func (uc *ResolveLinksUseCase) Execute(ctx context.Context, input ResolveLinksInput) (*ResolveLinksOutput, error) {
	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrResolverBusy) {
				return nil, domainerror.NewLinkError(
					domainerror.ErrCodeResolverBusy,
					"link resolution is already running",
					err,
				)
			}
			return nil, fmt.Errorf("failed to acquire resolver lock: %w", err)
		}
		defer unlock()
	}

	result, err := uc.resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	return &ResolveLinksOutput{Result: *result}, nil
}

// ExecuteLocked runs the resolver for a user whose lock the caller already holds.
func (uc *ResolveLinksUseCase) ExecuteLocked(ctx context.Context, input ResolveLinksInput) (*ResolveLinksOutput, error) {
	result, err := uc.resolve(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &ResolveLinksOutput{Result: *result}, nil
}

func (uc *ResolveLinksUseCase) resolve(ctx context.Context, userID uuid.UUID) (*valueobject.ResolveResult, error) {
	unlinked, err := uc.transactionRepo.FindUnlinkedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlinked transactions: %w", err)
	}

	pairs, stats := FindPairs(unlinked, uc.config)

	result := &valueobject.ResolveResult{
		Created:   make([]*entity.TransferLink, 0, len(pairs)),
		Ambiguous: stats.Ambiguous,
		Unmatched: stats.Unmatched,
	}

	for _, pair := range pairs {
		link, ok := entity.NewTransferLink(pair.A, pair.B)
		if !ok {
			continue
		}

		if err := uc.linkRepo.Create(ctx, link); err != nil {
			if errors.Is(err, domainerror.ErrDuplicateLink) {
				slog.Warn("Skipping link, leg already linked",
					"user_id", userID,
					"from_transaction_id", link.FromTransactionID,
					"to_transaction_id", link.ToTransactionID,
				)
				result.Duplicates++
				continue
			}
			return nil, fmt.Errorf("failed to create link: %w", err)
		}

		result.Created = append(result.Created, link)
	}

	if len(result.Created) > 0 || result.Duplicates > 0 {
		slog.Info("Resolved transfer links",
			"user_id", userID,
			"created", len(result.Created),
			"ambiguous", result.Ambiguous,
			"duplicates", result.Duplicates,
		)
	}

	return result, nil
}
