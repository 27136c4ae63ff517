// Package importer runs scheduled transaction imports.
package importer

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/application/usecase/account"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

// Importer runs an import for one user.
type Importer interface {
	Execute(ctx context.Context, input account.ImportTransactionsInput) (*account.ImportTransactionsOutput, error)
}

// Worker periodically imports transactions for users whose accounts are stale.
type Worker struct {
	accounts     adapter.AccountRepository
	importer     Importer
	pollInterval time.Duration
	staleAfter   time.Duration
	batchSize    int
	now          func() time.Time
}

// WorkerConfig holds configuration for the import worker.
type WorkerConfig struct {
	PollInterval time.Duration
	StaleAfter   time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 15 * time.Minute,
		StaleAfter:   6 * time.Hour,
		BatchSize:    10,
	}
}

// NewWorker creates a new import worker.
func NewWorker(accounts adapter.AccountRepository, importer Importer, config WorkerConfig) *Worker {
	return &Worker{
		accounts:     accounts,
		importer:     importer,
		pollInterval: config.PollInterval,
		staleAfter:   config.StaleAfter,
		batchSize:    config.BatchSize,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Import worker started",
		"poll_interval", w.pollInterval,
		"stale_after", w.staleAfter,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Import worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch imports a batch of users with stale accounts.
func (w *Worker) processBatch(ctx context.Context) {
	users, err := w.accounts.FindUsersWithStaleAccounts(ctx, w.now().Add(-w.staleAfter), w.batchSize)
	if err != nil {
		slog.Error("Failed to find users with stale accounts", "error", err)
		return
	}

	if len(users) == 0 {
		return
	}

	slog.Debug("Processing import batch", "count", len(users))

	for _, userID := range users {
		select {
		case <-ctx.Done():
			return
		default:
			w.processUser(ctx, userID)
		}
	}
}

func (w *Worker) processUser(ctx context.Context, userID uuid.UUID) {
	logger := slog.With("user_id", userID)

	output, err := w.importer.Execute(ctx, account.ImportTransactionsInput{UserID: userID})
	if err != nil {
		if errors.Is(err, domainerror.ErrImportInProgress) {
			logger.Info("Import already running, skipping user")
			return
		}
		logger.Error("Scheduled import failed", "error", err)
		return
	}

	logger.Info("Scheduled import finished",
		"accounts_imported", output.AccountsImported,
		"accounts_failed", output.AccountsFailed,
		"inserted", output.Inserted,
		"links_created", output.LinksCreated,
		"tagged", output.Tagged,
	)
}

// ProcessNow imports one batch immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
