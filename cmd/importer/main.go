// Command importer runs a single transaction import and exits.
//
// Without -user it imports one batch of users whose accounts are stale, the
// same work the API's background worker does on each tick.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/elliotJHarding/transactions/config"
	"github.com/elliotJHarding/transactions/internal/application/usecase/account"
	"github.com/elliotJHarding/transactions/internal/infra/db"
	"github.com/elliotJHarding/transactions/internal/infra/dependency"
)

func main() {
	force := flag.Bool("force", false, "import every account regardless of when it was last imported")
	user := flag.String("user", "", "import only this user id")
	flag.Parse()

	_ = godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(*user, *force); err != nil {
		slog.Error("Import failed", "error", err)
		os.Exit(1)
	}
}

func run(user string, force bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	redisClient, err := db.NewRedisClient(&cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	injector := dependency.NewInjector(cfg, database.DB(), redisClient, dependency.NewBankingClient(cfg.Banking))

	if user == "" {
		if force {
			slog.Warn("-force has no effect without -user")
		}
		injector.ImportWorker.ProcessNow(ctx)
		return nil
	}

	userID, err := uuid.Parse(user)
	if err != nil {
		return err
	}

	output, err := injector.Import.Execute(ctx, account.ImportTransactionsInput{UserID: userID, Force: force})
	if err != nil {
		return err
	}

	slog.Info("Import finished",
		"user_id", userID,
		"accounts_imported", output.AccountsImported,
		"accounts_skipped", output.AccountsSkipped,
		"accounts_failed", output.AccountsFailed,
		"inserted", output.Inserted,
		"duplicates", output.Duplicates,
		"links_created", output.LinksCreated,
		"tagged", output.Tagged,
	)
	return nil
}
