// Package dependency provides dependency injection for the application.
package dependency

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/elliotJHarding/transactions/config"
	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/application/usecase/account"
	"github.com/elliotJHarding/transactions/internal/application/usecase/auth"
	"github.com/elliotJHarding/transactions/internal/application/usecase/holiday"
	"github.com/elliotJHarding/transactions/internal/application/usecase/link"
	"github.com/elliotJHarding/transactions/internal/application/usecase/report"
	"github.com/elliotJHarding/transactions/internal/application/usecase/tag"
	"github.com/elliotJHarding/transactions/internal/application/usecase/tagrule"
	"github.com/elliotJHarding/transactions/internal/application/usecase/transaction"
	"github.com/elliotJHarding/transactions/internal/infra/db"
	"github.com/elliotJHarding/transactions/internal/infra/server/router"
	"github.com/elliotJHarding/transactions/internal/integration/adapters"
	"github.com/elliotJHarding/transactions/internal/integration/banking"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/controller"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/middleware"
	"github.com/elliotJHarding/transactions/internal/integration/importer"
	"github.com/elliotJHarding/transactions/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config       *config.Config
	DB           *gorm.DB
	Router       *router.Router
	Import       *account.ImportTransactionsUseCase
	ImportWorker *importer.Worker
}

// NewBankingClient builds the open-banking provider client from configuration.
func NewBankingClient(cfg config.BankingConfig) adapter.BankingClient {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	session := banking.NewSession(httpClient, cfg.BaseURL, cfg.SecretID, cfg.SecretKey, cfg.TokenLeeway)
	return banking.NewClient(httpClient, session, banking.Config{
		BaseURL:     cfg.BaseURL,
		Country:     cfg.Country,
		RedirectURL: cfg.RedirectURL,
	})
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case per-user locks are held in process.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client, bankingClient adapter.BankingClient) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	accountRepo := persistence.NewAccountRepository(gormDB)
	institutionRepo := persistence.NewInstitutionRepository(gormDB)
	requisitionRepo := persistence.NewRequisitionRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	linkRepo := persistence.NewLinkRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	tagRepo := persistence.NewTagRepository(gormDB)
	ruleRepo := persistence.NewTagRuleRepository(gormDB)
	holidayRepo := persistence.NewHolidayRepository(gormDB)

	// Create adapters/services
	passwordService := adapters.NewPasswordService(0)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)

	var locker adapter.UserLocker
	var redisHealth func() bool
	if redisClient != nil {
		locker = adapters.NewRedisLocker(redisClient, cfg.Redis.LockTTL)
		redisHealth = db.RedisHealthCheck(redisClient)
	} else {
		locker = adapters.NewMemoryLocker()
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUseCase(userRepo, passwordService, tokenService)
	refreshUseCase := auth.NewRefreshUseCase(userRepo, tokenService)
	logoutUseCase := auth.NewLogoutUseCase(tokenService)

	// Create link and rule use cases; import and reports depend on them
	resolveLinksUseCase := link.NewResolveLinksUseCase(transactionRepo, linkRepo, locker)
	suggestLinksUseCase := link.NewSuggestLinksUseCase(transactionRepo)
	listLinksUseCase := link.NewListLinksUseCase(linkRepo)

	applyRulesUseCase := tagrule.NewApplyRulesUseCase(transactionRepo, ruleRepo, tagRepo)
	listRulesUseCase := tagrule.NewListRulesUseCase(ruleRepo, tagRepo)
	createRuleUseCase := tagrule.NewCreateRuleUseCase(ruleRepo, tagRepo, applyRulesUseCase)
	updateRuleUseCase := tagrule.NewUpdateRuleUseCase(ruleRepo, tagRepo, applyRulesUseCase)
	deleteRuleUseCase := tagrule.NewDeleteRuleUseCase(ruleRepo)

	// Create account use cases
	listInstitutionsUseCase := account.NewListInstitutionsUseCase(institutionRepo)
	syncInstitutionsUseCase := account.NewSyncInstitutionsUseCase(institutionRepo, bankingClient)
	createRequisitionUseCase := account.NewCreateRequisitionUseCase(institutionRepo, requisitionRepo, bankingClient)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	syncAccountsUseCase := account.NewSyncAccountsUseCase(requisitionRepo, accountRepo, bankingClient)
	importUseCase := account.NewImportTransactionsUseCase(
		accountRepo,
		transactionRepo,
		bankingClient,
		locker,
		resolveLinksUseCase,
		applyRulesUseCase,
		cfg.Import.StaleAfter,
	)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, linkRepo)
	assignTagUseCase := transaction.NewAssignTagUseCase(transactionRepo, tagRepo)
	assignHolidayUseCase := transaction.NewAssignHolidayUseCase(transactionRepo, holidayRepo)

	// Create tag use cases
	listTagsUseCase := tag.NewListTagsUseCase(tagRepo)
	createTagUseCase := tag.NewCreateTagUseCase(tagRepo, categoryRepo)
	updateTagUseCase := tag.NewUpdateTagUseCase(tagRepo, categoryRepo)
	deleteTagUseCase := tag.NewDeleteTagUseCase(tagRepo)
	listCategoriesUseCase := tag.NewListCategoriesUseCase(categoryRepo)

	// Create report and holiday use cases
	getReportsUseCase := report.NewGetReportsUseCase(transactionRepo, tagRepo, categoryRepo, linkRepo, applyRulesUseCase)

	listHolidaysUseCase := holiday.NewListHolidaysUseCase(holidayRepo, transactionRepo, tagRepo)
	createHolidayUseCase := holiday.NewCreateHolidayUseCase(holidayRepo)
	deleteHolidayUseCase := holiday.NewDeleteHolidayUseCase(holidayRepo)
	summarizeHolidayUseCase := holiday.NewSummarizeHolidayUseCase(holidayRepo, transactionRepo, tagRepo)

	// Create controllers
	controllers := router.Controllers{
		Health: controller.NewHealthController(func() bool {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		}, redisHealth),
		Auth: controller.NewAuthController(registerUseCase, loginUseCase, refreshUseCase, logoutUseCase),
		Account: controller.NewAccountController(
			listInstitutionsUseCase,
			syncInstitutionsUseCase,
			createRequisitionUseCase,
			listAccountsUseCase,
			syncAccountsUseCase,
			importUseCase,
		),
		Transaction: controller.NewTransactionController(listTransactionsUseCase, assignTagUseCase, assignHolidayUseCase),
		Link:        controller.NewLinkController(listLinksUseCase, resolveLinksUseCase, suggestLinksUseCase),
		Tag: controller.NewTagController(
			listTagsUseCase,
			createTagUseCase,
			updateTagUseCase,
			deleteTagUseCase,
			listCategoriesUseCase,
		),
		Rule: controller.NewRuleController(
			listRulesUseCase,
			createRuleUseCase,
			updateRuleUseCase,
			deleteRuleUseCase,
			applyRulesUseCase,
		),
		Report: controller.NewReportController(getReportsUseCase),
		Holiday: controller.NewHolidayController(
			listHolidaysUseCase,
			createHolidayUseCase,
			deleteHolidayUseCase,
			summarizeHolidayUseCase,
		),
	}

	// Create middleware
	// Rate limiting is switched off for E2E/test environments to prevent flaky tests
	authRateLimiter := middleware.NewRateLimiter(5, time.Minute)
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	worker := importer.NewWorker(accountRepo, importUseCase, importer.WorkerConfig{
		PollInterval: cfg.Import.PollInterval,
		StaleAfter:   cfg.Import.StaleAfter,
		BatchSize:    cfg.Import.BatchSize,
	})

	return &Injector{
		Config:       cfg,
		DB:           gormDB,
		Router:       router.NewRouter(controllers, authRateLimiter, authMiddleware),
		Import:       importUseCase,
		ImportWorker: worker,
	}
}
