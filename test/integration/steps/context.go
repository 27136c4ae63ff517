//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/elliotJHarding/transactions/config"
	"github.com/elliotJHarding/transactions/internal/infra/dependency"
	"github.com/elliotJHarding/transactions/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// environment is the server and its fakes, shared by every scenario.
type environment struct {
	server   *httptest.Server
	db       *mock.Db
	redis    *redis.Client
	provider *mock.BankingProvider
	clock    *mock.Time
}

var envOnce sync.Once
var env *environment

func sharedEnvironment() *environment {
	envOnce.Do(func() {
		gin.SetMode(gin.TestMode)

		provider := mock.NewBankingProvider()
		provider.Start()

		database := mock.NewDb()
		redisClient, _ := mock.NewRedis()
		clock := mock.NewTime()

		cfg := &config.Config{
			Server: config.ServerConfig{Environment: "test"},
			Redis:  config.RedisConfig{LockTTL: time.Minute},
			JWT: config.JWTConfig{
				Secret:             testJWTSecret,
				AccessTokenExpiry:  15 * time.Minute,
				RefreshTokenExpiry: 24 * time.Hour,
			},
			Banking: config.BankingConfig{
				BaseURL:     provider.GetUrl(),
				SecretID:    "test-id",
				SecretKey:   "test-key",
				Country:     "gb",
				RedirectURL: "http://localhost/linked",
				TokenLeeway: 30 * time.Second,
				Timeout:     5 * time.Second,
			},
			Import: config.ImportConfig{
				PollInterval: time.Minute,
				StaleAfter:   6 * time.Hour,
				BatchSize:    10,
			},
		}

		injector := dependency.NewInjector(cfg, database.DbConn, redisClient, dependency.NewBankingClient(cfg.Banking))
		injector.Import.WithClock(clock.Now)

		env = &environment{
			server:   httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
			db:       database,
			redis:    redisClient,
			provider: provider,
			clock:    clock,
		}
	})
	return env
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		sharedEnvironment()
	})

	ctx.AfterSuite(func() {
		if env != nil {
			env.server.Close()
		}
	})
}

type testContext struct {
	env          *environment
	client       *http.Client
	headers      map[string]string
	response     *response
	accessToken  string
	refreshToken string
	userID       uuid.UUID
	saved        map[string]string
}

type response struct {
	status int
	body   any
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.userID = uuid.Nil
	t.saved = make(map[string]string)

	t.env.provider.Reset()
	t.env.clock.SetCurrentTime(time.Now())
	if err := mock.ClearRedis(t.env.redis); err != nil {
		return err
	}
	return t.env.db.ClearDB()
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		env:    sharedEnvironment(),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^I am registered and logged in as "([^"]*)"$`, test.iAmRegisteredAndLoggedInAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)

	// Banking provider steps
	ctx.Given(`^the banking provider offers institution "([^"]*)" named "([^"]*)"$`, test.theProviderOffersInstitution)
	ctx.Given(`^the banking provider links institution "([^"]*)" to accounts:$`, test.theProviderLinksInstitution)
	ctx.Given(`^the banking provider has booked transactions for account "([^"]*)":$`, test.theProviderHasBookedTransactions)
	ctx.Given(`^the banking provider fails to return transactions for account "([^"]*)"$`, test.theProviderFailsFor)
	ctx.Given(`^my accounts at "([^"]*)" are linked$`, test.myAccountsAreLinked)
	ctx.Then(`^the banking provider should have been asked for transactions of "([^"]*)" from "([^"]*)"$`, test.theProviderWasAskedFrom)
	ctx.Then(`^the banking provider should have been asked for all transactions of "([^"]*)"$`, test.theProviderWasAskedForAll)

	// Clock steps
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^(\d+) hours pass$`, test.hoursPass)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I save the response field "([^"]*)" as "([^"]*)"$`, test.iSaveTheResponseFieldAs)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response should have (\d+) items?$`, test.theResponseShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}
