// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/controller"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/middleware"
)

// Controllers groups the HTTP controllers served by the router.
type Controllers struct {
	Health      *controller.HealthController
	Auth        *controller.AuthController
	Account     *controller.AccountController
	Transaction *controller.TransactionController
	Link        *controller.LinkController
	Tag         *controller.TagController
	Rule        *controller.RuleController
	Report      *controller.ReportController
	Holiday     *controller.HolidayController
}

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine          *gin.Engine
	controllers     Controllers
	authRateLimiter *middleware.RateLimiter
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	controllers Controllers,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		controllers:     controllers,
		authRateLimiter: authRateLimiter,
		authMiddleware:  authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test", "e2e":
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.controllers.Health.Check)
}

func (r *Router) setupAPIRoutes() {
	c := r.controllers
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authRateLimiter.Middleware(), c.Auth.Register)
		auth.POST("/login", r.authRateLimiter.Middleware(), c.Auth.Login)
		auth.POST("/refresh", c.Auth.Refresh)
		auth.POST("/logout", c.Auth.Logout)
	}

	// Everything below requires a valid access token
	api := v1.Group("")
	api.Use(r.authMiddleware.Authenticate())

	institutions := api.Group("/institutions")
	{
		institutions.GET("", c.Account.ListInstitutions)
		institutions.POST("/sync", c.Account.SyncInstitutions)
	}

	api.POST("/requisitions", c.Account.CreateRequisition)

	accounts := api.Group("/accounts")
	{
		accounts.GET("", c.Account.ListAccounts)
		accounts.POST("/sync", c.Account.SyncAccounts)
	}

	api.POST("/import", c.Account.Import)

	transactions := api.Group("/transactions")
	{
		transactions.GET("", c.Transaction.List)
		transactions.PATCH("/:id/tag", c.Transaction.AssignTag)
		transactions.PATCH("/:id/holiday", c.Transaction.AssignHoliday)
	}

	links := api.Group("/links")
	{
		links.GET("", c.Link.List)
		links.POST("/resolve", c.Link.Resolve)
		links.GET("/suggestions", c.Link.Suggestions)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", c.Tag.List)
		tags.POST("", c.Tag.Create)
		tags.PATCH("/:id", c.Tag.Update)
		tags.DELETE("/:id", c.Tag.Delete)
	}

	api.GET("/categories", c.Tag.ListCategories)

	rules := api.Group("/rules")
	{
		rules.GET("", c.Rule.List)
		rules.POST("", c.Rule.Create)
		rules.POST("/apply", c.Rule.Apply)
		rules.PATCH("/:id", c.Rule.Update)
		rules.DELETE("/:id", c.Rule.Delete)
	}

	api.GET("/reports", c.Report.Get)

	holidays := api.Group("/holidays")
	{
		holidays.GET("", c.Holiday.List)
		holidays.POST("", c.Holiday.Create)
		holidays.DELETE("/:id", c.Holiday.Delete)
		holidays.GET("/:id/summary", c.Holiday.Summary)
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
