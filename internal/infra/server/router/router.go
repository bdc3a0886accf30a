// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ventureboard/backend/internal/integration/entrypoint/controller"
	"github.com/ventureboard/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	companyController      *controller.CompanyController
	transactionController  *controller.TransactionController
	statementController    *controller.StatementController
	intercompanyController *controller.IntercompanyController
	budgetController       *controller.BudgetController
	maintenanceRateLimiter *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	companyController *controller.CompanyController,
	transactionController *controller.TransactionController,
	statementController *controller.StatementController,
	intercompanyController *controller.IntercompanyController,
	budgetController *controller.BudgetController,
	maintenanceRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		companyController:      companyController,
		transactionController:  transactionController,
		statementController:    statementController,
		intercompanyController: intercompanyController,
		budgetController:       budgetController,
		maintenanceRateLimiter: maintenanceRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check and metrics endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// setupAPIRoutes configures the main API routes. Every route requires authentication.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		if r.companyController != nil {
			v1.GET("/companies", r.companyController.List)
			v1.POST("/companies", r.companyController.Create)
		}

		companies := v1.Group("/companies/:id")
		{
			if r.transactionController != nil {
				companies.GET("/transactions", r.transactionController.List)
				companies.POST("/transactions", r.transactionController.Create)
			}

			if r.statementController != nil {
				companies.GET("/statements", r.statementController.Get)
				companies.POST("/statements/recalculate", r.statementController.Recalculate)
			}

			// Maintenance passes rewrite ledgers in bulk and share one rate limit
			if r.intercompanyController != nil {
				intercompany := companies.Group("/intercompany")
				intercompany.Use(r.maintenanceRateLimiter.Middleware())
				{
					intercompany.POST("/normalize", r.intercompanyController.Normalize)
					intercompany.POST("/deduplicate", r.intercompanyController.Deduplicate)
					intercompany.POST("/migrate", r.intercompanyController.Migrate)
				}
			}
		}

		if r.statementController != nil {
			v1.GET("/consolidation", r.statementController.Consolidate)
		}

		if r.intercompanyController != nil {
			v1.POST("/intercompany/mirror", r.maintenanceRateLimiter.Middleware(), r.intercompanyController.Mirror)
		}

		if r.budgetController != nil {
			budget := v1.Group("/budget")
			{
				budget.POST("/periods", r.budgetController.CreatePeriod)
				budget.POST("/categories", r.budgetController.CreateCategory)
				budget.GET("/periods/:id/lines", r.budgetController.ListLines)
				budget.POST("/periods/:id/lines", r.budgetController.CreateLine)
				budget.POST("/periods/:id/approve", r.budgetController.ApproveActuals)
			}
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
