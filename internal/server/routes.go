package server

import (
	"github.com/labstack/echo/v4"

	"example.com/opscost-dashboard/backend/internal/handlers"
)

func registerRoutes(
	e *echo.Echo,
	authHandler *handlers.AuthHandler,
	costsHandler *handlers.CostsHandler,
	subscriptionHandler *handlers.SubscriptionHandler,
	employeeHandler *handlers.EmployeeHandler,
	obligationHandler *handlers.ObligationHandler,
	supplyHandler *handlers.SupplyHandler,
	insuranceHandler *handlers.InsuranceHandler,
	rentHandler *handlers.RentHandler,
	projectHandler *handlers.ProjectHandler,
	pricingHandler *handlers.PricingHandler,
	notificationHandler *handlers.NotificationHandler,
	authMiddleware echo.MiddlewareFunc,
	authRateLimiter echo.MiddlewareFunc,
) {
	e.GET("/health", handlers.Health)

	api := e.Group("/api/v1")
	authGroup := api.Group("/auth", authRateLimiter)

	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", authHandler.Me, authMiddleware)

	costs := api.Group("/costs", authMiddleware)
	costs.GET("", costsHandler.List)
	costs.GET("/summary", costsHandler.Summary)
	costs.GET("/export/json", costsHandler.ExportJSON)
	costs.GET("/export/csv", costsHandler.ExportCSV)
	costs.PUT("/:id", costsHandler.Update)

	subscriptions := api.Group("/subscriptions", authMiddleware)
	subscriptions.GET("", subscriptionHandler.List)
	subscriptions.POST("", subscriptionHandler.Create)
	subscriptions.PUT("/:id", subscriptionHandler.Update)
	subscriptions.DELETE("/:id", subscriptionHandler.Delete)

	employees := api.Group("/employees", authMiddleware)
	employees.GET("", employeeHandler.List)
	employees.POST("", employeeHandler.Create)
	employees.PUT("/:id", employeeHandler.Update)
	employees.DELETE("/:id", employeeHandler.Delete)

	obligations := api.Group("/obligations", authMiddleware)
	obligations.GET("", obligationHandler.List)
	obligations.POST("", obligationHandler.Create)
	obligations.PUT("/:id", obligationHandler.Update)
	obligations.DELETE("/:id", obligationHandler.Delete)

	supplies := api.Group("/supplies", authMiddleware)
	supplies.GET("", supplyHandler.List)
	supplies.POST("", supplyHandler.Create)
	supplies.PUT("/:id", supplyHandler.Update)
	supplies.DELETE("/:id", supplyHandler.Delete)

	insurance := api.Group("/insurance", authMiddleware)
	insurance.GET("", insuranceHandler.List)
	insurance.POST("", insuranceHandler.Create)
	insurance.PUT("/:id", insuranceHandler.Update)
	insurance.DELETE("/:id", insuranceHandler.Delete)

	rent := api.Group("/rent", authMiddleware)
	rent.GET("/branches", rentHandler.List)
	rent.GET("/summary", rentHandler.Summary)
	rent.POST("/branches", rentHandler.CreateBranch)
	rent.PUT("/branches/:id", rentHandler.UpdateBranch)
	rent.DELETE("/branches/:id", rentHandler.DeleteBranch)
	rent.POST("/branches/:id/expenses", rentHandler.CreateExpense)
	rent.PUT("/branches/:id/expenses/:expenseId", rentHandler.UpdateExpense)
	rent.DELETE("/branches/:id/expenses/:expenseId", rentHandler.DeleteExpense)

	projects := api.Group("/projects", authMiddleware)
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)

	pricing := api.Group("/pricing", authMiddleware)
	pricing.POST("/quote", pricingHandler.Quote)

	notifications := api.Group("/notifications", authMiddleware)
	notifications.GET("/stream", notificationHandler.Stream)
}
