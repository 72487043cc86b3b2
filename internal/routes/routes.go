package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjunkrishnadas/expense-tracker/internal/budget"
	"github.com/arjunkrishnadas/expense-tracker/internal/chatbot"
	"github.com/arjunkrishnadas/expense-tracker/internal/handlers"
	"github.com/arjunkrishnadas/expense-tracker/internal/middleware"
)

// SetupRouter wires every endpoint. Everything under /api requires a valid
// token; /api/admin additionally requires the admin role.
func SetupRouter(pool *pgxpool.Pool, engine *budget.Engine, resolver *chatbot.Resolver, jwtSecret string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())

	r.POST("/register", handlers.RegisterHandler(pool))
	r.POST("/login", handlers.LoginHandler(pool, jwtSecret))

	api := r.Group("/api", middleware.AuthRequired(jwtSecret))
	{
		api.GET("/me", handlers.MeHandler(pool))
		api.PUT("/me/contact", handlers.UpdateContactHandler(pool))

		api.POST("/transactions", handlers.CreateTransactionHandler(pool, engine))
		api.GET("/transactions", handlers.GetTransactionsHandler(pool))
		api.GET("/transactions/:id", handlers.GetTransactionHandler(pool))
		api.PUT("/transactions/:id", handlers.UpdateTransactionHandler(pool, engine))
		api.DELETE("/transactions/:id", handlers.DeleteTransactionHandler(pool, engine))

		api.POST("/budgets", handlers.CreateBudgetHandler(pool))
		api.GET("/budgets", handlers.GetBudgetsHandler(pool))
		api.GET("/budgets/status", handlers.BudgetStatusHandler(engine))
		api.PUT("/budgets/:id", handlers.UpdateBudgetHandler(pool))
		api.DELETE("/budgets/:id", handlers.DeleteBudgetHandler(pool))

		api.GET("/categories", handlers.GetCategoriesHandler(pool))
		api.GET("/payment-methods", handlers.GetPaymentMethodsHandler(pool))

		api.GET("/alerts", handlers.GetAlertsHandler(pool))
		api.PUT("/alerts/:id/read", handlers.MarkAlertReadHandler(pool))

		api.POST("/chatbot", handlers.ChatHandler(resolver))

		api.GET("/analytics/summary", handlers.AnalyticsSummaryHandler(pool))
		api.GET("/analytics/forecast", handlers.AnalyticsForecastHandler(pool))
	}

	admin := api.Group("/admin", middleware.AdminOnly())
	{
		admin.GET("/users", handlers.GetUsersHandler(pool))
		admin.GET("/users/:id", handlers.GetUserHandler(pool))
		admin.PUT("/users/:id/role", handlers.UpdateUserRoleHandler(pool))
		admin.DELETE("/users/:id", handlers.DeleteUserHandler(pool))

		admin.POST("/categories", handlers.CreateCategoryHandler(pool))
		admin.PUT("/categories/:id", handlers.UpdateCategoryHandler(pool))
		admin.DELETE("/categories/:id", handlers.DeleteCategoryHandler(pool))

		admin.POST("/payment-methods", handlers.CreatePaymentMethodHandler(pool))
		admin.PUT("/payment-methods/:id", handlers.UpdatePaymentMethodHandler(pool))
		admin.DELETE("/payment-methods/:id", handlers.DeletePaymentMethodHandler(pool))

		admin.GET("/transactions", handlers.AllTransactionsHandler(pool))
	}

	return r
}
