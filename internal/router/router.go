package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/roomledger-dev/roomledger/internal/handlers"
	"github.com/roomledger-dev/roomledger/internal/middleware"
	"github.com/roomledger-dev/roomledger/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authRequired := middleware.AuthMiddleware()
	adminRequired := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/login", handlers.Login)
		}

		members := api.Group("/members", authRequired)
		{
			members.GET("", handlers.ListMembers)
			members.POST("", adminRequired, handlers.CreateMember)
			members.PUT("/:id", adminRequired, handlers.UpdateMember)
			members.DELETE("/:id", adminRequired, handlers.SoftDeleteMember)
			members.DELETE("/:id/permanent", adminRequired, handlers.HardDeleteMember)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", handlers.ListCategories)
			categories.GET("/summary/monthly", handlers.MonthlyCategorySummary)
			categories.GET("/:id", handlers.GetCategory)
			categories.POST("", handlers.CreateCategory)
			categories.PUT("/:id", handlers.UpdateCategory)
			categories.DELETE("/:id", handlers.DeleteCategory)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", handlers.ListExpenses)
			expenses.GET("/summary", handlers.ExpenseSummary)
			expenses.GET("/:id", handlers.GetExpense)
			expenses.POST("", handlers.CreateExpense)
			expenses.PUT("/:id", handlers.UpdateExpense)
			expenses.DELETE("/:id", handlers.DeleteExpense)

			expenses.POST("/:id/comments", authRequired, handlers.AddExpenseComment)
			expenses.PUT("/:id/comments/:commentId", authRequired, handlers.EditExpenseComment)
			expenses.DELETE("/:id/comments/:commentId", authRequired, handlers.DeleteExpenseComment)
		}

		calendar := api.Group("/calendar")
		{
			calendar.GET("", handlers.ListCalendarEntries)
			calendar.GET("/:id", handlers.GetCalendarEntry)
			calendar.POST("", authRequired, adminRequired, handlers.CreateCalendarEntry)
			calendar.PUT("/:id", authRequired, adminRequired, handlers.UpdateCalendarEntry)
			calendar.DELETE("/:id", authRequired, adminRequired, handlers.DeleteCalendarEntry)

			calendar.POST("/:id/comments", authRequired, handlers.AddCalendarComment)
			calendar.PUT("/:id/comments/:commentId", authRequired, handlers.EditCalendarComment)
			calendar.DELETE("/:id/comments/:commentId", authRequired, handlers.DeleteCalendarComment)
			calendar.POST("/:id/comments/:commentId/reply", authRequired, adminRequired, handlers.AddCalendarReply)
		}

		settings := api.Group("/settings", authRequired)
		{
			settings.GET("/full-amount", handlers.GetFullAmount)
			settings.PUT("/full-amount", adminRequired, handlers.SetFullAmount)
		}
	}

	return r
}
