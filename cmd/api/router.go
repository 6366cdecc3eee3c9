package api

import (
	"net/http"
	"time"

	"startupmail-backend/internal/analytics"
	authdelivery "startupmail-backend/internal/auth/delivery"
	authusecase "startupmail-backend/internal/auth/usecase"
	maildelivery "startupmail-backend/internal/mail/delivery"
	mailusecase "startupmail-backend/internal/mail/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authusecase.AuthUsecase, mailUsecase mailusecase.MailUsecase, analyticsGen *analytics.Generator) {
	authHandler := authdelivery.NewAuthHandler(authUsecase)
	mailHandler := maildelivery.NewMailHandler(mailUsecase)
	analyticsHandler := analytics.NewHandler(analyticsGen)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "healthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/session", authHandler.ExchangeSession)
			auth.POST("/logout", authdelivery.AuthMiddleware(authUsecase), authHandler.Logout)
		}

		user := api.Group("/user")
		user.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			user.GET("/profile", authHandler.Profile)
		}

		accounts := api.Group("/email-accounts")
		accounts.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			accounts.POST("/connect", mailHandler.ConnectAccount)
			accounts.GET("", mailHandler.ListAccounts)
		}

		emails := api.Group("/emails")
		emails.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			emails.GET("/inbox", mailHandler.Inbox)
			emails.GET("/sent", mailHandler.SentEmails)
			emails.POST("/send", mailHandler.SendEmail)
			emails.POST("/drafts", mailHandler.SaveDraft)
			emails.GET("/drafts", mailHandler.ListDrafts)
			emails.DELETE("/drafts/:id", mailHandler.DeleteDraft)
		}

		templates := api.Group("/templates")
		templates.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			templates.GET("/predefined", mailHandler.PredefinedTemplates)
			templates.GET("", mailHandler.ListTemplates)
			templates.POST("", mailHandler.CreateTemplate)
			templates.PUT("/:id", mailHandler.UpdateTemplate)
			templates.DELETE("/:id", mailHandler.DeleteTemplate)
		}

		campaigns := api.Group("/campaigns")
		campaigns.Use(authdelivery.AuthMiddleware(authUsecase))
		{
			campaigns.GET("", mailHandler.ListCampaigns)
			campaigns.POST("", mailHandler.CreateCampaign)
		}

		api.GET("/analytics", authdelivery.AuthMiddleware(authUsecase), analyticsHandler.Dashboard)
	}
}
