package api

import (
	"startupmail-backend/internal/analytics"
	authusecase "startupmail-backend/internal/auth/usecase"
	mailusecase "startupmail-backend/internal/mail/usecase"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase  authusecase.AuthUsecase
	mailUsecase  mailusecase.MailUsecase
	analyticsGen *analytics.Generator
}

func NewHandler(authUc authusecase.AuthUsecase, mailUc mailusecase.MailUsecase, analyticsGen *analytics.Generator) *Handler {
	return &Handler{
		authUsecase:  authUc,
		mailUsecase:  mailUc,
		analyticsGen: analyticsGen,
	}
}

func (h *Handler) Start(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.mailUsecase, h.analyticsGen)

	return r.Run(addr)
}
