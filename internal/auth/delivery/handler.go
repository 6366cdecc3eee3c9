package delivery

import (
	"net/http"
	"strings"

	authdto "startupmail-backend/internal/auth/dto"
	"startupmail-backend/internal/auth/usecase"
	"startupmail-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Register(&req)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ExchangeSession(c *gin.Context) {
	var req authdto.SessionExchangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.ExchangeSession(c.Request.Context(), req.SessionID)
	if err != nil {
		c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		if err := h.authUsecase.Logout(parts[1]); err != nil {
			c.JSON(apperror.HTTPStatus(err), gin.H{"error": apperror.PublicMessage(err)})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	c.JSON(http.StatusOK, authdto.ProfileResponse{
		Email:     user.Email,
		FullName:  user.Name,
		Company:   user.Company,
		Picture:   user.Picture,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}
