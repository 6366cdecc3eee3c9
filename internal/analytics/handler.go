package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	generator *Generator
}

func NewHandler(generator *Generator) *Handler {
	return &Handler{generator: generator}
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.generator.DashboardStats())
}
