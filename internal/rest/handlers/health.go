package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Health struct{}

func NewHealthHandler() *Health {
	return &Health{}
}

func (h *Health) EnrichRoutes(router *gin.Engine) {
	router.GET("/health", h.healthAction)
}

// healthAction godoc
//
//	@Summary	Liveness probe
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/health [get]
func (h *Health) healthAction(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
