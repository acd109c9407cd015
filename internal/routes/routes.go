package routes

import (
	"net/http"

	"labhouse/internal/inventory"
	"labhouse/internal/operations"
	"labhouse/internal/service_desk"
	"labhouse/internal/stats"
	"labhouse/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Inventory   *inventory.Handler
	ServiceDesk *service_desk.Handler
	Operations  *operations.Handler
	Stats       *stats.Handler
}

// RegisterProtectedRoutes mounts the engine API behind the JWT
// middleware; per-route role checks live in the handlers.
func RegisterProtectedRoutes(router *gin.Engine, h Handlers) {
	protected := router.Group("", security.JWTMiddleware())

	h.Inventory.RegisterRoutes(protected)
	h.ServiceDesk.RegisterRoutes(protected)
	h.Operations.RegisterRoutes(protected)
	h.Stats.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
