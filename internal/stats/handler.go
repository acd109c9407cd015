package stats

import (
	"net/http"
	"strconv"

	"labhouse/internal/inventory"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *inventory.Store
}

func NewHandler(store *inventory.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stats", h.getSummary)
	router.GET("/stats/activity", h.getActivity)
}

func (h *Handler) getSummary(c *gin.Context) {
	summary, _ := Compute(h.store.Rooms())
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) getActivity(c *gin.Context) {
	_, feed := Compute(h.store.Rooms())
	if feed == nil {
		feed = []Activity{}
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	if limit > len(feed) {
		limit = len(feed)
	}

	c.JSON(http.StatusOK, feed[:limit])
}
