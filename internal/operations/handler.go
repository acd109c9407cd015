package operations

import (
	"errors"
	"net/http"

	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	ops := router.Group("/operations", security.Authorize("staff"))
	{
		ops.POST("/transfers", h.transfer)
		ops.POST("/transfers/:logId/verify", h.verify)
		ops.POST("/checkouts", h.checkOut)
		ops.POST("/returns", h.checkIn)
	}
}

func (h *Handler) transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if req.Mover == "" {
		req.Mover = security.DisplayNameFromContext(c)
	}

	moved, err := h.service.Transfer(req)
	if err != nil {
		respondError(c, err, http.StatusOK, gin.H{"moved": moved})
		return
	}
	c.JSON(http.StatusOK, gin.H{"moved": moved})
}

func (h *Handler) verify(c *gin.Context) {
	var body struct {
		ConditionAfter string `json:"condition_after" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	item, err := h.service.Verify(c.Param("logId"), body.ConditionAfter)
	if err != nil {
		respondError(c, err, http.StatusOK, item)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) checkOut(c *gin.Context) {
	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.service.CheckOut(req); err != nil {
		respondError(c, err, http.StatusOK, gin.H{"checked_out": len(req.ItemIDs)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked_out": len(req.ItemIDs)})
}

func (h *Handler) checkIn(c *gin.Context) {
	var req UsageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	if err := h.service.CheckIn(req); err != nil {
		respondError(c, err, http.StatusOK, gin.H{"returned": len(req.ItemIDs)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"returned": len(req.ItemIDs)})
}

func respondError(c *gin.Context, err error, okStatus int, body any) {
	var storageErr *custom_error.StorageError
	if errors.As(err, &storageErr) {
		c.JSON(okStatus, gin.H{"result": body, "warning": "state saved in memory only", "details": storageErr.Error()})
		return
	}

	switch typed := err.(type) {
	case *custom_error.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.InvalidDestinationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *custom_error.InvalidStateError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": typed.Message, "items": typed.Items})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error", "details": err.Error()})
	}
}
