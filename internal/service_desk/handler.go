package service_desk

import (
	"errors"
	"net/http"

	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/security"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	ledger  *Ledger
	service *Service
}

func NewHandler(ledger *Ledger, service *Service) *Handler {
	return &Handler{ledger: ledger, service: service}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	serviceDesk := router.Group("/service-desk")
	{
		serviceDesk.GET("/requests", h.getRequests)
		serviceDesk.POST("/requests", h.createRequest)
		serviceDesk.PUT("/requests/:id/status", security.Authorize("lab_head"), h.changeStatus)
		serviceDesk.POST("/reports", h.reportIssue)
	}
}

func (h *Handler) getRequests(c *gin.Context) {
	if roomID := c.Query("room_id"); roomID != "" {
		c.JSON(http.StatusOK, h.ledger.RequestsByRoom(roomID))
		return
	}
	c.JSON(http.StatusOK, h.ledger.Requests())
}

func (h *Handler) createRequest(c *gin.Context) {
	var in CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if in.RequesterName == "" {
		in.RequesterName = security.DisplayNameFromContext(c)
	}

	req, err := h.ledger.AddRequest(in)
	if err != nil {
		respondError(c, err, http.StatusCreated, req)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func (h *Handler) changeStatus(c *gin.Context) {
	var body struct {
		Status          string `json:"status" binding:"required"`
		RejectionReason string `json:"rejection_reason"`
		ResolutionNote  string `json:"resolution_note"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	req, err := h.ledger.ChangeStatus(c.Param("id"), body.Status, body.RejectionReason, body.ResolutionNote)
	if err != nil {
		respondError(c, err, http.StatusOK, req)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) reportIssue(c *gin.Context) {
	var in CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}
	if in.RequesterName == "" {
		in.RequesterName = security.DisplayNameFromContext(c)
	}

	req, err := h.service.ReportIssue(in)
	if err != nil {
		respondError(c, err, http.StatusCreated, req)
		return
	}
	c.JSON(http.StatusCreated, req)
}

func respondError(c *gin.Context, err error, okStatus int, body any) {
	var storageErr *custom_error.StorageError
	if errors.As(err, &storageErr) {
		c.JSON(okStatus, gin.H{"result": body, "warning": "state saved in memory only", "details": storageErr.Error()})
		return
	}

	switch err.(type) {
	case *custom_error.ValidationError:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case *custom_error.NotFoundError:
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case *custom_error.InvalidStateError:
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error", "details": err.Error()})
	}
}
