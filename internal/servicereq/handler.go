package servicereq

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/service-requests
// --------------------------------------------------

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	sr, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if err.Error() == "restaurant not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, sr)
}

// --------------------------------------------------
// GET /api/service-requests?restaurant_id=&status=
// --------------------------------------------------

func (h *Handler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), c.Query("restaurant_id"), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if requests == nil {
		requests = []*ServiceRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// --------------------------------------------------
// PUT /api/service-requests/:id/status
// --------------------------------------------------

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status    string `json:"status"`
		StaffName string `json:"staff_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var err error
	switch req.Status {
	case StatusAcknowledged:
		err = h.service.Acknowledge(c.Request.Context(), c.Param("id"), req.StaffName)
	case StatusCompleted:
		err = h.service.Complete(c.Request.Context(), c.Param("id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be acknowledged or completed"})
		return
	}

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "service request not found or already in that state"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "request " + req.Status})
}
