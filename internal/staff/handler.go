package staff

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service   *Service
	assistant *Assistant
}

func NewHandler(service *Service, assistant *Assistant) *Handler {
	return &Handler{service: service, assistant: assistant}
}

func failStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case err.Error() == "restaurant does not belong to this account":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// --------------------------------------------------
// POST /api/staff/create
// --------------------------------------------------

func (h *Handler) Create(c *gin.Context) {
	userID := c.GetString("userID")

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, member)
}

// --------------------------------------------------
// GET /api/staff/list?restaurant_id=
// --------------------------------------------------

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	members, err := h.service.List(c.Request.Context(), c.Query("restaurant_id"), userID)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}
	if members == nil {
		members = []*Member{}
	}
	c.JSON(http.StatusOK, gin.H{"staff": members})
}

// --------------------------------------------------
// PUT /api/staff/:id
// --------------------------------------------------

func (h *Handler) Update(c *gin.Context) {
	userID := c.GetString("userID")

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := h.service.Update(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, member)
}

// --------------------------------------------------
// DELETE /api/staff/:id
// --------------------------------------------------

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.service.Deactivate(c.Request.Context(), c.Param("id"), userID); err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "staff member deactivated"})
}

// --------------------------------------------------
// POST /api/staff/verify-pin
// --------------------------------------------------

func (h *Handler) VerifyPIN(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		PIN          string `json:"pin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	member, err := h.service.VerifyPIN(c.Request.Context(), req.RestaurantID, req.PIN)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"staff_id": member.ID,
		"name":     member.Name,
		"role":     member.Role,
	})
}

// --------------------------------------------------
// GET /api/staff/activity?restaurant_id=
// --------------------------------------------------

func (h *Handler) Activity(c *gin.Context) {
	userID := c.GetString("userID")

	activity, err := h.service.RecentActivity(c.Request.Context(), c.Query("restaurant_id"), userID)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}
	if activity == nil {
		activity = []*Activity{}
	}
	c.JSON(http.StatusOK, gin.H{"activity": activity})
}

// --------------------------------------------------
// POST /api/staff/ask
// --------------------------------------------------

func (h *Handler) Ask(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		Question     string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	answer, err := h.assistant.Ask(c.Request.Context(), req.RestaurantID, req.Question)
	if err != nil {
		if errors.Is(err, ErrAINotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}
