package delivery

import (
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
// POST /api/delivery/calculate
// --------------------------------------------------

func (h *Handler) Calculate(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		Address      string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quote, err := h.service.Calculate(c.Request.Context(), req.RestaurantID, req.Address)
	if err != nil {
		if err.Error() == "restaurant not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// --------------------------------------------------
// POST /api/delivery/geocode
// --------------------------------------------------

func (h *Handler) Geocode(c *gin.Context) {
	var req struct {
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lat, lng, formatted, err := h.service.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"latitude":          lat,
		"longitude":         lng,
		"formatted_address": formatted,
	})
}
