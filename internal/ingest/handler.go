package ingest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/ingest/menu
// --------------------------------------------------

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("userID")

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu file is required"})
		return
	}

	ing, err := h.service.Upload(
		c.Request.Context(),
		c.PostForm("restaurant_id"),
		userID,
		c.PostForm("target_language"),
		file,
	)
	if err != nil {
		if err.Error() == "restaurant does not belong to this account" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, ing)
}

// --------------------------------------------------
// GET /api/ingest/menu/:id
// --------------------------------------------------

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingestion id"})
		return
	}

	ing, err := h.service.Get(c.Request.Context(), id, c.Query("restaurant_id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ingestion not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ing)
}

// --------------------------------------------------
// GET /api/ingest/restaurant/:id
// --------------------------------------------------

func (h *Handler) List(c *gin.Context) {
	userID := c.GetString("userID")

	ingestions, err := h.service.List(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if err.Error() == "restaurant does not belong to this account" {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ingestions == nil {
		ingestions = []*Ingestion{}
	}
	c.JSON(http.StatusOK, gin.H{"ingestions": ingestions})
}

// --------------------------------------------------
// POST /api/ingest/menu/:id/retry
// --------------------------------------------------

func (h *Handler) Retry(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingestion id"})
		return
	}

	if err := h.service.Retry(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no failed ingestion with that id"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingestion queued again"})
}
