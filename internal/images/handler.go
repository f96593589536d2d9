package images

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/billing"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) fail(c *gin.Context, err error) {
	var limitErr *billing.LimitExceededError
	switch {
	case errors.Is(err, ErrAINotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusForbidden, gin.H{
			"error":     limitErr.Error(),
			"feature":   limitErr.Feature,
			"used":      limitErr.Used,
			"limit":     limitErr.Limit,
			"remaining": limitErr.Remaining,
		})
	case err.Error() == "restaurant does not belong to this account",
		err.Error() == "image search requires the premium plan":
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

// --------------------------------------------------
// GET /api/images/library
// --------------------------------------------------

func (h *Handler) Library(c *gin.Context) {
	userID := c.GetString("userID")

	imgs, err := h.service.Library(c.Request.Context(), userID, intQuery(c, "limit", 50))
	if err != nil {
		h.fail(c, err)
		return
	}
	if imgs == nil {
		imgs = []*LibraryImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": imgs})
}

// --------------------------------------------------
// GET /api/images/restaurant/:id
// --------------------------------------------------

func (h *Handler) ByRestaurant(c *gin.Context) {
	userID := c.GetString("userID")

	imgs, err := h.service.ByRestaurant(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if imgs == nil {
		imgs = []*LibraryImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": imgs})
}

// --------------------------------------------------
// GET /api/images/search
// --------------------------------------------------

func (h *Handler) Search(c *gin.Context) {
	userID := c.GetString("userID")

	imgs, err := h.service.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if imgs == nil {
		imgs = []*LibraryImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": imgs})
}

// --------------------------------------------------
// GET /api/images/recent
// --------------------------------------------------

func (h *Handler) Recent(c *gin.Context) {
	userID := c.GetString("userID")

	imgs, err := h.service.Recent(c.Request.Context(), userID, intQuery(c, "days", 7), intQuery(c, "limit", 50))
	if err != nil {
		h.fail(c, err)
		return
	}
	if imgs == nil {
		imgs = []*LibraryImage{}
	}
	c.JSON(http.StatusOK, gin.H{"images": imgs})
}

// --------------------------------------------------
// POST /api/ai/generate-image
// --------------------------------------------------

func (h *Handler) Generate(c *gin.Context) {
	userID := c.GetString("userID")

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	img, err := h.service.Generate(c.Request.Context(), userID, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// --------------------------------------------------
// POST /api/ai/enhance-image-upload
// --------------------------------------------------

func (h *Handler) Enhance(c *gin.Context) {
	userID := c.GetString("userID")

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	img, err := h.service.Enhance(
		c.Request.Context(),
		userID,
		c.PostForm("restaurant_id"),
		c.PostForm("style"),
		file,
		header,
	)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}

// --------------------------------------------------
// POST /api/ai/upload-image
// --------------------------------------------------

func (h *Handler) Upload(c *gin.Context) {
	userID := c.GetString("userID")

	var req struct {
		RestaurantID string `json:"restaurant_id"`
		Image        string `json:"image"`
		MenuItemName string `json:"menu_item_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	img, err := h.service.Upload(c.Request.Context(), userID, req.RestaurantID, req.Image, req.MenuItemName)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, img)
}
