package menu

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

type Handler struct {
	service     *Service
	restaurants *restaurant.Service
}

func NewHandler(service *Service, restaurants *restaurant.Service) *Handler {
	return &Handler{service: service, restaurants: restaurants}
}

// --------------------------------------------------
// POST /api/menu
// --------------------------------------------------
func (h *Handler) SaveItem(c *gin.Context) {
	var item MenuItem

	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.service.SaveItem(c.Request.Context(), &item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// --------------------------------------------------
// GET /api/menus?restaurant_id=
// --------------------------------------------------
func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context(), c.Query("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"menus": items})
}

// --------------------------------------------------
// GET/PUT/DELETE /api/menu/:id
// --------------------------------------------------
func (h *Handler) GetItem(c *gin.Context) {
	item, err := h.service.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	var req ItemUpdateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	if err := h.service.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "menu item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// GET /api/menu-stats?restaurant_id=
// --------------------------------------------------
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), c.Query("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// --------------------------------------------------
// POST /api/menus/copy-to-restaurant
// --------------------------------------------------
func (h *Handler) CopyToRestaurant(c *gin.Context) {
	var req struct {
		MenuID             string `json:"menu_id"`
		TargetRestaurantID string `json:"target_restaurant_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.MenuID == "" || req.TargetRestaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "menu_id and target_restaurant_id are required"})
		return
	}

	copied, err := h.service.CopyToRestaurant(
		c.Request.Context(),
		c.GetString("userID"),
		req.MenuID,
		req.TargetRestaurantID,
	)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, copied)
}

// --------------------------------------------------
// Best sellers
// --------------------------------------------------
func (h *Handler) GetBestSellers(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sellers, err := h.service.GetBestSellers(c.Request.Context(), c.Query("restaurant_id"), days, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"best_sellers": sellers})
}

func (h *Handler) UpdateBestSellers(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	flagged, err := h.service.UpdateBestSellers(c.Request.Context(), req.RestaurantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "flagged": flagged})
}

func (h *Handler) UpdateAllBestSellers(c *gin.Context) {
	updated, err := h.service.UpdateAllBestSellers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "restaurants_updated": updated})
}

// --------------------------------------------------
// POST /api/menu/qr
// --------------------------------------------------
func (h *Handler) QRCode(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		URL          string `json:"url"`
		Size         int    `json:"size"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	url := req.URL
	if url == "" && req.RestaurantID != "" {
		base := os.Getenv("PUBLIC_MENU_BASE_URL")
		if base == "" {
			base = "https://smartmenu.example.com/menu"
		}
		url = base + "/" + req.RestaurantID
	}

	qr, err := GenerateQR(url, req.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"qr_code": qr, "url": url})
}

// --------------------------------------------------
// GET /api/public/menu/:restaurant_id  (UUID or slug)
// --------------------------------------------------
func (h *Handler) PublicMenu(c *gin.Context) {
	res, err := h.restaurants.ResolvePublic(c.Request.Context(), c.Param("restaurant_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "restaurant not found"})
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), res.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load menu"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": h.restaurants.PublicView(c.Request.Context(), res),
		"menus":      items,
	})
}
