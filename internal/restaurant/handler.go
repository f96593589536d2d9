package restaurant

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func failStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case err.Error() == "restaurant does not belong to this user":
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// --------------------------------------------------
// GET /api/restaurants
// --------------------------------------------------
func (h *Handler) ListMy(c *gin.Context) {
	userID := c.GetString("userID")

	restaurants, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch restaurants"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"restaurants": restaurants})
}

// --------------------------------------------------
// POST /api/restaurant
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Address     string `json:"address"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.service.Create(
		c.Request.Context(),
		c.GetString("userID"),
		req.Name,
		req.Description,
		req.Address,
		req.Phone,
		req.Email,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, res)
}

// --------------------------------------------------
// PUT /api/restaurant/:id
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.service.Update(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		req,
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// DELETE /api/restaurant/:id
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	err := h.service.Delete(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// POST /api/user/set-restaurant
// --------------------------------------------------
func (h *Handler) SetActive(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.RestaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "restaurant_id is required"})
		return
	}

	if err := h.service.SetActive(c.Request.Context(), c.GetString("userID"), req.RestaurantID); err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "active_restaurant_id": req.RestaurantID})
}

// --------------------------------------------------
// GET /api/user/profile
// --------------------------------------------------
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(
		c.Request.Context(),
		c.GetString("userID"),
		c.Query("restaurant_id"),
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// --------------------------------------------------
// PUT /api/user/profile
// --------------------------------------------------
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		ProfileUpdateRequest
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.service.UpdateProfile(
		c.Request.Context(),
		c.GetString("userID"),
		req.RestaurantID,
		req.ProfileUpdateRequest,
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}

// --------------------------------------------------
// PUT /api/restaurant/service-options
// --------------------------------------------------
func (h *Handler) UpdateServiceOptions(c *gin.Context) {
	var req ServiceOptionsRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	res, err := h.service.UpdateServiceOptions(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"service_options":  res.ServiceOptions,
		"primary_language": res.PrimaryLanguage,
	})
}

// --------------------------------------------------
// GET/PUT /api/restaurant/:id/payment-settings
// --------------------------------------------------
func (h *Handler) GetPaymentSettings(c *gin.Context) {
	settings, err := h.service.GetPaymentSettings(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdatePaymentSettings(c *gin.Context) {
	var req PaymentSettings

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.service.UpdatePaymentSettings(
		c.Request.Context(),
		c.GetString("userID"),
		c.Param("id"),
		req,
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Customization
// --------------------------------------------------
func (h *Handler) GetCustomization(c *gin.Context) {
	custom, err := h.service.GetCustomization(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, custom)
}

func (h *Handler) SetThemeColor(c *gin.Context) {
	var req struct {
		RestaurantID string `json:"restaurant_id"`
		ThemeColor   string `json:"theme_color"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	color, err := h.service.SetThemeColor(
		c.Request.Context(),
		c.GetString("userID"),
		req.RestaurantID,
		req.ThemeColor,
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "theme_color": color})
}

func (h *Handler) readImageForm(c *gin.Context) (string, []byte, string, bool) {
	restaurantID := c.PostForm("restaurant_id")
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return "", nil, "", false
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return "", nil, "", false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
		return "", nil, "", false
	}

	return restaurantID, data, file.Header.Get("Content-Type"), true
}

func (h *Handler) UploadLogo(c *gin.Context) {
	restaurantID, data, contentType, ok := h.readImageForm(c)
	if !ok {
		return
	}

	url, err := h.service.SetLogo(c.Request.Context(), c.GetString("userID"), restaurantID, data, contentType)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "logo_url": url})
}

func (h *Handler) UploadCover(c *gin.Context) {
	restaurantID, data, contentType, ok := h.readImageForm(c)
	if !ok {
		return
	}

	url, err := h.service.SetCover(c.Request.Context(), c.GetString("userID"), restaurantID, data, contentType)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "cover_image_url": url})
}

func (h *Handler) DeleteCover(c *gin.Context) {
	err := h.service.DeleteCover(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Location
// --------------------------------------------------
func (h *Handler) GetLocation(c *gin.Context) {
	res, err := h.service.GetLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": res.ID,
		"latitude":      res.Latitude,
		"longitude":     res.Longitude,
		"address":       res.Address,
	})
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var req struct {
		RestaurantID string   `json:"restaurant_id"`
		Latitude     *float64 `json:"latitude"`
		Longitude    *float64 `json:"longitude"`
		Address      string   `json:"address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	lat, lng, err := h.service.UpdateLocation(
		c.Request.Context(),
		c.GetString("userID"),
		req.RestaurantID,
		req.Latitude,
		req.Longitude,
		req.Address,
	)
	if err != nil {
		c.JSON(failStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"latitude":  lat,
		"longitude": lng,
	})
}
