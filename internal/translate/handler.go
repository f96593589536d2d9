package translate

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

func aiStatus(err error) int {
	if errors.Is(err, ErrNotConfigured) {
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

// --------------------------------------------------
// POST /api/translate
// --------------------------------------------------
func (h *Handler) Translate(c *gin.Context) {
	var req struct {
		Text           string `json:"text"`
		SourceLanguage string `json:"source_language"`
		TargetLanguage string `json:"target_language"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	translated, err := h.service.Translate(
		c.Request.Context(),
		req.Text,
		req.SourceLanguage,
		req.TargetLanguage,
	)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translated_text": translated,
		"source_language": req.SourceLanguage,
		"target_language": req.TargetLanguage,
	})
}

// --------------------------------------------------
// POST /api/translate/batch
// --------------------------------------------------
func (h *Handler) TranslateBatch(c *gin.Context) {
	var req struct {
		Texts          []string `json:"texts"`
		SourceLanguage string   `json:"source_language"`
		TargetLanguage string   `json:"target_language"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	translated, err := h.service.TranslateBatch(
		c.Request.Context(),
		req.Texts,
		req.SourceLanguage,
		req.TargetLanguage,
	)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"translated_texts": translated,
		"target_language":  req.TargetLanguage,
	})
}

// --------------------------------------------------
// POST /api/detect-language
// --------------------------------------------------
func (h *Handler) DetectLanguage(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	code, err := h.service.DetectLanguage(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(aiStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"language_code": code,
		"language_name": LanguageName(code),
	})
}

// --------------------------------------------------
// GET /api/translations/menu/:restaurant_id?language=
// --------------------------------------------------
func (h *Handler) GetMenuTranslations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	language := c.DefaultQuery("language", "en")

	translations, err := h.service.GetMenuTranslations(
		c.Request.Context(),
		restaurantID,
		language,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": restaurantID,
		"language":      language,
		"translations":  translations,
	})
}

// --------------------------------------------------
// POST /api/translations/menu/:restaurant_id
// --------------------------------------------------
func (h *Handler) SaveMenuTranslations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	var req struct {
		Translations []*MenuTranslation `json:"translations"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || len(req.Translations) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "translations are required"})
		return
	}

	saved, err := h.service.SaveMenuTranslations(
		c.Request.Context(),
		restaurantID,
		req.Translations,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"saved":   saved,
	})
}

// --------------------------------------------------
// DELETE /api/translations/menu/:restaurant_id
// DELETE /api/translations/menu/:restaurant_id/:menu_id
// --------------------------------------------------
func (h *Handler) DeleteMenuTranslations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	if err := h.service.DeleteMenuTranslations(c.Request.Context(), restaurantID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteMenuItemTranslations(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	menuID := c.Param("menu_id")

	if err := h.service.DeleteMenuItemTranslations(c.Request.Context(), restaurantID, menuID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
