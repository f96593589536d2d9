package translate

import (
	"context"
	"errors"
	"strings"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/ai"
)

var ErrNotConfigured = errors.New("translation service not configured")

type Service struct {
	ai    ai.Client
	repo  Repository
	cache *Cache
}

func NewService(aiClient ai.Client, repo Repository, cache *Cache) *Service {
	return &Service{ai: aiClient, repo: repo, cache: cache}
}

// --------------------------------------------------
// Single text translation
// --------------------------------------------------
func (s *Service) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("text is required")
	}
	if !IsSupportedLanguage(targetLang) {
		return "", errors.New("unsupported target language: " + targetLang)
	}
	if !s.ai.Configured() {
		return "", ErrNotConfigured
	}

	source := LanguageName(sourceLang)
	if sourceLang == "" || sourceLang == "auto" {
		source = "the source language (detect it)"
	}

	prompt := ai.BuildTranslationPrompt(text, source, LanguageName(targetLang))

	out, err := s.ai.Chat(ctx, "", prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}

// TranslateBatch translates each text independently.
// A failed text falls back to the original so one bad item
// does not sink the whole menu.
func (s *Service) TranslateBatch(ctx context.Context, texts []string, sourceLang, targetLang string) ([]string, error) {
	if len(texts) == 0 {
		return nil, errors.New("texts are required")
	}
	if !IsSupportedLanguage(targetLang) {
		return nil, errors.New("unsupported target language: " + targetLang)
	}
	if !s.ai.Configured() {
		return nil, ErrNotConfigured
	}

	results := make([]string, len(texts))
	for i, text := range texts {
		translated, err := s.Translate(ctx, text, sourceLang, targetLang)
		if err != nil {
			results[i] = text
			continue
		}
		results[i] = translated
	}

	return results, nil
}

func (s *Service) DetectLanguage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("text is required")
	}
	if !s.ai.Configured() {
		return "", ErrNotConfigured
	}

	out, err := s.ai.Chat(ctx, "", ai.BuildDetectLanguagePrompt(text))
	if err != nil {
		return "", err
	}

	code := strings.ToLower(strings.TrimSpace(out))
	if len(code) > 5 {
		return "", errors.New("could not detect language")
	}

	return code, nil
}

// --------------------------------------------------
// Menu translation cache (DB + redis)
// --------------------------------------------------

func (s *Service) GetMenuTranslations(ctx context.Context, restaurantID, languageCode string) ([]*MenuTranslation, error) {
	if restaurantID == "" {
		return nil, errors.New("restaurant_id is required")
	}
	if !IsSupportedLanguage(languageCode) {
		return nil, errors.New("unsupported language: " + languageCode)
	}

	if cached, ok := s.cache.Get(ctx, restaurantID, languageCode); ok {
		return cached, nil
	}

	translations, err := s.repo.ListByRestaurant(ctx, restaurantID, languageCode)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, restaurantID, languageCode, translations)
	return translations, nil
}

func (s *Service) SaveMenuTranslations(ctx context.Context, restaurantID string, translations []*MenuTranslation) (int, error) {
	if restaurantID == "" {
		return 0, errors.New("restaurant_id is required")
	}

	saved := 0
	for _, tr := range translations {
		if tr.MenuID == "" || tr.LanguageCode == "" {
			continue
		}
		if !IsSupportedLanguage(tr.LanguageCode) {
			continue
		}
		tr.RestaurantID = restaurantID

		if err := s.repo.Upsert(ctx, tr); err != nil {
			return saved, err
		}
		saved++
	}

	s.cache.Invalidate(ctx, restaurantID)
	return saved, nil
}

func (s *Service) DeleteMenuTranslations(ctx context.Context, restaurantID string) error {
	if err := s.repo.DeleteByRestaurant(ctx, restaurantID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, restaurantID)
	return nil
}

func (s *Service) DeleteMenuItemTranslations(ctx context.Context, restaurantID, menuID string) error {
	if err := s.repo.DeleteByMenu(ctx, restaurantID, menuID); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, restaurantID)
	return nil
}
