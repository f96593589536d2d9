package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = time.Hour

// Cache is a redis layer in front of menu_translations.
// A nil redis client disables it, every method becomes a no-op miss.
type Cache struct {
	rdb *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func cacheKey(restaurantID, languageCode string) string {
	return fmt.Sprintf("menu_translations:%s:%s", restaurantID, languageCode)
}

func (c *Cache) Get(ctx context.Context, restaurantID, languageCode string) ([]*MenuTranslation, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, cacheKey(restaurantID, languageCode)).Bytes()
	if err != nil {
		return nil, false
	}

	var translations []*MenuTranslation
	if err := json.Unmarshal(raw, &translations); err != nil {
		return nil, false
	}

	return translations, true
}

func (c *Cache) Set(ctx context.Context, restaurantID, languageCode string, translations []*MenuTranslation) {
	if c == nil || c.rdb == nil {
		return
	}

	raw, err := json.Marshal(translations)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, cacheKey(restaurantID, languageCode), raw, cacheTTL)
}

// Invalidate drops every cached language for the restaurant.
func (c *Cache) Invalidate(ctx context.Context, restaurantID string) {
	if c == nil || c.rdb == nil {
		return
	}

	for code := range SupportedLanguages {
		c.rdb.Del(ctx, cacheKey(restaurantID, code))
	}
}
