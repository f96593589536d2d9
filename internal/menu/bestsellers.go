package menu

import (
	"context"
	"log"
)

const (
	defaultBestSellerDays  = 30
	defaultBestSellerLimit = 10
	bestSellerFlagCount    = 5
)

// GetBestSellers returns items ranked by sales over the window.
func (s *Service) GetBestSellers(ctx context.Context, restaurantID string, days, limit int) ([]*BestSeller, error) {
	if err := validRestaurantID(restaurantID); err != nil {
		return nil, err
	}

	if days <= 0 {
		days = defaultBestSellerDays
	}
	if limit <= 0 || limit > 50 {
		limit = defaultBestSellerLimit
	}

	sellers, err := s.repo.SalesSince(ctx, restaurantID, days, limit)
	if err != nil {
		return nil, err
	}
	if sellers == nil {
		sellers = []*BestSeller{}
	}
	return sellers, nil
}

// UpdateBestSellers recomputes the best-seller flags for one
// restaurant: the top sellers with actual sales gain the flag,
// manually pinned items always keep it.
func (s *Service) UpdateBestSellers(ctx context.Context, restaurantID string) (int, error) {
	if err := validRestaurantID(restaurantID); err != nil {
		return 0, err
	}

	sellers, err := s.repo.SalesSince(ctx, restaurantID, defaultBestSellerDays, bestSellerFlagCount)
	if err != nil {
		return 0, err
	}

	var topIDs []string
	for _, bs := range sellers {
		if bs.TotalSold > 0 {
			topIDs = append(topIDs, bs.ID)
		}
	}

	if err := s.repo.SetBestSellerFlags(ctx, restaurantID, topIDs); err != nil {
		return 0, err
	}
	return len(topIDs), nil
}

// UpdateAllBestSellers runs the recompute for every restaurant with
// menu items. Called from the admin endpoint and the cron schedule.
func (s *Service) UpdateAllBestSellers(ctx context.Context) (int, error) {
	ids, err := s.repo.ListRestaurantIDs(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, id := range ids {
		if _, err := s.UpdateBestSellers(ctx, id); err != nil {
			log.Printf("best-seller refresh failed restaurant=%s: %v", id, err)
			continue
		}
		updated++
	}

	return updated, nil
}
