package delivery

import (
	"context"
	"errors"
	"math"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

// Restaurants resolves a restaurant by id or slug.
type Restaurants interface {
	ResolvePublic(ctx context.Context, idOrSlug string) (*restaurant.Restaurant, error)
}

type Service struct {
	restaurants Restaurants
	geocoder    restaurant.Geocoder
}

func NewService(restaurants Restaurants, geocoder restaurant.Geocoder) *Service {
	return &Service{restaurants: restaurants, geocoder: geocoder}
}

// Quote is a delivery fee calculation for one address.
type Quote struct {
	DistanceKM       float64 `json:"distance_km"`
	DurationMinutes  int     `json:"duration_minutes"`
	Fee              float64 `json:"fee"`
	InRange          bool    `json:"in_range"`
	FormattedAddress string  `json:"formatted_address"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// feeFor prices a distance using the restaurant's delivery settings.
// Tier pricing picks the smallest tier covering the distance, or the
// largest tier when the distance is beyond all of them.
func feeFor(res *restaurant.Restaurant, distanceKM float64) float64 {
	settings := res.DeliverySettings
	if settings != nil && settings.PricingMode == "per_km" {
		return round2(settings.BaseFee + distanceKM*settings.PricePerKM)
	}

	if len(res.DeliveryRates) == 0 {
		if settings != nil {
			return round2(settings.BaseFee)
		}
		return 0
	}

	var match *restaurant.DeliveryTier
	var largest *restaurant.DeliveryTier
	for i := range res.DeliveryRates {
		tier := &res.DeliveryRates[i]
		if largest == nil || tier.MaxKM > largest.MaxKM {
			largest = tier
		}
		if distanceKM <= tier.MaxKM && (match == nil || tier.MaxKM < match.MaxKM) {
			match = tier
		}
	}
	if match == nil {
		match = largest
	}
	return round2(match.Price)
}

// Tier pricing bounds the delivery area by the largest tier when no
// explicit max distance is configured.
const defaultTierRangeKM = 15

// rangeLimitKM is the distance beyond which the restaurant does not
// deliver. Zero means unbounded (per-km pricing with no cap).
func rangeLimitKM(res *restaurant.Restaurant) float64 {
	settings := res.DeliverySettings
	if settings != nil && settings.MaxDistanceKM > 0 {
		return settings.MaxDistanceKM
	}
	if settings != nil && settings.PricingMode == "per_km" {
		return 0
	}

	limit := 0.0
	for _, tier := range res.DeliveryRates {
		if tier.MaxKM > limit {
			limit = tier.MaxKM
		}
	}
	if limit == 0 {
		limit = defaultTierRangeKM
	}
	return limit
}

// Calculate geocodes the customer address and quotes the delivery.
func (s *Service) Calculate(ctx context.Context, restaurantID, address string) (*Quote, error) {
	res, err := s.restaurants.ResolvePublic(ctx, restaurantID)
	if err != nil {
		return nil, errors.New("restaurant not found")
	}
	if res.Latitude == nil || res.Longitude == nil {
		return nil, errors.New("restaurant has no location set")
	}

	lat, lng, formatted, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	distance := round1(RoadDistanceKM(*res.Latitude, *res.Longitude, lat, lng))

	quote := &Quote{
		DistanceKM:       distance,
		DurationMinutes:  EstimateMinutes(distance),
		FormattedAddress: formatted,
		InRange:          true,
	}

	if limit := rangeLimitKM(res); limit > 0 && distance > limit {
		quote.InRange = false
		return quote, nil
	}

	quote.Fee = feeFor(res, distance)
	return quote, nil
}

// Geocode exposes the raw address lookup.
func (s *Service) Geocode(ctx context.Context, address string) (float64, float64, string, error) {
	return s.geocoder.Geocode(ctx, address)
}
