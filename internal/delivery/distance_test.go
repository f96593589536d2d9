package delivery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunchiroshop/smart-menu-for-thai-res-NZ/internal/restaurant"
)

func TestHaversineKnownDistance(t *testing.T) {
	// Auckland Sky Tower to Wellington, roughly 480 km.
	d := HaversineKM(-36.8485, 174.7633, -41.2866, 174.7756)
	assert.InDelta(t, 480, d, 15)

	// Same point is zero.
	assert.InDelta(t, 0, HaversineKM(-36.8485, 174.7633, -36.8485, 174.7633), 0.001)
}

func TestRoadDistanceAppliesFactor(t *testing.T) {
	straight := HaversineKM(-36.8485, 174.7633, -36.9, 174.8)
	assert.InDelta(t, straight*1.3, RoadDistanceKM(-36.8485, 174.7633, -36.9, 174.8), 0.001)
}

type stubGeocoder struct {
	lat, lng float64
	address  string
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (float64, float64, string, error) {
	return s.lat, s.lng, s.address, nil
}

type stubRestaurants struct {
	restaurant *restaurant.Restaurant
}

func (s *stubRestaurants) ResolvePublic(ctx context.Context, idOrSlug string) (*restaurant.Restaurant, error) {
	if s.restaurant == nil {
		return nil, restaurant.ErrNotFound
	}
	return s.restaurant, nil
}

func restaurantAt(lat, lng float64) *restaurant.Restaurant {
	return &restaurant.Restaurant{
		ID:        "res-1",
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func TestCalculatePerKM(t *testing.T) {
	res := restaurantAt(-36.8485, 174.7633)
	res.DeliverySettings = &restaurant.DeliverySettings{
		PricingMode:   "per_km",
		BaseFee:       5,
		PricePerKM:    2,
		MaxDistanceKM: 20,
	}

	// Customer roughly 6.8 km straight line away.
	svc := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -36.9, lng: 174.8, address: "somewhere in Onehunga"})

	quote, err := svc.Calculate(context.Background(), "res-1", "10 Example St")
	require.NoError(t, err)

	assert.True(t, quote.InRange)
	assert.Equal(t, round2(5+quote.DistanceKM*2), quote.Fee)
	assert.Greater(t, quote.DurationMinutes, 15)
	assert.Equal(t, "somewhere in Onehunga", quote.FormattedAddress)
}

func TestCalculateTiers(t *testing.T) {
	res := restaurantAt(-36.8485, 174.7633)
	res.DeliveryRates = []restaurant.DeliveryTier{
		{MaxKM: 3, Price: 4},
		{MaxKM: 10, Price: 8},
		{MaxKM: 25, Price: 15},
	}

	svc := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -36.9, lng: 174.8})

	quote, err := svc.Calculate(context.Background(), "res-1", "10 Example St")
	require.NoError(t, err)

	// ~8.8 km road distance lands in the 10 km tier.
	assert.Equal(t, 8.0, quote.Fee)
}

func TestCalculateOutOfRange(t *testing.T) {
	res := restaurantAt(-36.8485, 174.7633)
	res.DeliverySettings = &restaurant.DeliverySettings{
		PricingMode:   "per_km",
		BaseFee:       5,
		PricePerKM:    2,
		MaxDistanceKM: 3,
	}

	svc := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -36.9, lng: 174.8})

	quote, err := svc.Calculate(context.Background(), "res-1", "10 Example St")
	require.NoError(t, err)

	assert.False(t, quote.InRange)
	assert.Equal(t, 0.0, quote.Fee)
}

func TestCalculateTierModeBoundsRange(t *testing.T) {
	// No delivery_settings row; the largest tier bounds the area.
	res := restaurantAt(-36.8485, 174.7633)
	res.DeliveryRates = []restaurant.DeliveryTier{
		{MaxKM: 3, Price: 4},
		{MaxKM: 10, Price: 8},
	}

	// Customer in Wellington, far beyond every tier.
	svc := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -41.2866, lng: 174.7756})

	quote, err := svc.Calculate(context.Background(), "res-1", "1 Lambton Quay")
	require.NoError(t, err)

	assert.False(t, quote.InRange)
	assert.Equal(t, 0.0, quote.Fee)
}

func TestCalculateDefaultRangeWithoutSettings(t *testing.T) {
	// No settings and no tiers falls back to the 15 km cutoff.
	res := restaurantAt(-36.8485, 174.7633)

	far := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -41.2866, lng: 174.7756})
	quote, err := far.Calculate(context.Background(), "res-1", "1 Lambton Quay")
	require.NoError(t, err)
	assert.False(t, quote.InRange)

	near := NewService(&stubRestaurants{restaurant: res}, &stubGeocoder{lat: -36.9, lng: 174.8})
	quote, err = near.Calculate(context.Background(), "res-1", "10 Example St")
	require.NoError(t, err)
	assert.True(t, quote.InRange)
}

func TestCalculateRequiresRestaurantLocation(t *testing.T) {
	svc := NewService(&stubRestaurants{restaurant: &restaurant.Restaurant{ID: "res-1"}}, &stubGeocoder{})

	_, err := svc.Calculate(context.Background(), "res-1", "10 Example St")
	assert.Error(t, err)
}
