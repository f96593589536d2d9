package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// NominatimClient geocodes addresses against the OpenStreetMap
// Nominatim API. Nominatim requires an identifying User-Agent.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

func NewNominatimClient() *NominatimClient {
	base := os.Getenv("NOMINATIM_BASE_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org"
	}
	return &NominatimClient{
		baseURL:   strings.TrimRight(base, "/"),
		userAgent: "smart-menu-backend/1.0 (delivery distance lookups)",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Geocode returns latitude, longitude and the formatted address of
// the best match.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (float64, float64, string, error) {
	if strings.TrimSpace(address) == "" {
		return 0, 0, "", errors.New("address is required")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1&addressdetails=0",
		c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, "", err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, "", fmt.Errorf("geocoding failed with status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return 0, 0, "", err
	}
	if len(results) == 0 {
		return 0, 0, "", errors.New("address not found")
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, "", err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, "", err
	}
	return lat, lng, results[0].DisplayName, nil
}
