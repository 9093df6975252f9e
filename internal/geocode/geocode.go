// Package geocode resolves postal addresses into coordinates and normalized
// address components through a Nominatim-style JSON API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/techBikashRepo/jobbee-api/internal/model"
	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

// Geocoder resolves an address into a location.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (model.Location, error)
}

// Client calls the configured geocoding provider.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient builds a geocoding client from configuration.
func NewClient(cfg *config.GeocoderConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

type geocodeResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		State       string `json:"state"`
		Postcode    string `json:"postcode"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Geocode resolves the given address. An address the provider cannot resolve
// is an error; the caller decides whether that fails the request.
func (c *Client) Geocode(ctx context.Context, address string) (model.Location, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "jsonv2")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return model.Location{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Location{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.Location{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []geocodeResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return model.Location{}, fmt.Errorf("geocoder response decode failed: %w", err)
	}
	if len(results) == 0 {
		return model.Location{}, fmt.Errorf("no geocoding result for address %q", address)
	}

	r := results[0]
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("geocoder returned bad latitude %q", r.Lat)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return model.Location{}, fmt.Errorf("geocoder returned bad longitude %q", r.Lon)
	}

	city := r.Address.City
	if city == "" {
		city = r.Address.Town
	}

	return model.Location{
		Latitude:         lat,
		Longitude:        lon,
		FormattedAddress: r.DisplayName,
		City:             city,
		State:            r.Address.State,
		Zipcode:          r.Address.Postcode,
		Country:          r.Address.CountryCode,
	}, nil
}
