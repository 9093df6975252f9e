package geocode_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/techBikashRepo/jobbee-api/internal/geocode"
	"github.com/techBikashRepo/jobbee-api/pkg/config"
)

const nominatimFixture = `[{
	"lat": "42.3600825",
	"lon": "-71.0588801",
	"display_name": "Boston, Suffolk County, Massachusetts, United States",
	"address": {
		"city": "Boston",
		"state": "Massachusetts",
		"postcode": "02108",
		"country_code": "us"
	}
}]`

func newClient(serverURL string) *geocode.Client {
	return geocode.NewClient(&config.GeocoderConfig{
		BaseURL: serverURL,
		Timeout: 2 * time.Second,
	})
}

func TestGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "02108" {
			t.Errorf("q param = %q, want 02108", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nominatimFixture))
	}))
	defer server.Close()

	loc, err := newClient(server.URL).Geocode(context.Background(), "02108")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}

	if loc.Latitude < 42.35 || loc.Latitude > 42.37 {
		t.Errorf("latitude = %v", loc.Latitude)
	}
	if loc.Longitude > -71.05 || loc.Longitude < -71.06 {
		t.Errorf("longitude = %v", loc.Longitude)
	}
	if loc.City != "Boston" || loc.Zipcode != "02108" || loc.Country != "us" {
		t.Errorf("location = %+v", loc)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	if _, err := newClient(server.URL).Geocode(context.Background(), "nowhere"); err == nil {
		t.Error("expected error for empty result set")
	}
}

func TestGeocode_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if _, err := newClient(server.URL).Geocode(context.Background(), "02108"); err == nil {
		t.Error("expected error for non-200 response")
	}
}
