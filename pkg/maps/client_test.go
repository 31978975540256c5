package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodtruck-ordering/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, "test-key", "de"), srv
}

func TestGeocode_ParsesFirstResult(t *testing.T) {
	var gotQuery string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("address")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Leopoldstraße 1, 80802 München, Germany",
				"place_id": "place-123",
				"geometry": {"location": {"lat": 48.1562, "lng": 11.5861}},
				"address_components": [
					{"long_name": "Leopoldstraße", "types": ["route"]},
					{"long_name": "München", "types": ["locality", "political"]},
					{"long_name": "80802", "types": ["postal_code"]},
					{"long_name": "Germany", "types": ["country", "political"]}
				]
			}]
		}`))
	})
	defer srv.Close()

	addr, err := c.Geocode(context.Background(), "Leopoldstraße 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "Leopoldstraße 1" {
		t.Fatalf("address query not forwarded, got %q", gotQuery)
	}
	if addr.PlaceID != "place-123" || addr.FormattedAddress == "" {
		t.Fatalf("unexpected address: %+v", addr)
	}
	if addr.Coordinates.Lat != 48.1562 || addr.Coordinates.Lng != 11.5861 {
		t.Fatalf("unexpected coordinates: %+v", addr.Coordinates)
	}
	if addr.Components.Street != "Leopoldstraße" || addr.Components.City != "München" ||
		addr.Components.PostalCode != "80802" || addr.Components.Country != "Germany" {
		t.Fatalf("unexpected components: %+v", addr.Components)
	}
}

func TestGeocode_CityFallsBackToAdminArea(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"formatted_address": "Somewhere rural",
				"place_id": "p",
				"geometry": {"location": {"lat": 48.0, "lng": 11.0}},
				"address_components": [
					{"long_name": "Landkreis München", "types": ["administrative_area_level_2"]}
				]
			}]
		}`))
	})
	defer srv.Close()

	addr, err := c.Geocode(context.Background(), "some hamlet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Components.City != "Landkreis München" {
		t.Fatalf("expected admin-area fallback, got %q", addr.Components.City)
	}
	// Missing components default to empty strings, not an error.
	if addr.Components.Street != "" || addr.Components.PostalCode != "" {
		t.Fatalf("expected empty missing components: %+v", addr.Components)
	}
}

func TestGeocode_NoResults(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})
	defer srv.Close()

	_, err := c.Geocode(context.Background(), "gibberish input")
	if !errors.Is(err, models.ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestPredict_ShortInputMakesNoCall(t *testing.T) {
	calls := 0
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "OK", "predictions": []}`))
	})
	defer srv.Close()

	preds, err := c.Predict(context.Background(), "ab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 0 {
		t.Fatalf("expected no predictions, got %d", len(preds))
	}
	if calls != 0 {
		t.Fatalf("expected zero network calls for short input, got %d", calls)
	}
}

func TestPredict_InputLengthCountsCharactersNotBytes(t *testing.T) {
	calls := 0
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"status": "OK", "predictions": []}`))
	})
	defer srv.Close()

	// "Mü" is 3 bytes but only 2 characters.
	if _, err := c.Predict(context.Background(), "Mü"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("2-character input must not hit the network, got %d calls", calls)
	}

	if _, err := c.Predict(context.Background(), "Mün"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("3-character input must query, got %d calls", calls)
	}
}

func TestPredict_RestrictsCountryAndMapsFields(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("components"); got != "country:de" {
			t.Errorf("expected country restriction, got %q", got)
		}
		w.Write([]byte(`{
			"status": "OK",
			"predictions": [{
				"place_id": "p1",
				"description": "Marienplatz 1, München, Germany",
				"structured_formatting": {"main_text": "Marienplatz 1", "secondary_text": "München, Germany"}
			}]
		}`))
	})
	defer srv.Close()

	preds, err := c.Predict(context.Background(), "Marien")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 1 {
		t.Fatalf("expected 1 prediction, got %d", len(preds))
	}
	p := preds[0]
	if p.PlaceID != "p1" || p.MainText != "Marienplatz 1" || p.SecondaryText != "München, Germany" {
		t.Fatalf("unexpected prediction: %+v", p)
	}
}

func TestPredict_RemoteFailureIsEmptyNotError(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED"}`))
	})
	defer srv.Close()

	preds, err := c.Predict(context.Background(), "Marien")
	if err != nil {
		t.Fatalf("remote failure must not surface as error, got %v", err)
	}
	if len(preds) != 0 {
		t.Fatalf("expected empty predictions, got %d", len(preds))
	}
}

func TestDistance_OK(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("mode"); got != "driving" {
			t.Errorf("expected driving mode, got %q", got)
		}
		w.Write([]byte(`{
			"status": "OK",
			"rows": [{"elements": [{
				"status": "OK",
				"distance": {"value": 6000, "text": "6.0 km"},
				"duration": {"value": 720, "text": "12 mins"}
			}]}]
		}`))
	})
	defer srv.Close()

	leg, err := c.Distance(context.Background(), models.Coordinates{Lat: 48.1374, Lng: 11.5755}, models.Coordinates{Lat: 48.19, Lng: 11.61})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if leg.DistanceMeters != 6000 || leg.DurationSeconds != 720 {
		t.Fatalf("unexpected leg: %+v", leg)
	}
	if leg.DistanceText != "6.0 km" || leg.DurationText != "12 mins" {
		t.Fatalf("unexpected leg texts: %+v", leg)
	}
}

func TestDistance_ElementNotOK(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "rows": [{"elements": [{"status": "ZERO_RESULTS"}]}]}`))
	})
	defer srv.Close()

	_, err := c.Distance(context.Background(), models.Coordinates{}, models.Coordinates{})
	if !errors.Is(err, models.ErrRouteNotFound) {
		t.Fatalf("expected ErrRouteNotFound, got %v", err)
	}
}

func TestTransportFailureIsServiceUnavailable(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // connection refused from here on

	if _, err := c.Geocode(context.Background(), "Marienplatz 1"); !errors.Is(err, models.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
	if _, err := c.Distance(context.Background(), models.Coordinates{}, models.Coordinates{}); !errors.Is(err, models.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}
}
