package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"foodtruck-ordering/internal/models"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"

	// Autocomplete is skipped entirely for very short input to avoid noisy
	// queries on every early keystroke.
	minPredictionInput = 3
)

// Client talks to Google-style geocoding, place-autocomplete and
// distance-matrix endpoints. All methods make exactly one outbound call and
// never retry; transient failures surface as models.ErrServiceUnavailable.
type Client struct {
	baseURL     string
	apiKey      string
	countryCode string
	httpClient  *http.Client
}

// NewClient creates a maps client. countryCode restricts autocomplete
// candidates to the service region (e.g. "de").
func NewClient(baseURL, apiKey, countryCode string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: 8 * time.Second},
	}
}

// Geocode turns free-text address input into a validated address with
// coordinates. A non-OK status or an empty result set means the address does
// not exist as far as the provider is concerned: models.ErrAddressNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (models.ValidatedAddress, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", c.apiKey)

	var decoded geocodeResponse
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &decoded); err != nil {
		return models.ValidatedAddress{}, err
	}

	if decoded.Status != statusOK || len(decoded.Results) == 0 {
		return models.ValidatedAddress{}, models.ErrAddressNotFound
	}

	result := decoded.Results[0]
	component := func(wanted string) string {
		for _, comp := range result.AddressComponents {
			for _, t := range comp.Types {
				if t == wanted {
					return comp.LongName
				}
			}
		}
		return ""
	}

	city := component("locality")
	if city == "" {
		city = component("administrative_area_level_2")
	}

	return models.ValidatedAddress{
		FormattedAddress: result.FormattedAddress,
		Coordinates: models.Coordinates{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		PlaceID: result.PlaceID,
		Components: models.AddressComponents{
			Street:     component("route"),
			City:       city,
			PostalCode: component("postal_code"),
			Country:    component("country"),
		},
	}, nil
}

// Predict returns ranked address suggestions for partial input. Input shorter
// than three characters returns an empty list without a network call. Remote
// failures and zero results also return an empty list: having no suggestions
// must never block the user from free-typing.
func (c *Client) Predict(ctx context.Context, input string) ([]models.AddressPrediction, error) {
	if utf8.RuneCountInString(input) < minPredictionInput {
		return nil, nil
	}

	q := url.Values{}
	q.Set("input", input)
	q.Set("types", "address")
	q.Set("components", "country:"+c.countryCode)
	q.Set("key", c.apiKey)

	var decoded autocompleteResponse
	if err := c.getJSON(ctx, "/maps/api/place/autocomplete/json", q, &decoded); err != nil {
		return nil, err
	}

	if decoded.Status != statusOK && decoded.Status != statusZeroResults {
		return nil, nil
	}

	predictions := make([]models.AddressPrediction, 0, len(decoded.Predictions))
	for _, p := range decoded.Predictions {
		predictions = append(predictions, models.AddressPrediction{
			PlaceID:       p.PlaceID,
			Description:   p.Description,
			MainText:      p.StructuredFormatting.MainText,
			SecondaryText: p.StructuredFormatting.SecondaryText,
		})
	}
	return predictions, nil
}

// Distance returns road travel distance and duration between two coordinates.
// Travel mode is fixed to driving. A non-OK top-level or element status means
// there is no drivable route: models.ErrRouteNotFound.
func (c *Client) Distance(ctx context.Context, origin, destination models.Coordinates) (models.RouteLeg, error) {
	q := url.Values{}
	q.Set("origins", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	q.Set("destinations", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	q.Set("mode", "driving")
	q.Set("key", c.apiKey)

	var decoded distanceMatrixResponse
	if err := c.getJSON(ctx, "/maps/api/distancematrix/json", q, &decoded); err != nil {
		return models.RouteLeg{}, err
	}

	if decoded.Status != statusOK || len(decoded.Rows) == 0 || len(decoded.Rows[0].Elements) == 0 {
		return models.RouteLeg{}, models.ErrRouteNotFound
	}

	element := decoded.Rows[0].Elements[0]
	if element.Status != statusOK {
		return models.RouteLeg{}, models.ErrRouteNotFound
	}

	return models.RouteLeg{
		DistanceMeters:  element.Distance.Value,
		DistanceText:    element.Distance.Text,
		DurationSeconds: element.Duration.Value,
		DurationText:    element.Duration.Text,
	}, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("maps: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("maps: %w: %v", models.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps: %w: unexpected status %d", models.ErrServiceUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("maps: %w: decode: %v", models.ErrServiceUnavailable, err)
	}
	return nil
}
