package models

// Coordinates is a latitude/longitude pair in floating point degrees. It is
// used both for the fixed service origin and for geocoded destinations.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AddressPrediction is a single autocomplete suggestion. Predictions are
// ephemeral: they are discarded as soon as the user picks one or edits the
// input again.
type AddressPrediction struct {
	PlaceID       string `json:"place_id"`
	Description   string `json:"description"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

// AddressComponents is the decomposed form of a geocoded address. Components
// the geocoder did not return are left as empty strings.
type AddressComponents struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// ValidatedAddress is the result of a successful geocoding call. It is only
// ever constructed from a lookup that returned at least one result; a failed
// or partial lookup produces an error, never a zero-value address.
type ValidatedAddress struct {
	FormattedAddress string            `json:"formatted_address"`
	Coordinates      Coordinates       `json:"coordinates"`
	PlaceID          string            `json:"place_id"`
	Components       AddressComponents `json:"address_components"`
}

// ValidateAddressRequest defines the request body for validating free-text
// address input.
type ValidateAddressRequest struct {
	Address string `json:"address" validate:"required,min=5"`
}

// EstimateRequest defines the request body for computing a delivery estimate
// for an already-geocoded destination.
type EstimateRequest struct {
	Destination Coordinates `json:"destination"`
}
