package models

import "time"

// RouteLeg is the raw result of a distance-matrix lookup between two
// coordinates: how far and how long by road, plus the provider's
// human-readable renderings.
type RouteLeg struct {
	DistanceMeters  int    `json:"distance_meters"`
	DistanceText    string `json:"distance_text"`
	DurationSeconds int    `json:"duration_seconds"`
	DurationText    string `json:"duration_text"`
}

// DeliveryEstimate is a complete delivery quote for a validated destination.
// It is only constructed when the destination lies within the service radius;
// estimation failures never produce a partially-filled estimate.
type DeliveryEstimate struct {
	DistanceMeters   int       `json:"distance_meters"`
	DistanceText     string    `json:"distance_text"`
	DurationSeconds  int       `json:"duration_seconds"`
	DurationText     string    `json:"duration_text"`
	DeliveryFee      float64   `json:"delivery_fee"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
}

// AddressValidation bundles the two artifacts a successful validation
// produces; this is what the checkout flow consumes.
type AddressValidation struct {
	Address  ValidatedAddress `json:"address"`
	Estimate DeliveryEstimate `json:"estimate"`
}
