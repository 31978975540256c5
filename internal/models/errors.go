package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrAddressNotFound is returned when geocoding produced no usable result
	// for the given input. The user must edit the address text and try again.
	ErrAddressNotFound = errors.New("address not found or invalid")

	// ErrRouteNotFound is returned when the distance service reports no
	// drivable route between the service origin and the destination.
	ErrRouteNotFound = errors.New("no route found to destination")

	// ErrServiceUnavailable is returned on transport failures talking to an
	// external provider. It may be transient, but there is no automatic
	// retry; the user has to re-trigger validation.
	ErrServiceUnavailable = errors.New("address service is unavailable")

	// ErrAddressRequired is returned when an order is submitted without a
	// validated delivery address and estimate.
	ErrAddressRequired = errors.New("a validated delivery address is required before placing an order")

	// ErrEmptyCart is returned when an order is submitted with no items.
	ErrEmptyCart = errors.New("cannot place an order with an empty cart")
)

// OutOfServiceAreaError is returned when a geocoded destination lies beyond
// the maximum delivery radius. It carries the radius so handlers can show it.
type OutOfServiceAreaError struct {
	MaxRadiusKm float64
}

func (e *OutOfServiceAreaError) Error() string {
	return fmt.Sprintf("address is outside our delivery zone (max %gkm)", e.MaxRadiusKm)
}
