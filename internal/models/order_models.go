package models

import "time"

// Order represents a placed food order.
type Order struct {
	ID               string           `json:"id"`
	UserID           string           `json:"user_id"`
	Status           string           `json:"status"`
	Items            []CartItem       `json:"items"`
	DeliveryAddress  ValidatedAddress `json:"delivery_address"`
	Totals           OrderTotals      `json:"totals"`
	EstimatedArrival time.Time        `json:"estimated_arrival"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CreateOrderRequest represents the data needed to place an order. Totals are
// not part of the request: the server recomputes them from the cart and the
// delivery estimate so a client can never submit drifted numbers.
type CreateOrderRequest struct {
	Items           []CartItem       `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress ValidatedAddress `json:"delivery_address"`
	Estimate        DeliveryEstimate `json:"estimate"`
}
