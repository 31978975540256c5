package models

// CartItem is a single line in the customer's cart.
type CartItem struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"required,gt=0"`
}

// OrderTotals is the breakdown of an order's price. It is recomputed from
// scratch on every relevant input change and never patched incrementally.
type OrderTotals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Total       float64 `json:"total"`
}

// QuoteRequest asks for order totals given the current cart and, optionally,
// the current delivery fee. A zero fee means no address has been validated.
type QuoteRequest struct {
	Items       []CartItem `json:"items" validate:"required,min=1,dive"`
	DeliveryFee float64    `json:"delivery_fee" validate:"gte=0"`
}
