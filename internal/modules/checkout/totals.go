package checkout

import (
	"foodtruck-ordering/internal/models"

	"github.com/shopspring/decimal"
)

// Totals computes the order price breakdown from the cart, the tax rate and
// the current delivery fee (zero when no address has been validated yet).
//
// It is a pure function and is recomputed from scratch on every relevant
// change; nothing is ever patched incrementally. Each money component is
// rounded half-up to whole cents at the point it is produced, so the grand
// total is an exact sum of the displayed components.
func Totals(items []models.CartItem, taxRate, deliveryFee float64) models.OrderTotals {
	subtotal := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(line)
	}
	subtotal = subtotal.Round(2)

	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	fee := decimal.NewFromFloat(deliveryFee).Round(2)
	total := subtotal.Add(tax).Add(fee)

	subtotalF, _ := subtotal.Float64()
	taxF, _ := tax.Float64()
	feeF, _ := fee.Float64()
	totalF, _ := total.Float64()

	return models.OrderTotals{
		Subtotal:    subtotalF,
		Tax:         taxF,
		DeliveryFee: feeF,
		Total:       totalF,
	}
}
