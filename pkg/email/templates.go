package email

import (
	"bytes"
	"html/template"
)

const orderConfirmationTemplate = `
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Thanks for your order!</h2>
    <p>Your order <strong>{{.OrderID}}</strong> is confirmed and the kitchen is on it.</p>
    <p>
      Delivering to:<br/>
      <strong>{{.FormattedAddress}}</strong>
    </p>
    <p>Estimated arrival: <strong>{{.EstimatedArrival}}</strong></p>
    <p>Order total: <strong>&euro;{{printf "%.2f" .Total}}</strong></p>
    <p style="color: #6b7280; font-size: 12px;">
      You are receiving this email because you placed an order with our food truck.
    </p>
  </body>
</html>`

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	orderConfirmationTmpl *template.Template
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	tmpl, err := template.New("orderConfirmation").Parse(orderConfirmationTemplate)
	if err != nil {
		return nil, err
	}
	return &TemplateManager{orderConfirmationTmpl: tmpl}, nil
}

// OrderConfirmationData holds the dynamic data for the confirmation email.
type OrderConfirmationData struct {
	OrderID          string
	FormattedAddress string
	Total            float64
	EstimatedArrival string
}

// GenerateOrderConfirmationHTML executes the confirmation template.
func (tm *TemplateManager) GenerateOrderConfirmationHTML(data OrderConfirmationData) (string, error) {
	var body bytes.Buffer
	if err := tm.orderConfirmationTmpl.Execute(&body, data); err != nil {
		return "", err
	}
	return body.String(), nil
}
