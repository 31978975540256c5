package checkout

import (
	"context"
	"fmt"
	"log"

	"foodtruck-ordering/internal/models"
	emailSvc "foodtruck-ordering/pkg/email"
)

// Estimator produces a delivery estimate for a validated destination. The
// delivery module's service satisfies it.
type Estimator interface {
	Estimate(ctx context.Context, destination models.Coordinates) (*models.DeliveryEstimate, error)
}

// ServiceInterface defines the contract for the checkout service.
type ServiceInterface interface {
	Quote(items []models.CartItem, deliveryFee float64) models.OrderTotals
	CreateOrder(ctx context.Context, userID, email string, req models.CreateOrderRequest) (*models.Order, error)
	GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error)
	ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error)
}

// Service implements the checkout logic: totals, order submission and the
// confirmation email.
type Service struct {
	repo            RepositoryInterface
	estimator       Estimator
	emailer         emailSvc.ServiceInterface
	templateManager *emailSvc.TemplateManager
	taxRate         float64
}

// NewService creates a new checkout service. The emailer may be nil when
// email delivery is not configured (local development).
func NewService(repo RepositoryInterface, estimator Estimator, emailer emailSvc.ServiceInterface, tm *emailSvc.TemplateManager, taxRate float64) *Service {
	return &Service{
		repo:            repo,
		estimator:       estimator,
		emailer:         emailer,
		templateManager: tm,
		taxRate:         taxRate,
	}
}

// Quote computes totals for the current cart without touching storage.
func (s *Service) Quote(items []models.CartItem, deliveryFee float64) models.OrderTotals {
	return Totals(items, s.taxRate, deliveryFee)
}

// CreateOrder persists a new order. Submission is blocked unless the request
// carries both a validated address and a delivery estimate. The estimate is
// then recomputed server-side from the validated coordinates, and totals are
// derived from it, so a client cannot submit a drifted fee or total.
func (s *Service) CreateOrder(ctx context.Context, userID, email string, req models.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, models.ErrEmptyCart
	}
	if req.DeliveryAddress.PlaceID == "" || req.Estimate.EstimatedArrival.IsZero() {
		return nil, models.ErrAddressRequired
	}

	estimate, err := s.estimator.Estimate(ctx, req.DeliveryAddress.Coordinates)
	if err != nil {
		return nil, err
	}
	req.Estimate = *estimate

	totals := Totals(req.Items, s.taxRate, estimate.DeliveryFee)

	order, err := s.repo.Create(ctx, userID, req, totals)
	if err != nil {
		return nil, fmt.Errorf("checkout.CreateOrder: %w", err)
	}

	s.sendConfirmation(ctx, email, order)
	return order, nil
}

// GetOrderDetails returns a single order, scoped to its owner.
func (s *Service) GetOrderDetails(ctx context.Context, orderID, userID string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrNotFound
	}
	return order, nil
}

// ListUserOrders returns the user's order history, newest first.
func (s *Service) ListUserOrders(ctx context.Context, userID string, page, limit int) ([]*models.Order, int, error) {
	return s.repo.ListByUserID(ctx, userID, page, limit)
}

// sendConfirmation emails the order summary. Delivery is best effort: a
// failed email never fails the order.
func (s *Service) sendConfirmation(ctx context.Context, email string, order *models.Order) {
	if s.emailer == nil || s.templateManager == nil || email == "" {
		return
	}

	html, err := s.templateManager.GenerateOrderConfirmationHTML(emailSvc.OrderConfirmationData{
		OrderID:          order.ID,
		FormattedAddress: order.DeliveryAddress.FormattedAddress,
		Total:            order.Totals.Total,
		EstimatedArrival: order.EstimatedArrival.Format("15:04"),
	})
	if err != nil {
		log.Printf("checkout: render confirmation email: %v", err)
		return
	}

	text := fmt.Sprintf("Your order %s is confirmed. Estimated arrival: %s.",
		order.ID, order.EstimatedArrival.Format("15:04"))
	if err := s.emailer.SendEmail(ctx, email, "Your order is confirmed", text, html); err != nil {
		log.Printf("checkout: send confirmation email: %v", err)
	}
}
