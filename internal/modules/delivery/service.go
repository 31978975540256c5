package delivery

import (
	"context"
	"fmt"
	"time"

	"foodtruck-ordering/internal/config"
	"foodtruck-ordering/internal/models"

	"github.com/shopspring/decimal"
)

// Geocoder resolves free-text address input into a validated address.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (models.ValidatedAddress, error)
}

// Predictor returns ranked address suggestions for partial input.
type Predictor interface {
	Predict(ctx context.Context, input string) ([]models.AddressPrediction, error)
}

// DistanceEstimator returns road distance and duration between two points.
type DistanceEstimator interface {
	Distance(ctx context.Context, origin, destination models.Coordinates) (models.RouteLeg, error)
}

// MapsProvider is the full capability surface the delivery module needs from
// an external mapping service.
type MapsProvider interface {
	Geocoder
	Predictor
	DistanceEstimator
}

// ServiceInterface defines the delivery module's business operations. This is
// the boundary contract the checkout UI consumes.
type ServiceInterface interface {
	GetPredictions(ctx context.Context, input string) ([]models.AddressPrediction, error)
	ValidateAddress(ctx context.Context, address string) (*models.AddressValidation, error)
	Estimate(ctx context.Context, destination models.Coordinates) (*models.DeliveryEstimate, error)
}

// Service implements delivery estimation on top of a maps provider and the
// configured delivery policy.
type Service struct {
	provider MapsProvider
	policy   config.DeliveryPolicy
	now      func() time.Time
}

// NewService creates a delivery service. The clock is injectable for tests.
func NewService(provider MapsProvider, policy config.DeliveryPolicy) *Service {
	return &Service{
		provider: provider,
		policy:   policy,
		now:      time.Now,
	}
}

// Origin returns the fixed service-origin coordinate (the food truck).
func (s *Service) Origin() models.Coordinates {
	return models.Coordinates{Lat: s.policy.OriginLat, Lng: s.policy.OriginLng}
}

// GetPredictions returns autocomplete suggestions for partial address input.
// Provider failures degrade to an empty list; suggestions are a convenience
// and must never block free typing.
func (s *Service) GetPredictions(ctx context.Context, input string) ([]models.AddressPrediction, error) {
	predictions, err := s.provider.Predict(ctx, input)
	if err != nil {
		return nil, nil
	}
	return predictions, nil
}

// ValidateAddress geocodes the given text and, on success, computes a
// delivery estimate from the service origin. Both steps must succeed; there
// is no partial result.
func (s *Service) ValidateAddress(ctx context.Context, address string) (*models.AddressValidation, error) {
	validated, err := s.provider.Geocode(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("delivery.ValidateAddress: %w", err)
	}

	estimate, err := s.Estimate(ctx, validated.Coordinates)
	if err != nil {
		return nil, err
	}

	return &models.AddressValidation{Address: validated, Estimate: *estimate}, nil
}

// Estimate computes a delivery quote for a destination within the service
// radius. Destinations beyond the radius fail with OutOfServiceAreaError and
// produce no estimate object at all.
func (s *Service) Estimate(ctx context.Context, destination models.Coordinates) (*models.DeliveryEstimate, error) {
	leg, err := s.provider.Distance(ctx, s.Origin(), destination)
	if err != nil {
		return nil, fmt.Errorf("delivery.Estimate: %w", err)
	}

	distanceKm := float64(leg.DistanceMeters) / 1000.0
	if distanceKm > s.policy.MaxRadiusKm {
		return nil, &models.OutOfServiceAreaError{MaxRadiusKm: s.policy.MaxRadiusKm}
	}

	// Fee is rounded half-up to whole cents at the moment it is produced.
	fee := decimal.NewFromFloat(s.policy.BaseFee).
		Add(decimal.NewFromFloat(distanceKm).Mul(decimal.NewFromFloat(s.policy.PerKmRate))).
		Round(2)

	// Travel time is rounded up to whole minutes before adding the kitchen's
	// preparation buffer.
	travelMinutes := (leg.DurationSeconds + 59) / 60
	totalMinutes := travelMinutes + s.policy.PrepMinutes

	feeValue, _ := fee.Float64()
	return &models.DeliveryEstimate{
		DistanceMeters:   leg.DistanceMeters,
		DistanceText:     leg.DistanceText,
		DurationSeconds:  leg.DurationSeconds,
		DurationText:     leg.DurationText,
		DeliveryFee:      feeValue,
		EstimatedArrival: s.now().Add(time.Duration(totalMinutes) * time.Minute),
	}, nil
}
