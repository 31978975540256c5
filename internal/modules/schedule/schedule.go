package schedule

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"foodtruck-ordering/internal/models"
	"foodtruck-ordering/pkg/utils"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// RepositoryInterface declares the storage operations for the truck schedule.
type RepositoryInterface interface {
	ListLocations(ctx context.Context) ([]models.TruckLocation, error)
	ListLocationsForDay(ctx context.Context, dayOfWeek int) ([]models.TruckLocation, error)
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new schedule repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

const locationColumns = `id, name, description, location, address, lat, lng, day_of_week, start_time, end_time, COALESCE(special_event, '')`

// ListLocations returns the full weekly schedule.
func (r *Repository) ListLocations(ctx context.Context) ([]models.TruckLocation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+locationColumns+` FROM truck_locations ORDER BY day_of_week, start_time`)
	if err != nil {
		return nil, fmt.Errorf("repo.ListLocations: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

// ListLocationsForDay returns the stops for a single weekday.
func (r *Repository) ListLocationsForDay(ctx context.Context, dayOfWeek int) ([]models.TruckLocation, error) {
	rows, err := r.db.Query(ctx, `SELECT `+locationColumns+` FROM truck_locations WHERE day_of_week = $1 ORDER BY start_time`, dayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("repo.ListLocationsForDay: %w", err)
	}
	defer rows.Close()
	return scanLocations(rows)
}

func scanLocations(rows pgx.Rows) ([]models.TruckLocation, error) {
	var locations []models.TruckLocation
	for rows.Next() {
		var loc models.TruckLocation
		if err := rows.Scan(
			&loc.ID, &loc.Name, &loc.Description, &loc.Location, &loc.Address,
			&loc.Coordinates.Lat, &loc.Coordinates.Lng,
			&loc.DayOfWeek, &loc.StartTime, &loc.EndTime, &loc.SpecialEvent,
		); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("location rows: %w", err)
	}
	return locations, nil
}

// ServiceInterface defines the schedule business operations.
type ServiceInterface interface {
	GetSchedule(ctx context.Context, dayOfWeek *int) ([]models.TruckLocation, error)
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new schedule service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// GetSchedule returns the truck schedule, optionally filtered by weekday.
func (s *Service) GetSchedule(ctx context.Context, dayOfWeek *int) ([]models.TruckLocation, error) {
	if dayOfWeek != nil {
		return s.repo.ListLocationsForDay(ctx, *dayOfWeek)
	}
	return s.repo.ListLocations(ctx)
}

// Handler exposes the schedule over HTTP.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new schedule handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetSchedule handles GET /schedule?day=0..6.
func (h *Handler) GetSchedule(c echo.Context) error {
	var day *int
	if raw := c.QueryParam("day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 6 {
			return utils.RespondWithError(c, http.StatusBadRequest, "day must be between 0 (Sunday) and 6 (Saturday)")
		}
		day = &parsed
	}

	locations, err := h.svc.GetSchedule(c.Request().Context(), day)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load the schedule")
	}
	if locations == nil {
		locations = []models.TruckLocation{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, locations)
}
