package menu

import (
	"context"
	"fmt"
	"net/http"

	"foodtruck-ordering/internal/models"
	"foodtruck-ordering/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
)

// RepositoryInterface declares the storage operations for the menu.
type RepositoryInterface interface {
	ListItems(ctx context.Context) ([]models.MenuItem, error)
}

// Repository is a PostgreSQL implementation of RepositoryInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new menu repository.
func NewRepository(db *pgxpool.Pool) RepositoryInterface {
	return &Repository{db: db}
}

// ListItems returns every menu item, available or not; the client decides how
// to render sold-out dishes.
func (r *Repository) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	query := `
		SELECT id, name, description, price, category_id, image, available, dietary, popular, calories
		FROM menu_items
		ORDER BY category_id, name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repo.ListItems: %w", err)
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Price, &item.CategoryID,
			&item.Image, &item.Available, &item.Dietary, &item.Popular, &item.Calories,
		); err != nil {
			return nil, fmt.Errorf("repo.ListItems scan: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListItems rows: %w", err)
	}
	return items, nil
}

// ServiceInterface defines the menu business operations.
type ServiceInterface interface {
	ListItems(ctx context.Context) ([]models.MenuItem, error)
}

// Service implements ServiceInterface.
type Service struct {
	repo RepositoryInterface
}

// NewService creates a new menu service.
func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

// ListItems returns the current menu.
func (s *Service) ListItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.repo.ListItems(ctx)
}

// Handler exposes the menu over HTTP.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new menu handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// ListItems handles GET /menu.
func (h *Handler) ListItems(c echo.Context) error {
	items, err := h.svc.ListItems(c.Request().Context())
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load the menu")
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, items)
}
