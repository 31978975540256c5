package checkout

import (
	"net/http"

	"foodtruck-ordering/internal/models"
	"foodtruck-ordering/pkg/utils"

	"github.com/labstack/echo/v4"
)

// Handler handles HTTP requests for quotes and orders.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new checkout handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetQuote handles POST /orders/quote and returns the totals breakdown for
// the current cart and delivery fee.
func (h *Handler) GetQuote(c echo.Context) error {
	var req models.QuoteRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	return utils.RespondWithJSON(c, http.StatusOK, h.svc.Quote(req.Items, req.DeliveryFee))
}

// CreateOrder handles POST /orders.
func (h *Handler) CreateOrder(c echo.Context) error {
	userID, email, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	}

	order, err := h.svc.CreateOrder(c.Request().Context(), userID, email, req)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusCreated, order)
}

// ListMyOrders handles GET /orders.
func (h *Handler) ListMyOrders(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	page, limit := utils.GetPageLimit(c)
	orders, total, err := h.svc.ListUserOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve orders")
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	return utils.RespondWithJSON(c, http.StatusOK, map[string]interface{}{"orders": orders, "total": total})
}

// GetOrderDetails handles GET /orders/:orderId.
func (h *Handler) GetOrderDetails(c echo.Context) error {
	userID, _, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}

	order, err := h.svc.GetOrderDetails(c.Request().Context(), c.Param("orderId"), userID)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}

	return utils.RespondWithJSON(c, http.StatusOK, order)
}
