package delivery

import (
	"net/http"
	"sync"

	"foodtruck-ordering/internal/models"
	"foodtruck-ordering/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handler exposes the address validation and delivery estimation endpoints.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new delivery handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// GetPredictions handles GET /delivery/predictions?input=...
// Short or unresolvable input yields an empty list, never an error.
func (h *Handler) GetPredictions(c echo.Context) error {
	input := c.QueryParam("input")

	predictions, err := h.svc.GetPredictions(c.Request().Context(), input)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	if predictions == nil {
		predictions = []models.AddressPrediction{}
	}
	return utils.RespondWithJSON(c, http.StatusOK, predictions)
}

// ValidateAddress handles POST /delivery/validate. It geocodes the address
// and, on success, returns it together with a delivery estimate.
func (h *Handler) ValidateAddress(c echo.Context) error {
	var req models.ValidateAddressRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Please enter a valid address")
	}

	validation, err := h.svc.ValidateAddress(c.Request().Context(), req.Address)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, validation)
}

// Estimate handles POST /delivery/estimate for a destination that has
// already been geocoded.
func (h *Handler) Estimate(c echo.Context) error {
	var req models.EstimateRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if req.Destination.Lat == 0 && req.Destination.Lng == 0 {
		return utils.RespondWithError(c, http.StatusBadRequest, "A destination coordinate is required")
	}

	estimate, err := h.svc.Estimate(c.Request().Context(), req.Destination)
	if err != nil {
		return utils.HandleServiceError(c, err)
	}
	return utils.RespondWithJSON(c, http.StatusOK, estimate)
}

// upgrader is used to upgrade HTTP connections to WebSocket connections.
var upgrader = websocket.Upgrader{}

// sessionEvent is one client message on the address-session socket.
type sessionEvent struct {
	Type       string                    `json:"type"` // input | select | validate
	Text       string                    `json:"text,omitempty"`
	Prediction *models.AddressPrediction `json:"prediction,omitempty"`
}

// HandleSession upgrades to a WebSocket and drives one interactive address
// session: the client streams keystrokes and selections, the server answers
// with state snapshots. Each event gets an immediate snapshot reply, and a
// further snapshot is pushed when a debounced prediction fetch or a validation
// finishes. Debounce and last-input-wins ordering live in the Session itself.
func (h *Handler) HandleSession(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Pushes from async completions race with event replies; gorilla allows
	// only one concurrent writer per connection.
	var writeMu sync.Mutex
	writeSnapshot := func(snap SessionSnapshot) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(snap)
	}

	session := NewSession(h.svc)
	session.OnChange(func(snap SessionSnapshot) {
		writeSnapshot(snap)
	})

	for {
		var ev sessionEvent
		if err := conn.ReadJSON(&ev); err != nil {
			return nil // client went away
		}

		switch ev.Type {
		case "input":
			session.Input(ev.Text)
		case "select":
			if ev.Prediction != nil {
				session.SelectPrediction(*ev.Prediction)
			}
		case "validate":
			session.ValidateTyped()
		}

		if err := writeSnapshot(session.Snapshot()); err != nil {
			return nil
		}
	}
}
