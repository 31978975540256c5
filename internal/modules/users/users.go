package users

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"foodtruck-ordering/internal/models"
	"foodtruck-ordering/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ServiceInterface defines the user operations. Authentication is mocked on
// purpose: any email logs in, there are no passwords and no account store.
type ServiceInterface interface {
	Login(req models.LoginRequest) (*models.AuthResponse, error)
}

// Service implements the mocked login.
type Service struct {
	jwtSecret string
}

// NewService creates a new user service.
func NewService(jwtSecret string) *Service {
	return &Service{jwtSecret: jwtSecret}
}

// Login issues a signed session token for the given email. The user ID is
// derived deterministically from the email so repeat logins map to the same
// identity (and therefore the same order history).
func (s *Service) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := req.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	user := models.User{
		ID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String(),
		Email: email,
		Name:  name,
	}

	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("users.Login sign token: %w", err)
	}

	return &models.AuthResponse{Token: signed, User: user}, nil
}

// Handler handles HTTP requests for the users module.
type Handler struct {
	svc ServiceInterface
}

// NewHandler creates a new user handler.
func NewHandler(svc ServiceInterface) *Handler {
	return &Handler{svc: svc}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := utils.GetValidator().Validate(req); err != nil {
		return utils.RespondWithError(c, http.StatusBadRequest, "A valid email address is required")
	}

	resp, err := h.svc.Login(req)
	if err != nil {
		return utils.RespondWithError(c, http.StatusInternalServerError, "Login failed")
	}
	return utils.RespondWithJSON(c, http.StatusOK, resp)
}

// GetMyProfile handles GET /profile; the profile is read straight from the
// token claims since there is no user store.
func (h *Handler) GetMyProfile(c echo.Context) error {
	userID, email, err := utils.ExtractUserInfo(c)
	if err != nil {
		return err
	}
	name := strings.SplitN(email, "@", 2)[0]
	return utils.RespondWithJSON(c, http.StatusOK, models.User{ID: userID, Email: email, Name: name})
}
