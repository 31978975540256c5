package middleware

import (
	"errors"
	"net/http"

	"foodtruck-ordering/internal/models"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// JWTAuth configures and returns Echo's JWT middleware. On success the user
// details from the claims are placed on the request context for handlers.
func JWTAuth(jwtSecretKey string) echo.MiddlewareFunc {
	config := echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(models.JwtCustomClaims)
		},
		SigningKey: []byte(jwtSecretKey),

		SuccessHandler: func(c echo.Context) {
			userToken := c.Get("user").(*jwt.Token)
			claims := userToken.Claims.(*models.JwtCustomClaims)

			c.Set("userID", claims.UserID)
			c.Set("userEmail", claims.Email)
		},

		ErrorHandler: func(c echo.Context, err error) error {
			c.Logger().Errorf("JWT Error: %v", err)

			if errors.Is(err, echojwt.ErrJWTMissing) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Missing or malformed JWT"})
			}
			if errors.Is(err, jwt.ErrTokenExpired) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Token has expired"})
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid or expired JWT"})
		},
	}
	return echojwt.WithConfig(config)
}
