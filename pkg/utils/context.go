package utils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// ExtractUserInfo reads the user details placed on the context by the JWT
// middleware. It fails the request with 401 when the middleware did not run.
func ExtractUserInfo(c echo.Context) (userID, email string, err error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", "", RespondWithError(c, http.StatusUnauthorized, "Missing or invalid authentication")
	}
	email, _ = c.Get("userEmail").(string)
	return userID, email, nil
}

// GetPageLimit parses pagination query parameters with sane defaults.
func GetPageLimit(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
