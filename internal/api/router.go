package api

import (
	"net/http"

	"foodtruck-ordering/internal/api/middleware"
	"foodtruck-ordering/internal/modules/checkout"
	"foodtruck-ordering/internal/modules/delivery"
	"foodtruck-ordering/internal/modules/menu"
	"foodtruck-ordering/internal/modules/schedule"
	"foodtruck-ordering/internal/modules/users"

	"github.com/labstack/echo/v4"
)

// SetupRoutes sets up all the API endpoints for the application.
func SetupRoutes(
	e *echo.Echo,
	jwtSecret string,
	userHandler *users.Handler,
	menuHandler *menu.Handler,
	scheduleHandler *schedule.Handler,
	deliveryHandler *delivery.Handler,
	checkoutHandler *checkout.Handler,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)

	// --- Public Routes ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the Munich Bites food truck!"})
	})

	e.POST("/auth/login", userHandler.Login)

	e.GET("/menu", menuHandler.ListItems)
	e.GET("/schedule", scheduleHandler.GetSchedule)

	// --- Delivery & Address Validation ---
	deliveryGroup := e.Group("/delivery")
	{
		deliveryGroup.GET("/predictions", deliveryHandler.GetPredictions)
		deliveryGroup.POST("/validate", deliveryHandler.ValidateAddress)
		deliveryGroup.POST("/estimate", deliveryHandler.Estimate)
	}
	e.GET("/ws/delivery/session", deliveryHandler.HandleSession)

	// --- Profile & Orders (authenticated) ---
	e.GET("/profile", userHandler.GetMyProfile, authMiddleware)

	orderGroup := e.Group("/orders", authMiddleware)
	{
		orderGroup.POST("/quote", checkoutHandler.GetQuote)
		orderGroup.POST("", checkoutHandler.CreateOrder)
		orderGroup.GET("", checkoutHandler.ListMyOrders)
		orderGroup.GET("/:orderId", checkoutHandler.GetOrderDetails)
	}
}
