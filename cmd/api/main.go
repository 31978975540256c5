package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodtruck-ordering/internal/api"
	"foodtruck-ordering/internal/config"
	"foodtruck-ordering/internal/modules/checkout"
	"foodtruck-ordering/internal/modules/delivery"
	"foodtruck-ordering/internal/modules/menu"
	"foodtruck-ordering/internal/modules/schedule"
	"foodtruck-ordering/internal/modules/users"
	emailSvc "foodtruck-ordering/pkg/email"
	"foodtruck-ordering/pkg/maps"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	// 1. --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	e := echo.New()

	// 2. --- Middleware ---
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", cfg.ClientOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// 3. --- Database Connection ---
	dbConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Unable to parse database configuration: %v", err)
	}

	dbPool, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		log.Fatalf("Unable to create connection pool: %v", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		log.Fatalf("Unable to ping database: %v", err)
	}
	e.Logger.Info("Successfully connected to the database!")

	// 4. --- Dependency Injection (Wiring everything up) ---
	mapsClient := maps.NewClient(cfg.GoogleMapsBaseURL, cfg.GoogleMapsAPIKey, cfg.Delivery.CountryCode)

	// The confirmation email is optional; without a sender address orders
	// still work, they just stay silent.
	var emailer emailSvc.ServiceInterface
	var templateManager *emailSvc.TemplateManager
	if cfg.FromEmail != "" {
		sender, err := emailSvc.NewSESV2Sender(context.Background(), cfg.AWSRegion, cfg.FromEmail)
		if err != nil {
			log.Printf("Email sending disabled: %v", err)
		} else {
			emailer = sender
			templateManager, err = emailSvc.NewTemplateManager()
			if err != nil {
				log.Fatalf("Failed to parse email templates: %v", err)
			}
		}
	}

	// --- Users Module (mocked login) ---
	userService := users.NewService(cfg.JWTSecret)
	userHandler := users.NewHandler(userService)

	// --- Menu Module ---
	menuRepo := menu.NewRepository(dbPool)
	menuService := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(menuService)

	// --- Schedule Module ---
	scheduleRepo := schedule.NewRepository(dbPool)
	scheduleService := schedule.NewService(scheduleRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// --- Delivery Module ---
	deliveryService := delivery.NewService(mapsClient, cfg.Delivery)
	deliveryHandler := delivery.NewHandler(deliveryService)

	// --- Checkout Module ---
	orderRepo := checkout.NewRepository(dbPool)
	checkoutService := checkout.NewService(orderRepo, deliveryService, emailer, templateManager, cfg.Delivery.TaxRate)
	checkoutHandler := checkout.NewHandler(checkoutService)

	// 5. --- Initialize Router ---
	api.SetupRoutes(e, cfg.JWTSecret,
		userHandler,
		menuHandler,
		scheduleHandler,
		deliveryHandler,
		checkoutHandler,
	)

	// 6. --- Start Server with graceful shutdown logic ---
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server, an error occurred:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exiting")
}
