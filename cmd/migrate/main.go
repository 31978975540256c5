package main

import (
	"context"
	"log"

	"foodtruck-ordering/internal/config"
	"foodtruck-ordering/internal/migrate"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := migrate.Apply(context.Background(), cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Println("Migrations applied successfully")
}
