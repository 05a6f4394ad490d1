package migrations

import (
	"context"
	"log"
	"printshop/internal/database"
	"printshop/internal/repository"
	"printshop/internal/store"

	"gorm.io/gorm"
)

// RunMigrations migrates the backend schema and, when seed is set, loads
// the seed orders that are missing from the orders table.
func RunMigrations(db *gorm.DB, seed bool) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if seed {
		if err := createDefaultData(db); err != nil {
			log.Printf("Warning: Failed to create default data: %v", err)
		}
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultData(db *gorm.DB) error {
	log.Println("Creating default data...")

	ctx := context.Background()
	orderRepo := repository.NewOrderRepository(db)

	created := 0
	for _, order := range store.SeedOrders() {
		if _, err := orderRepo.GetByKey(ctx, order.ID); err == nil {
			continue
		}
		order := order
		if err := orderRepo.Create(ctx, &order); err != nil {
			return err
		}
		created++
	}

	log.Printf("Default data created: %d orders", created)
	return nil
}
