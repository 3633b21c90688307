package database

import (
	"fmt"
	"log"

	"github.com/kmuteti/restopos-api/internal/config"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/pkg/utils"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// Surfaces unique violations as gorm.ErrDuplicatedKey so the
		// one-open-shift-per-staff index can be handled in the repository.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Staff and catalog
		&entity.Staff{},
		&entity.Product{},

		// Register sessions
		&entity.Shift{},

		// Transactions
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.HeldOrder{},
		&entity.SequenceCounter{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with a manager account and sample menu
// items so a fresh install has something to sell.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	adminUsername := viper.GetString("ADMIN_USERNAME")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminUsername != "" && adminPassword != "" {
		var existing entity.Staff
		if err := db.Where("username = ?", adminUsername).First(&existing).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Manager"
				}
				admin := entity.Staff{
					Name:     adminName,
					Username: adminUsername,
					Password: string(hashedPassword),
					Role:     entity.RoleManager,
					Active:   true,
				}
				if err := db.Create(&admin).Error; err != nil {
					log.Printf("Warning: failed to create manager account: %v", err)
				} else {
					log.Printf("Manager account created: %s", adminUsername)
				}
			}
		} else {
			log.Printf("Manager account already exists: %s", adminUsername)
		}
	}

	var productCount int64
	if err := db.Model(&entity.Product{}).Count(&productCount).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount == 0 {
		samples := []entity.Product{
			{Name: "Chicken Biryani", Price: 25000, Quantity: 50, QuantityAlert: 10, Active: true},
			{Name: "Beef Burger", Price: 18000, Quantity: 40, QuantityAlert: 10, Active: true},
			{Name: "Fresh Juice", Price: 8000, Quantity: 100, QuantityAlert: 20, Active: true},
		}
		for i := range samples {
			samples[i].SKU = utils.GenerateSKU()
			if err := db.Create(&samples[i]).Error; err != nil {
				log.Printf("Warning: failed to seed product %s: %v", samples[i].Name, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
