package database

import (
	"fmt"
	"log"

	"github.com/umamiasd/umami-api/internal/config"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.App.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Database connection established")
	return db, nil
}

// AutoMigrate creates or updates the schema for every persisted entity.
// Parent tables come first so foreign keys resolve.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Member{},
		&entity.FIVMembership{},
		&entity.AccessKey{},
		&entity.Supplier{},
		&entity.Asset{},
		&entity.AssetPrice{},
		&entity.Service{},
		&entity.Assignment{},
		&entity.Delivery{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("Database migration completed")
	return nil
}

// SeedDefaultData creates the initial staff account when the users table
// is empty, so a fresh deployment can log in.
func SeedDefaultData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin := &entity.User{
		Name:  "Amministratore",
		Email: "admin@umamiasd.it",
		Role:  "admin",
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}
	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	log.Println("Seeded default admin user (admin@umamiasd.it)")
	return nil
}
