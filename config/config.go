package config

import (
	"fmt"
	"log"

	"table-service-api/models"

	"github.com/caarlos0/env/v11"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// JWTSecret signs staff tokens — replaced from Config at startup
var JWTSecret = []byte("table_service_super_secret_2024")

// Config is loaded from the environment at startup.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"debug"`
	DBPath    string `env:"DB_PATH" envDefault:"table_service.db"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"table_service_super_secret_2024"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	JWTSecret = []byte(cfg.JWTSecret)
	return cfg, nil
}

// InitDB opens the sqlite store and migrates all models.
func InitDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("database connected and migrated")
	return db, nil
}

// Migrate runs the schema migration for every model.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Table{},
		&models.Package{},
		&models.TableSession{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.ItemStatusHistory{},
		&models.ActionLog{},
		&models.ExtraCharge{},
		&models.Promotion{},
		&models.BillingSummary{},
		&models.BillingItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}
