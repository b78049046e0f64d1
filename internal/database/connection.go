// internal/database/connection.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dscommerce/dscommerce-backend/internal/config"
	"github.com/dscommerce/dscommerce-backend/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), GormConfig(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"database": cfg.Database,
	}).Info("Database connection established")
	return db, nil
}

// GormConfig is shared by every dialector so that driver errors are
// translated into gorm sentinels such as gorm.ErrForeignKeyViolated.
func GormConfig(logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(parseLogLevel(logLevel)),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed")
	}
}

func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	createIndexes(db)

	logrus.Info("Database migrations completed")
	return nil
}

func createIndexes(db *gorm.DB) {
	indexes := []string{
		// Case-insensitive name search
		"CREATE INDEX IF NOT EXISTS idx_products_name_upper ON products (UPPER(name))",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",

		// Order history per client
		"CREATE INDEX IF NOT EXISTS idx_orders_client_moment ON orders(client_id, moment DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			// Continue with other indexes instead of failing completely
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
		}
	}
}

// SeedInitialData creates the role rows, a default admin account and the base
// categories. It is idempotent.
func SeedInitialData(db *gorm.DB, cfg config.SeedConfig) error {
	logrus.Info("Seeding initial data...")

	roles := make(map[string]*models.Role)
	for _, authority := range []string{models.AuthorityClient, models.AuthorityAdmin} {
		role := &models.Role{Authority: authority}
		if err := db.Where(models.Role{Authority: authority}).FirstOrCreate(role).Error; err != nil {
			return fmt.Errorf("failed to seed role %s: %w", authority, err)
		}
		roles[authority] = role
	}

	if cfg.AdminEmail != "" {
		if err := seedAdmin(db, cfg, roles); err != nil {
			return err
		}
	}

	for _, name := range []string{"Livros", "Eletrônicos", "Computadores"} {
		category := &models.Category{Name: name}
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}
	}

	logrus.Info("Initial data seeding completed")
	return nil
}

func seedAdmin(db *gorm.DB, cfg config.SeedConfig, roles map[string]*models.Role) error {
	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	if cfg.AdminPassword == "" {
		logrus.WithField("email", cfg.AdminEmail).Warn("SEED_ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	admin := &models.User{
		Name:  "Administrator",
		Email: cfg.AdminEmail,
		Roles: []models.Role{*roles[models.AuthorityClient], *roles[models.AuthorityAdmin]},
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if err := db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("email", admin.Email).Info("Default admin user created")
	return nil
}

// Transaction helper
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logrus.WithError(rbErr).Warn("Transaction rollback failed")
		}
		return err
	}

	return tx.Commit().Error
}
