// Package testutil provides an in-memory store and fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dscommerce/dscommerce-backend/internal/config"
	"github.com/dscommerce/dscommerce-backend/internal/database"
	"github.com/dscommerce/dscommerce-backend/internal/models"
)

// NewDB opens a fresh, migrated and seeded SQLite database private to t.
// A single connection is kept so the memory database lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.SeedInitialData(db, config.SeedConfig{}))

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// CreateUser inserts a user holding the given authorities.
func CreateUser(t testing.TB, db *gorm.DB, email, password string, authorities ...string) *models.User {
	t.Helper()

	user := &models.User{Name: "Test " + email, Email: email}
	require.NoError(t, user.SetPassword(password))

	for _, authority := range authorities {
		var role models.Role
		require.NoError(t, db.Where("authority = ?", authority).First(&role).Error)
		user.Roles = append(user.Roles, role)
	}

	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateProduct inserts a product put in the first seeded category.
func CreateProduct(t testing.TB, db *gorm.DB, name, price string) *models.Product {
	t.Helper()

	var category models.Category
	require.NoError(t, db.Order("name").First(&category).Error)

	product := &models.Product{
		Name:        name,
		Description: "Description of " + name,
		Price:       decimal.RequireFromString(price),
		Categories:  []models.Category{category},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
