package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/franciscosanchezn/pizza-restaurant-api/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "postgres builds keyword DSN",
			config: DatabaseConfig{
				Driver: "postgres", Host: "db", Port: "5432", User: "pizza",
				Password: "secret", Name: "catalog", SSLMode: "disable",
			},
			expected: "host=db user=pizza password=secret dbname=catalog port=5432 sslmode=disable",
		},
		{
			name:     "sqlite uses the file path",
			config:   DatabaseConfig{Driver: "sqlite", Path: "catalog.sqlite"},
			expected: "catalog.sqlite",
		},
		{
			name:     "empty driver defaults to sqlite",
			config:   DatabaseConfig{Path: ":memory:"},
			expected: ":memory:",
		},
		{
			name:     "unknown driver has no DSN",
			config:   DatabaseConfig{Driver: "mysql"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

func TestDatabaseConfigStringRedactsPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
	assert.Contains(t, cfg.String(), "[REDACTED]")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrateCreatesCatalogTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"restaurants", "pizzas", "restaurant_pizzas"} {
		assert.True(t, db.Migrator().HasTable(table), "missing table %s", table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.RestaurantPizza{}, "idx_pizza_restaurant"))
}

func TestIsUniqueViolation(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "translated gorm error", err: fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), expected: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, expected: true},
		{name: "postgres foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: false},
		{name: "sqlite unique constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, expected: true},
		{name: "sqlite not null constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, expected: false},
		{name: "unrelated error", err: errors.New("connection reset"), expected: false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsUniqueViolation(tt.err))
		})
	}
}

func TestUniqueRestaurantNameIsEnforced(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&models.Restaurant{Name: "Tony's", Location: "Main St"}).Error)
	err := db.Create(&models.Restaurant{Name: "Tony's", Location: "Elm St"}).Error

	assert.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestIsNotFound(t *testing.T) {
	db := setupTestDB(t)

	var restaurant models.Restaurant
	err := db.First(&restaurant, 42).Error
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
}
