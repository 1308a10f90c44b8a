package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/balkashynov/durok/internal/models"
)

// memoryDSN keeps the database in process memory; nothing outlives the session
const memoryDSN = ":memory:"

var DB *gorm.DB

// Initialize sets up the session database and runs migrations
func Initialize() error {
	conn, err := Open()
	if err != nil {
		return err
	}
	DB = conn
	return nil
}

// Open creates a fresh in-memory database with the entry schema
func Open() (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(memoryDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Quiet by default
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Every connection to :memory: is a separate database, so pin the pool to one
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := runMigrations(conn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return conn, nil
}

// runMigrations creates the schema
func runMigrations(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Entry{},
	)
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		DB = nil
		return sqlDB.Close()
	}
	return nil
}
