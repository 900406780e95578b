package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Options carries the connection parameters for the primary database.
type Options struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Connect opens the Postgres connection pool. The handle is created once at
// process start and shared by reference; there is no package-level singleton.
// TranslateError is enabled so unique and foreign-key violations surface as
// gorm sentinel errors.
func Connect(opts Options) (*gorm.DB, error) {
	if opts.SSLMode == "" {
		opts.SSLMode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		opts.Host, opts.User, opts.Password, opts.Name, opts.Port, opts.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return db, nil
}
