package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

// PostgreSQLClient wraps the direct PostgreSQL connection.
type PostgreSQLClient struct {
	DB *sql.DB
}

// NewPostgreSQLClient opens a connection using the DATABASE_URL env var.
func NewPostgreSQLClient() (*PostgreSQLClient, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("initializing PostgreSQL connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}

	return &PostgreSQLClient{
		DB: db,
	}, nil
}

// Close closes the database connection.
func (pc *PostgreSQLClient) Close() error {
	if pc.DB != nil {
		return pc.DB.Close()
	}
	return nil
}

// HealthCheck verifies the database connection.
func (pc *PostgreSQLClient) HealthCheck() error {
	if pc.DB == nil {
		return fmt.Errorf("PostgreSQL client is not initialized")
	}
	return pc.DB.Ping()
}
