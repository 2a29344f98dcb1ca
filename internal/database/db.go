// Package database handles the initialization and connection to the SQLite db
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// InitDB opens the client store at dbPath, applies the connection pragmas
// and runs migrations. The returned handle is process-wide: opened once at
// startup and closed on shutdown.
func InitDB(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints
	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		slog.Error("Failed to enable foreign keys", "error", err)
		closeOnInitError(db)
		return nil, err
	}

	// Enable WAL mode for better concurrency
	_, err = db.ExecContext(ctx, "PRAGMA journal_mode = WAL")
	if err != nil {
		slog.Error("Failed to enable WAL mode", "error", err)
		closeOnInitError(db)
		return nil, err
	}

	// Set busy timeout to 5 seconds (SQLite will retry for this duration)
	_, err = db.ExecContext(ctx, "PRAGMA busy_timeout = 5000")
	if err != nil {
		slog.Error("Failed to set busy timeout", "error", err)
		closeOnInitError(db)
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		closeOnInitError(db)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	// Configure connection pool to reduce contention
	db.SetMaxOpenConns(1) // SQLite benefits from a single writer connection
	db.SetMaxIdleConns(1)

	if err := runMigrations(ctx, db); err != nil {
		closeOnInitError(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func closeOnInitError(db *sql.DB) {
	if closeErr := db.Close(); closeErr != nil {
		slog.Error("error closing db", "error", closeErr)
	}
}
