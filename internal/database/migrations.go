package database

import (
	"context"
	"database/sql"
)

// runMigrations creates the database schema and seeds default data if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	// Create clients table
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'backlog',
			position INTEGER NOT NULL,
			priority INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	// Create index for efficient lane queries
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_clients_status
		ON clients(status, position)
	`)
	if err != nil {
		return err
	}

	return seedDefaultClients(ctx, db)
}

// seedDefaultClients inserts sample clients if the clients table is empty.
// Positions are dense and 1-based within each lane.
func seedDefaultClients(ctx context.Context, db *sql.DB) error {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&count)
	if err != nil {
		return err
	}

	// If clients exist, don't seed
	if count > 0 {
		return nil
	}

	defaultClients := []struct {
		name     string
		status   string
		position int
	}{
		{"Acme Corp", "backlog", 1},
		{"Globex", "backlog", 2},
		{"Initech", "backlog", 3},
		{"Umbrella Group", "in-progress", 1},
		{"Stark Industries", "in-progress", 2},
		{"Wayne Enterprises", "complete", 1},
	}

	for _, c := range defaultClients {
		_, err := db.ExecContext(ctx,
			"INSERT INTO clients (name, status, position) VALUES (?, ?, ?)",
			c.name, c.status, c.position,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
