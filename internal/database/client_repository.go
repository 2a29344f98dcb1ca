package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/carril/internal/models"
)

// ClientRepo handles pure data access for clients.
// No business logic, no reordering, no validation - just database operations.
type ClientRepo struct {
	db *sql.DB
}

const clientColumns = "id, name, status, position, priority, created_at, updated_at"

// scanClient scans a single client row
func scanClient(row interface{ Scan(dest ...any) error }) (*models.Client, error) {
	client := &models.Client{}
	var priority sql.NullInt64
	err := row.Scan(
		&client.ID, &client.Name, &client.Status,
		&client.Position, &priority, &client.CreatedAt, &client.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if priority.Valid {
		p := int(priority.Int64)
		client.Priority = &p
	}
	return client, nil
}

// GetAllClients retrieves every client record, ordered by id
func (r *ClientRepo) GetAllClients(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// GetClientsByStatus retrieves all clients in a lane, ordered by position
func (r *ClientRepo) GetClientsByStatus(ctx context.Context, status models.Status) ([]*models.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE status = ? ORDER BY position`,
		string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}

	return clients, rows.Err()
}

// GetClientByID retrieves a single client record.
// Returns sql.ErrNoRows if no client with that id exists.
func (r *ClientRepo) GetClientByID(ctx context.Context, clientID int) (*models.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`,
		clientID,
	)
	return scanClient(row)
}

// CreateClient inserts a new client record. The reordering engine never
// creates clients; this exists for seeding and tests.
func (r *ClientRepo) CreateClient(ctx context.Context, name string, status models.Status, position int, priority *int) (*models.Client, error) {
	var priorityArg sql.NullInt64
	if priority != nil {
		priorityArg = sql.NullInt64{Int64: int64(*priority), Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (name, status, position, priority)
		 VALUES (?, ?, ?, ?)`,
		name, string(status), position, priorityArg,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetClientByID(ctx, int(id))
}

// UpdateClientStatus moves a client to a new lane and clears its priority.
// Priority is lane-scoped, so a lane change always resets it.
func (r *ClientRepo) UpdateClientStatus(ctx context.Context, clientID int, status models.Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET status = ?, priority = NULL, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		string(status), clientID,
	)
	return err
}

// UpdateClientPriority sets a client's priority
func (r *ClientRepo) UpdateClientPriority(ctx context.Context, clientID, priority int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET priority = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		priority, clientID,
	)
	return err
}

// UpdateClientPosition rewrites a client's position within its lane
func (r *ClientRepo) UpdateClientPosition(ctx context.Context, clientID, position int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE clients
		 SET position = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		position, clientID,
	)
	return err
}
