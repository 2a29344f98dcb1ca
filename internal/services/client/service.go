package client

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/thenoetrevino/carril/internal/database"
	"github.com/thenoetrevino/carril/internal/models"
)

// Service defines all client-related business operations
type Service interface {
	// Read operations
	ListClients(ctx context.Context) ([]*models.Client, error)
	ListClientsByStatus(ctx context.Context, rawStatus string) ([]*models.Client, error)
	GetClient(ctx context.Context, rawID string) (*models.Client, error)

	// Write operations
	UpdateClient(ctx context.Context, req UpdateClientRequest) ([]*models.Client, error)
}

// UpdateClientRequest encapsulates all data needed to update a client.
// Fields with pointers are optional - nil means don't update.
// ClientID and Priority arrive raw from the transport so that malformed
// values can be rejected here with the proper error kind.
type UpdateClientRequest struct {
	ClientID string
	Status   *string
	Priority *json.Number
}

// service implements Service interface
type service struct {
	store database.ClientStore

	// mu serializes the read-compute-write reorder sequence. Concurrent
	// updates touching the same lane would otherwise race and break the
	// contiguous-position invariant.
	mu sync.Mutex
}

// NewService creates a new client service
func NewService(store database.ClientStore) Service {
	return &service{store: store}
}

// ListClients retrieves all clients across every lane
func (s *service) ListClients(ctx context.Context) ([]*models.Client, error) {
	return s.store.GetAllClients(ctx)
}

// ListClientsByStatus retrieves all clients in a single lane
func (s *service) ListClientsByStatus(ctx context.Context, rawStatus string) ([]*models.Client, error) {
	status, err := validateStatus(rawStatus)
	if err != nil {
		return nil, err
	}
	return s.store.GetClientsByStatus(ctx, status)
}

// GetClient retrieves a single client by its raw identifier
func (s *service) GetClient(ctx context.Context, rawID string) (*models.Client, error) {
	clientID, err := s.validateIdentifier(ctx, rawID)
	if err != nil {
		return nil, err
	}

	target, err := s.store.GetClientByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Record vanished between validation and lookup
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return target, nil
}

// UpdateClient applies a status and/or priority change to a client and
// rebalances lane positions so every lane stays a contiguous 1..N sequence.
// It returns the full, freshly computed client list.
func (s *service) UpdateClient(ctx context.Context, req UpdateClientRequest) ([]*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clientID, err := s.validateIdentifier(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	var newStatus *models.Status
	if req.Status != nil {
		status, err := validateStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		newStatus = &status
	}

	var newPriority *int
	if req.Priority != nil {
		priority, err := validatePriority(*req.Priority)
		if err != nil {
			return nil, err
		}
		newPriority = &priority
	}

	clients, err := s.store.GetAllClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}

	target := findClient(clients, clientID)
	if target == nil {
		return nil, ErrClientNotFound
	}

	// Capture the slot being vacated before any mutation
	currentPosition := target.Position
	currentStatus := target.Status

	switch {
	case newStatus != nil && *newStatus != currentStatus:
		// Lane change always clears the lane-scoped priority
		if err := s.store.UpdateClientStatus(ctx, clientID, *newStatus); err != nil {
			return nil, fmt.Errorf("failed to update status: %w", err)
		}

		clients, err = s.store.GetAllClients(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload clients: %w", err)
		}

		original := positionsByID(clients)
		shiftOnStatusChange(clients, clientID, currentStatus, *newStatus, currentPosition)
		if err := s.persistPositions(ctx, clients, original); err != nil {
			return nil, err
		}

	case newPriority != nil && priorityChanged(target, *newPriority):
		if err := s.store.UpdateClientPriority(ctx, clientID, *newPriority); err != nil {
			return nil, fmt.Errorf("failed to update priority: %w", err)
		}

		clients, err = s.store.GetAllClients(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload clients: %w", err)
		}

		original := positionsByID(clients)
		shiftOnPriorityChange(clients, clientID, currentStatus, currentPosition, *newPriority)
		if err := s.persistPositions(ctx, clients, original); err != nil {
			return nil, err
		}
	}

	return clients, nil
}

// ============================================================================
// REORDERING
// ============================================================================

// shiftOnStatusChange rebalances positions after the target moved from
// oldStatus to newStatus. The slot the target vacated closes up in the old
// lane, and the target is inserted at the same numeric position in the new
// lane, pushing occupants at or beyond that slot down by one.
func shiftOnStatusChange(clients []*models.Client, targetID int, oldStatus, newStatus models.Status, currentPosition int) {
	for _, c := range clients {
		switch {
		case c.ID == targetID:
			c.Position = currentPosition
		case c.Status == oldStatus && c.Position > currentPosition:
			c.Position--
		case c.Status == newStatus && c.Position >= currentPosition:
			c.Position++
		}
	}
}

// shiftOnPriorityChange redistributes the positions below the target
// according to relative priority. Clients above the target's slot are left
// untouched, and the target's own position is never reassigned here.
func shiftOnPriorityChange(clients []*models.Client, targetID int, status models.Status, currentPosition, newPriority int) {
	for _, c := range clients {
		if c.ID == targetID || c.Status != status || c.Position <= currentPosition {
			continue
		}
		// A missing priority is treated as lower urgency than any value
		if !c.HasPriority() || *c.Priority >= newPriority {
			c.Position++
		} else {
			c.Position--
		}
	}
}

// persistPositions writes back every client whose computed position differs
// from its stored value
func (s *service) persistPositions(ctx context.Context, clients []*models.Client, original map[int]int) error {
	for _, c := range clients {
		if c.Position == original[c.ID] {
			continue
		}
		if err := s.store.UpdateClientPosition(ctx, c.ID, c.Position); err != nil {
			return fmt.Errorf("failed to update position for client %d: %w", c.ID, err)
		}
	}
	return nil
}

// ============================================================================
// VALIDATION
// ============================================================================

// validateIdentifier checks that rawID parses as an integer and refers to an
// existing client. Performs a lookup only, no side effects.
func (s *service) validateIdentifier(ctx context.Context, rawID string) (int, error) {
	clientID, err := strconv.Atoi(rawID)
	if err != nil {
		return 0, ErrInvalidID
	}

	if _, err := s.store.GetClientByID(ctx, clientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrInvalidID
		}
		return 0, fmt.Errorf("failed to look up client: %w", err)
	}

	return clientID, nil
}

// validateStatus checks that rawStatus is one of the enumerated lanes
func validateStatus(rawStatus string) (models.Status, error) {
	status := models.Status(rawStatus)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// validatePriority checks that the raw value is an integer. Any integer is
// accepted; positivity is deliberately not enforced.
func validatePriority(raw json.Number) (int, error) {
	priority, err := strconv.Atoi(raw.String())
	if err != nil {
		return 0, ErrInvalidPriority
	}
	return priority, nil
}

// ============================================================================
// HELPERS
// ============================================================================

// findClient locates a client by id in a loaded list
func findClient(clients []*models.Client, clientID int) *models.Client {
	for _, c := range clients {
		if c.ID == clientID {
			return c
		}
	}
	return nil
}

// positionsByID snapshots the stored position of every client
func positionsByID(clients []*models.Client) map[int]int {
	positions := make(map[int]int, len(clients))
	for _, c := range clients {
		positions[c.ID] = c.Position
	}
	return positions
}

// priorityChanged reports whether newPriority differs from the client's
// existing priority
func priorityChanged(c *models.Client, newPriority int) bool {
	return !c.HasPriority() || *c.Priority != newPriority
}
