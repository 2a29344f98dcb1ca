package models

import "time"

// Client represents a single client card on the board
type Client struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Position int    `json:"position"`
	// Priority is a lane-scoped ordering hint; lower value = more urgent.
	// Nil means no priority is set. Cleared whenever the client changes lane.
	Priority  *int      `json:"priority"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// HasPriority reports whether the client has a priority set
func (c *Client) HasPriority() bool {
	return c.Priority != nil
}
