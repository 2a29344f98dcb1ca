package models

// Status identifies the lane a client lives in
type Status string

// The three board lanes
const (
	StatusBacklog    Status = "backlog"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
)

// Statuses returns all lanes in board order
func Statuses() []Status {
	return []Status{StatusBacklog, StatusInProgress, StatusComplete}
}

// Valid reports whether s is one of the enumerated lanes
func (s Status) Valid() bool {
	switch s {
	case StatusBacklog, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
