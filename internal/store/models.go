package store

import "time"

// Task status values.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOnHold     = "on_hold"
	StatusDiscarded  = "discarded"
)

// Task importance values.
const (
	ImportanceCritical = "critical"
	ImportanceHigh     = "high"
	ImportanceMedium   = "medium"
	ImportanceLow      = "low"
)

var Statuses = []string{StatusNotStarted, StatusInProgress, StatusCompleted, StatusOnHold, StatusDiscarded}

var Importances = []string{ImportanceCritical, ImportanceHigh, ImportanceMedium, ImportanceLow}

type Project struct {
	ID        int64
	Name      string
	Color     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Issue struct {
	ID        int64
	ProjectID int64
	Title     string
	Color     string
	Status    string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task is a single schedulable unit of work. StartDate and EndDate are
// calendar days; either, both, or neither may be set.
type Task struct {
	ID         int64
	IssueID    int64
	Name       string
	StartDate  *time.Time
	EndDate    *time.Time
	Status     string
	Importance string
	Color      string
	Archived   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Note is a bulletin board post.
type Note struct {
	ID        int64
	Title     string
	Body      string
	Pinned    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
