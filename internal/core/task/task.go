// Package task defines the task record domain model, its update patches and
// the sorted views over a task collection.
package task

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no task matches the given id.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidPatch is returned when an update would leave a task invalid.
	ErrInvalidPatch = errors.New("invalid task patch")
)

// CreatedAtLayout is the timestamp layout used for the created_at field.
const CreatedAtLayout = "2006-01-02 15:04:05"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// DefaultPriority is used when a task is created without one.
const DefaultPriority = PriorityMedium

// Priorities lists all priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Rank returns the sort rank of the priority. Unknown values rank after Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p.Rank() < 3
}

// ParsePriority parses a priority name case-insensitively.
// An empty string yields DefaultPriority.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPriority, nil
	}

	for _, p := range Priorities() {
		if strings.EqualFold(s, string(p)) {
			return p, nil
		}
	}

	return "", errors.New("priority must be one of High, Medium, Low")
}

// Task is a single tracked unit of work.
type Task struct {
	ID        int      `json:"id"`
	Title     string   `json:"title"`
	Priority  Priority `json:"priority"`
	DueDate   DueDate  `json:"due_date"`
	Completed bool     `json:"completed"`
	CreatedAt string   `json:"created_at"`
}

// New builds a pending task stamped with the creation time.
func New(id int, title string, priority Priority, due DueDate, now time.Time) Task {
	if priority == "" {
		priority = DefaultPriority
	}

	return Task{
		ID:        id,
		Title:     title,
		Priority:  priority,
		DueDate:   due,
		Completed: false,
		CreatedAt: now.Format(CreatedAtLayout),
	}
}

// Status returns a human-readable completion status.
func (t Task) Status() string {
	if t.Completed {
		return "Completed"
	}
	return "Pending"
}
