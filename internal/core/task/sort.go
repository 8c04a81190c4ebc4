package task

import (
	"cmp"
	"slices"
	"time"
)

// SortKey selects the ordering of a sorted view.
type SortKey string

const (
	SortPriority SortKey = "priority"
	SortDueDate  SortKey = "due_date"
	// SortNone keeps insertion order. Any unrecognized key behaves the same.
	SortNone SortKey = "none"
)

// SortKeys lists the recognized sort keys.
func SortKeys() []SortKey {
	return []SortKey{SortPriority, SortDueDate, SortNone}
}

// IsValid reports whether k is a recognized sort key.
func (k SortKey) IsValid() bool {
	return slices.Contains(SortKeys(), k)
}

// maxDate stands in for tasks without a usable due date so they sort last.
var maxDate = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Sort returns a sorted copy of tasks. The input slice is never reordered.
//
//   - SortPriority: ascending rank (High, Medium, Low), ties by title.
//   - SortDueDate: ascending due date; absent or malformed dates sort last.
//   - anything else: insertion order.
//
// Both sorts are stable.
func Sort(tasks []Task, key SortKey) []Task {
	out := slices.Clone(tasks)
	if out == nil {
		out = []Task{}
	}

	switch key {
	case SortPriority:
		slices.SortStableFunc(out, func(a, b Task) int {
			if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
				return c
			}
			return cmp.Compare(a.Title, b.Title)
		})
	case SortDueDate:
		slices.SortStableFunc(out, func(a, b Task) int {
			return sortableDue(a).Compare(sortableDue(b))
		})
	}

	return out
}

func sortableDue(t Task) time.Time {
	if !t.DueDate.IsSet() {
		return maxDate
	}
	d, err := t.DueDate.Time(time.UTC)
	if err != nil {
		return maxDate
	}
	return d
}
