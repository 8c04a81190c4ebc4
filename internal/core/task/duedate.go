package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DueDateLayout is the calendar date layout used for due dates.
const DueDateLayout = "2006-01-02"

// DueDate is an optional calendar date in YYYY-MM-DD form. The empty value
// means the task has no due date. Values are stored verbatim and only parsed
// when read, so a malformed date survives a load/save round trip.
type DueDate string

// NoDueDate is the absent due date.
const NoDueDate DueDate = ""

// DueDateOf formats t as a due date.
func DueDateOf(t time.Time) DueDate {
	return DueDate(t.Format(DueDateLayout))
}

// IsSet reports whether a due date is present.
func (d DueDate) IsSet() bool {
	return d != NoDueDate
}

// Time parses the due date as midnight in loc. A nil loc means time.Local.
func (d DueDate) Time(loc *time.Location) (time.Time, error) {
	if !d.IsSet() {
		return time.Time{}, fmt.Errorf("no due date")
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(DueDateLayout, string(d), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse due date %q: %w", string(d), err)
	}
	return t, nil
}

// String returns the date, or "-" when absent.
func (d DueDate) String() string {
	if !d.IsSet() {
		return "-"
	}
	return string(d)
}

// MarshalJSON encodes an absent due date as null.
func (d DueDate) MarshalJSON() ([]byte, error) {
	if !d.IsSet() {
		return []byte("null"), nil
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON decodes null or a string.
func (d *DueDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = NoDueDate
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("due_date: %w", err)
	}
	*d = DueDate(s)
	return nil
}
