package task

import (
	"fmt"
	"strings"
)

type changeOp uint8

const (
	opKeep changeOp = iota
	opSet
	opClear
)

// Change describes what an update does to a single field. The zero value
// leaves the field unchanged.
type Change[T any] struct {
	op    changeOp
	value T
}

// Keep leaves the field unchanged.
func Keep[T any]() Change[T] { return Change[T]{} }

// Set overwrites the field with v.
func Set[T any](v T) Change[T] { return Change[T]{op: opSet, value: v} }

// Clear resets the field to its zero value.
func Clear[T any]() Change[T] { return Change[T]{op: opClear} }

// IsKeep reports whether the field is left unchanged.
func (c Change[T]) IsKeep() bool { return c.op == opKeep }

// IsSet reports whether the field is overwritten with a value.
func (c Change[T]) IsSet() bool { return c.op == opSet }

// IsClear reports whether the field is reset.
func (c Change[T]) IsClear() bool { return c.op == opClear }

// Value returns the value carried by a Set change.
func (c Change[T]) Value() T { return c.value }

// Apply returns the field value after the change.
func (c Change[T]) Apply(current T) T {
	switch c.op {
	case opSet:
		return c.value
	case opClear:
		var zero T
		return zero
	default:
		return current
	}
}

// Patch is a partial update of a task. Fields left as Keep are not touched.
type Patch struct {
	Title    Change[string]
	Priority Change[Priority]
	DueDate  Change[DueDate]
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title.IsKeep() && p.Priority.IsKeep() && p.DueDate.IsKeep()
}

// Validate rejects patches that would leave a task without a title or priority.
func (p Patch) Validate() error {
	if p.Title.IsClear() || (p.Title.IsSet() && strings.TrimSpace(p.Title.Value()) == "") {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidPatch)
	}
	if p.Priority.IsClear() {
		return fmt.Errorf("%w: priority cannot be cleared", ErrInvalidPatch)
	}
	if p.Priority.IsSet() && !p.Priority.Value().IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidPatch, p.Priority.Value())
	}
	return nil
}

// Apply returns t with the patch applied. Completed, ID and CreatedAt are
// never modified by a patch.
func (p Patch) Apply(t Task) Task {
	t.Title = p.Title.Apply(t.Title)
	t.Priority = p.Priority.Apply(t.Priority)
	t.DueDate = p.DueDate.Apply(t.DueDate)
	return t
}
