package logging

import "context"

type contextKey string

const (
	scanIDKey contextKey = "scan_id"
	taskIDKey contextKey = "task_id"
)

// WithScanID tags the context with the id of a reminder scan.
func WithScanID(ctx context.Context, scanID string) context.Context {
	return context.WithValue(ctx, scanIDKey, scanID)
}

// WithTaskID tags the context with the id of the task being handled.
func WithTaskID(ctx context.Context, taskID int) context.Context {
	return context.WithValue(ctx, taskIDKey, taskID)
}

// GetScanID returns the scan id from the context, or "" if absent.
func GetScanID(ctx context.Context) string {
	if id, ok := ctx.Value(scanIDKey).(string); ok {
		return id
	}
	return ""
}

// GetTaskID returns the task id from the context. The second value is false
// if the context carries no task id.
func GetTaskID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(taskIDKey).(int)
	return id, ok
}
