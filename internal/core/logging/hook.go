package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies scan_id and task_id from the event context into the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if scanID := GetScanID(ctx); scanID != "" {
		e.Str("scan_id", scanID)
	}

	if taskID, ok := GetTaskID(ctx); ok {
		e.Int("task_id", taskID)
	}
}
