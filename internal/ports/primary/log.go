package primary

import "context"

// LogService defines the primary port for the fleet audit log.
type LogService interface {
	// ListLogs retrieves log entries matching the given filters, newest first.
	ListLogs(ctx context.Context, filters LogFilters) ([]*LogEntry, error)

	// PruneLogs deletes log entries older than the specified number of days.
	PruneLogs(ctx context.Context, olderThanDays int) (int, error)
}

// LogEntry represents a fleet audit log entry at the port boundary.
type LogEntry struct {
	ID        int64
	FleetID   int64
	ActorID   string
	Action    string // 'create', 'update', 'delete'
	FieldName string // For updates only
	OldValue  string
	NewValue  string
	CreatedAt string
}

// LogFilters contains filter options for querying logs.
type LogFilters struct {
	FleetID int64
	ActorID string
	Action  string
	Limit   int
}
