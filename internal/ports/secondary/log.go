package secondary

import "context"

// LogWriter defines the interface for writing fleet audit log entries.
// Implementations extract the actor from context.
type LogWriter interface {
	// LogCreate logs the creation of a fleet.
	LogCreate(ctx context.Context, fleetID int64) error

	// LogUpdate logs a change to one fleet column.
	LogUpdate(ctx context.Context, fleetID int64, fieldName, oldValue, newValue string) error

	// LogDelete logs the deletion of a fleet.
	LogDelete(ctx context.Context, fleetID int64) error
}

// FleetLogRepository defines the secondary port for fleet audit log persistence.
type FleetLogRepository interface {
	// Create persists a new log entry and sets its generated ID.
	Create(ctx context.Context, log *FleetLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters FleetLogFilters) ([]*FleetLogRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// FleetLogRecord represents a fleet audit log entry as stored in persistence.
type FleetLogRecord struct {
	ID        int64  `db:"id"`
	FleetID   int64  `db:"fleet_id"`
	ActorID   string `db:"actor_id"`
	Action    string `db:"action"`
	FieldName string `db:"field_name"`
	OldValue  string `db:"old_value"`
	NewValue  string `db:"new_value"`
	CreatedAt int64  `db:"created_at"` // unix seconds
}

// FleetLogFilters contains filter options for querying log entries.
type FleetLogFilters struct {
	FleetID int64
	ActorID string
	Action  string
	Limit   int
}
