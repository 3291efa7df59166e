package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/armada/internal/ports/secondary"
)

// FleetLogRepository implements secondary.FleetLogRepository with sqlx.
type FleetLogRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewFleetLogRepository creates a new fleet audit log repository.
func NewFleetLogRepository(db *sqlx.DB) *FleetLogRepository {
	return &FleetLogRepository{db: db, now: time.Now}
}

// Create persists a new log entry. A zero CreatedAt is set to the current time.
func (r *FleetLogRepository) Create(ctx context.Context, log *secondary.FleetLogRecord) error {
	if log.CreatedAt == 0 {
		log.CreatedAt = r.now().Unix()
	}

	result, err := r.db.NamedExecContext(ctx,
		`INSERT INTO fleet_logs (fleet_id, actor_id, action, field_name, old_value, new_value, created_at)
		VALUES (:fleet_id, :actor_id, :action, :field_name, :old_value, :new_value, :created_at)`,
		log,
	)
	if err != nil {
		return fmt.Errorf("failed to create fleet log: %w", err)
	}

	// Postgres does not report LastInsertId; the entry is still written.
	if id, err := result.LastInsertId(); err == nil {
		log.ID = id
	}
	return nil
}

// List retrieves log entries matching the given filters, newest first.
func (r *FleetLogRepository) List(ctx context.Context, filters secondary.FleetLogFilters) ([]*secondary.FleetLogRecord, error) {
	query := `SELECT id, fleet_id, actor_id, action, field_name, old_value, new_value, created_at FROM fleet_logs WHERE 1=1`
	args := []any{}

	if filters.FleetID != 0 {
		query += " AND fleet_id = ?"
		args = append(args, filters.FleetID)
	}

	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	var logs []*secondary.FleetLogRecord
	if err := r.db.SelectContext(ctx, &logs, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list fleet logs: %w", err)
	}
	return logs, nil
}

// PruneOlderThan deletes log entries older than the given number of days.
func (r *FleetLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	cutoff := r.now().Add(-time.Duration(days) * 24 * time.Hour).Unix()

	result, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM fleet_logs WHERE created_at < ?"), cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune fleet logs: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure FleetLogRepository implements the interface
var _ secondary.FleetLogRepository = (*FleetLogRepository)(nil)
