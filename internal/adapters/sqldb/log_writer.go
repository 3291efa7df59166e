package sqldb

import (
	"context"

	"github.com/example/armada/internal/ctxutil"
	"github.com/example/armada/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using FleetLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.FleetLogRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.FleetLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo}
}

// LogCreate logs the creation of a fleet.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, fleetID int64) error {
	return w.writeLog(ctx, fleetID, "create", "", "", "")
}

// LogUpdate logs a change to one fleet column.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, fleetID int64, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, fleetID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs the deletion of a fleet.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, fleetID int64) error {
	return w.writeLog(ctx, fleetID, "delete", "", "", "")
}

func (w *LogWriterAdapter) writeLog(ctx context.Context, fleetID int64, action, fieldName, oldValue, newValue string) error {
	return w.logRepo.Create(ctx, &secondary.FleetLogRecord{
		FleetID:   fleetID,
		ActorID:   ctxutil.ActorFromContext(ctx),
		Action:    action,
		FieldName: fieldName,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
