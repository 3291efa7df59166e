// Package sqldb contains database/sql implementations of repository interfaces.
// Queries are written with ? placeholders and rebound for the connection's driver.
package sqldb

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/example/armada/internal/fleet"
	"github.com/example/armada/internal/models"
	"github.com/example/armada/internal/ports/secondary"
)

// FleetRepository implements secondary.FleetRepository with sqlx.
type FleetRepository struct {
	db *sqlx.DB
}

// NewFleetRepository creates a new fleet repository.
func NewFleetRepository(db *sqlx.DB) *FleetRepository {
	return &FleetRepository{db: db}
}

// FindRecordByID returns the stored column values of a fleet.
func (r *FleetRepository) FindRecordByID(ctx context.Context, id int64) (map[string]any, error) {
	return fleet.FindRecordByID(ctx, r.db, id)
}

// List retrieves fleets matching the given filters, ordered by ID.
func (r *FleetRepository) List(ctx context.Context, filters secondary.FleetFilters) ([]*models.FleetRow, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1",
		strings.Join(models.FleetTable.Columns, ", "), models.FleetTable.Name)
	args := []any{}

	if filters.OwnerID != 0 {
		query += " AND " + models.ColOwner + " = ?"
		args = append(args, filters.OwnerID)
	}

	if filters.Mission != nil {
		query += " AND " + models.ColMission + " = ?"
		args = append(args, int(*filters.Mission))
	}

	if filters.Group != "" {
		query += " AND " + models.ColGroup + " = ?"
		args = append(args, filters.Group)
	}

	query += " ORDER BY " + models.ColFleetID

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	var rows []*models.FleetRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list fleets: %w", err)
	}
	return rows, nil
}

// CountByGroup returns the number of fleets sharing a group ID.
func (r *FleetRepository) CountByGroup(ctx context.Context, group string) (int, error) {
	var count int
	query := r.db.Rebind("SELECT COUNT(*) FROM fleets WHERE fleet_group = ?")
	if err := r.db.GetContext(ctx, &count, query, group); err != nil {
		return 0, fmt.Errorf("failed to count fleets in group: %w", err)
	}
	return count, nil
}

// Ensure FleetRepository implements the interface
var _ secondary.FleetRepository = (*FleetRepository)(nil)
