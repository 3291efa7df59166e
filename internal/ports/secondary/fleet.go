package secondary

import (
	"context"

	"github.com/example/armada/internal/models"
)

// FleetRepository defines the secondary port for fleet queries that do not need a
// hydrated fleet record.
type FleetRepository interface {
	// FindRecordByID returns the stored column values of a fleet without decoding
	// its manifest or ledger.
	FindRecordByID(ctx context.Context, id int64) (map[string]any, error)

	// List retrieves fleet rows matching the given filters, ordered by ID.
	List(ctx context.Context, filters FleetFilters) ([]*models.FleetRow, error)

	// CountByGroup returns the number of fleets sharing a group ID.
	CountByGroup(ctx context.Context, group string) (int, error)
}

// FleetFilters contains filter options for querying fleets. Zero values match all.
type FleetFilters struct {
	OwnerID int64
	Mission *models.Mission
	Group   string
	Limit   int
}
