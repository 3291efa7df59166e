package primary

import (
	"context"

	"github.com/shopspring/decimal"
)

// FleetService defines the primary port for fleet operations.
type FleetService interface {
	// GetFleet retrieves a hydrated fleet with its derived capacity and cost.
	GetFleet(ctx context.Context, fleetID int64) (*Fleet, error)

	// GetFleetFields retrieves the stored column values of a fleet without hydrating it.
	GetFleetFields(ctx context.Context, fleetID int64) (map[string]any, error)

	// ListFleets lists stored fleets with optional filters.
	ListFleets(ctx context.Context, filters FleetFilters) ([]*FleetSummary, error)

	// CreateFleet creates a fleet with ships and optional cargo.
	CreateFleet(ctx context.Context, req CreateFleetRequest) (*CreateFleetResponse, error)

	// ChangeShips applies ship count deltas under a row lock.
	// Either every delta is applied or none is. A fleet left without ships is deleted.
	ChangeShips(ctx context.Context, req ChangeShipsRequest) (*ChangeFleetResponse, error)

	// ChangeCargo applies resource deltas under a row lock.
	// Either every delta is applied or none is.
	ChangeCargo(ctx context.Context, req ChangeCargoRequest) (*ChangeFleetResponse, error)

	// SplitFleet moves ships and cargo into a new fleet on the same route.
	SplitFleet(ctx context.Context, req SplitFleetRequest) (*SplitFleetResponse, error)
}

// ShipDelta is a change in the count of one ship type.
type ShipDelta struct {
	ShipID int
	Delta  float64
}

// ResourceDelta is a change in one carried resource.
type ResourceDelta struct {
	Resource string // metal, crystal or deuterium
	Delta    decimal.Decimal
}

// CreateFleetRequest contains parameters for creating a fleet.
type CreateFleetRequest struct {
	OwnerID       int64
	TargetOwnerID int64
	Mission       string // name or numeric code
	Start         string // galaxy:system:planet[:type]
	End           string
	StartPlanetID int64
	EndPlanetID   int64
	DepartAt      int64 // unix seconds, 0 means now
	ArriveAt      int64 // unix seconds, 0 means at departure
	Stay          int64 // seconds spent at the destination
	Group         string
	Ships         []ShipDelta
	Cargo         []ResourceDelta
}

// CreateFleetResponse contains the result of creating a fleet.
type CreateFleetResponse struct {
	FleetID int64
	Fleet   *Fleet
}

// ChangeShipsRequest contains ship deltas for one fleet.
type ChangeShipsRequest struct {
	FleetID int64
	Deltas  []ShipDelta
}

// ChangeCargoRequest contains resource deltas for one fleet.
type ChangeCargoRequest struct {
	FleetID int64
	Deltas  []ResourceDelta
}

// ChangeFleetResponse contains the result of a fleet mutation.
type ChangeFleetResponse struct {
	FleetID int64
	Deleted bool   // the fleet lost its last ship and no longer exists
	Fleet   *Fleet // nil when Deleted
}

// SplitFleetRequest contains parameters for splitting a fleet.
// Ships and Cargo hold the positive amounts moved to the new fleet.
type SplitFleetRequest struct {
	FleetID int64
	Ships   []ShipDelta
	Cargo   []ResourceDelta
}

// SplitFleetResponse contains the result of splitting a fleet.
type SplitFleetResponse struct {
	SourceID      int64
	SourceDeleted bool
	NewFleetID    int64
	Group         string
}

// Fleet represents a hydrated fleet at the port boundary.
type Fleet struct {
	ID            int64
	OwnerID       int64
	TargetOwnerID int64
	Mission       string
	Group         string
	Start         string
	End           string
	DepartAt      int64
	ArriveAt      int64
	Stay          int64
	Ships         []FleetShips
	ShipCount     float64
	Metal         decimal.Decimal
	Crystal       decimal.Decimal
	Deuterium     decimal.Decimal
	Capacity      decimal.Decimal // free cargo space
	CostInMetal   float64
}

// FleetShips is one manifest entry.
type FleetShips struct {
	ShipID int
	Name   string
	Count  float64
}

// FleetSummary represents a stored fleet row in listings.
type FleetSummary struct {
	ID        int64
	OwnerID   int64
	Mission   string
	Group     string
	Start     string
	End       string
	Manifest  string
	ShipCount float64
}

// FleetFilters contains filter options for querying fleets.
type FleetFilters struct {
	OwnerID int64
	Mission string
	Group   string
	Limit   int
}
