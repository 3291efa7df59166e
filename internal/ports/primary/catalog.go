package primary

import "context"

// CatalogService defines the primary port for the ship-info table.
type CatalogService interface {
	// ListShips returns every fleet-capable ship type ordered by ID.
	ListShips(ctx context.Context) ([]*ShipType, error)
}

// ShipType represents one ship-info row at the port boundary.
type ShipType struct {
	ID          int
	Name        string
	Capacity    float64
	Metal       float64
	Crystal     float64
	Deuterium   float64
	CostInMetal float64
}
