package secondary

import "context"

// UnitSource supplies static unit parameters.
type UnitSource interface {
	// UnitGroup returns the unit IDs in the named group.
	UnitGroup(ctx context.Context, group string) ([]int, error)

	// UnitParams returns the parameters of one unit.
	UnitParams(ctx context.Context, id int) (UnitParams, error)
}

// UnitParams holds the static parameters of a unit type.
type UnitParams struct {
	ID       int
	Name     string
	Capacity float64
	Cost     CostVector
}

// CostVector is the raw construction cost of a unit per resource.
type CostVector struct {
	Metal     float64
	Crystal   float64
	Deuterium float64
}
