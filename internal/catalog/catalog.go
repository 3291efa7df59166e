// Package catalog holds the ship-info table: cargo capacity and metal-equivalent
// cost per ship type.
//
// The table is populated at most once from a unit source and is read-only after
// that, so a single *Catalog can be shared by every fleet record in the process.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/example/armada/internal/ports/secondary"
)

// ErrInvalidRates is returned when exchange rates cannot convert costs to metal.
var ErrInvalidRates = errors.New("invalid exchange rates")

// ShipInfo is one row of the ship-info table.
type ShipInfo struct {
	ID          int
	Name        string
	Capacity    float64
	Cost        secondary.CostVector
	CostInMetal float64
}

// Rates are resource exchange rates relative to each other.
type Rates struct {
	Metal     float64
	Crystal   float64
	Deuterium float64
}

// DefaultRates values crystal at twice and deuterium at four times metal.
var DefaultRates = Rates{Metal: 1, Crystal: 2, Deuterium: 4}

// ToMetal converts a cost vector into its metal equivalent.
func (r Rates) ToMetal(c secondary.CostVector) float64 {
	return (c.Metal*r.Metal + c.Crystal*r.Crystal + c.Deuterium*r.Deuterium) / r.Metal
}

func (r Rates) validate() error {
	if r.Metal <= 0 || r.Crystal <= 0 || r.Deuterium <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidRates, r)
	}
	return nil
}

// Catalog is the shared ship-info table.
type Catalog struct {
	source secondary.UnitSource
	group  string
	rates  Rates
	table  atomic.Pointer[map[int]ShipInfo]
}

// New creates an unpopulated catalog that reads the ships of group from source.
func New(source secondary.UnitSource, group string, rates Rates) (*Catalog, error) {
	if err := rates.validate(); err != nil {
		return nil, err
	}
	return &Catalog{source: source, group: group, rates: rates}, nil
}

// NewStatic creates an already populated catalog from the given rows.
func NewStatic(ships ...ShipInfo) *Catalog {
	table := make(map[int]ShipInfo, len(ships))
	for _, s := range ships {
		table[s.ID] = s
	}
	c := &Catalog{rates: DefaultRates}
	c.table.Store(&table)
	return c
}

// Populated reports whether the table has been loaded.
func (c *Catalog) Populated() bool { return c.table.Load() != nil }

// Populate loads the table from the unit source unless it is already loaded.
// Concurrent callers may each read the source; the first complete table is kept.
func (c *Catalog) Populate(ctx context.Context) error {
	if c.Populated() {
		return nil
	}
	if c.source == nil {
		return errors.New("catalog has no unit source")
	}

	ids, err := c.source.UnitGroup(ctx, c.group)
	if err != nil {
		return fmt.Errorf("failed to read unit group %q: %w", c.group, err)
	}

	table := make(map[int]ShipInfo, len(ids))
	for _, id := range ids {
		params, err := c.source.UnitParams(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to read unit %d: %w", id, err)
		}
		table[id] = ShipInfo{
			ID:          id,
			Name:        params.Name,
			Capacity:    params.Capacity,
			Cost:        params.Cost,
			CostInMetal: c.rates.ToMetal(params.Cost),
		}
	}

	c.table.CompareAndSwap(nil, &table)
	return nil
}

// Info returns the row for a ship type.
func (c *Catalog) Info(shipID int) (ShipInfo, bool) {
	table := c.table.Load()
	if table == nil {
		return ShipInfo{}, false
	}
	info, ok := (*table)[shipID]
	return info, ok
}

// Capacity returns the cargo capacity of one ship, or 0 for unknown types.
func (c *Catalog) Capacity(shipID int) float64 {
	info, _ := c.Info(shipID)
	return info.Capacity
}

// CostInMetal returns the metal-equivalent cost of one ship, or 0 for unknown types.
func (c *Catalog) CostInMetal(shipID int) float64 {
	info, _ := c.Info(shipID)
	return info.CostInMetal
}

// Ships returns every row sorted by ship ID.
func (c *Catalog) Ships() []ShipInfo {
	table := c.table.Load()
	if table == nil {
		return nil
	}
	ships := make([]ShipInfo, 0, len(*table))
	for _, id := range slices.Sorted(maps.Keys(*table)) {
		ships = append(ships, (*table)[id])
	}
	return ships
}
