package fleet

import (
	"maps"

	"github.com/shopspring/decimal"
)

// ShipTable looks up static per-ship values. Unknown ship types report 0.
type ShipTable interface {
	Capacity(shipID int) float64
	CostInMetal(shipID int) float64
}

// ShipCount is the total number of ships in a manifest.
func ShipCount(ships map[int]float64) float64 {
	var total float64
	for _, n := range ships {
		total += n
	}
	return total
}

// Capacity is the free cargo space: the manifest's nominal capacity minus everything
// carried, floored at zero.
func Capacity(ships map[int]float64, ledger Ledger, table ShipTable) decimal.Decimal {
	var nominal float64
	for id, n := range ships {
		nominal += n * table.Capacity(id)
	}

	free := decimal.NewFromFloat(nominal).Sub(ledger.Total())
	if free.IsNegative() {
		return decimal.Zero
	}
	return free
}

// CostInMetal is the metal-equivalent cost of every ship in the manifest.
func CostInMetal(ships map[int]float64, table ShipTable) float64 {
	var total float64
	for id, n := range ships {
		total += n * table.CostInMetal(id)
	}
	return total
}

// ApplyShipDelta returns a copy of ships with delta added to shipID. Entries that
// reach zero or below are removed. The caller must check CanChangeShipCount first.
func ApplyShipDelta(ships map[int]float64, shipID int, delta float64) map[int]float64 {
	next := maps.Clone(ships)
	if next == nil {
		next = make(map[int]float64)
	}

	count := next[shipID] + delta
	if count <= 0 {
		delete(next, shipID)
	} else {
		next[shipID] = count
	}
	return next
}
