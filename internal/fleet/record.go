// Package fleet implements the persisted fleet record: a ship manifest and a
// resource ledger bound to one row of the fleets table.
//
// Mutations are guarded so ship counts and carried resources never go negative,
// and the encoded manifest, ship count and resource columns of the row are kept in
// sync after every successful change. Persisting a fleet without ships deletes its
// row.
package fleet

import (
	"context"
	"fmt"
	"maps"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/core/effects"
	corefleet "github.com/example/armada/internal/core/fleet"
	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/manifest"
	"github.com/example/armada/internal/models"
)

// ShipCatalog is the ship-info table a record derives capacity and cost from.
type ShipCatalog interface {
	corefleet.ShipTable
	Populate(ctx context.Context) error
}

// Record is a fleet bound to its row.
type Record struct {
	entity  *dbal.Entity
	row     *models.FleetRow
	ships   map[int]float64
	ledger  corefleet.Ledger
	catalog ShipCatalog
}

func newRecord(q sqlx.ExtContext, cat ShipCatalog) *Record {
	r := &Record{
		entity:  dbal.NewEntity(q, models.FleetTable, func() dbal.Record { return &models.FleetRow{} }),
		ships:   make(map[int]float64),
		catalog: cat,
	}
	r.entity.SetBeforePersist(r.planPersist)
	return r
}

// New returns an unsaved fleet with no ships. It is inserted by the first Persist
// after ships are added.
func New(q sqlx.ExtContext, cat ShipCatalog) *Record {
	r := newRecord(q, cat)
	r.row = &models.FleetRow{StartType: models.PlanetTypePlanet, EndType: models.PlanetTypePlanet}
	r.entity.Bind(r.row)
	return r
}

// Load reads the fleet with the given ID under the requested row lock and hydrates
// it. Locks other than LockNone only hold inside a transaction, so q should be the
// *sqlx.Tx the caller will persist through.
func Load(ctx context.Context, q sqlx.ExtContext, cat ShipCatalog, id int64, lock dbal.LockMode) (*Record, error) {
	if err := cat.Populate(ctx); err != nil {
		return nil, err
	}

	r := newRecord(q, cat)
	rec, err := r.entity.Load(ctx, id, lock)
	if err != nil {
		return nil, err
	}

	if err := r.hydrate(rec.(*models.FleetRow)); err != nil {
		r.entity.Bind(nil)
		return nil, err
	}
	return r, nil
}

// FromRow binds an already fetched row, for example one returned by a listing.
func FromRow(ctx context.Context, q sqlx.ExtContext, cat ShipCatalog, row *models.FleetRow) (*Record, error) {
	if err := cat.Populate(ctx); err != nil {
		return nil, err
	}

	r := newRecord(q, cat)
	if err := r.hydrate(row); err != nil {
		return nil, err
	}
	r.entity.Bind(row)
	return r, nil
}

// hydrate decodes the manifest and ledger columns of row.
func (r *Record) hydrate(row *models.FleetRow) error {
	ships, err := manifest.Decode(row.Array)
	if err != nil {
		return fmt.Errorf("fleet %d: %w", row.ID, err)
	}

	r.row = row
	r.ships = ships
	r.ledger = corefleet.Ledger{
		Metal:     row.ResourceMetal,
		Crystal:   row.ResourceCrystal,
		Deuterium: row.ResourceDeuterium,
	}
	return nil
}

// FindRecordByID returns the stored column values of a fleet without decoding its
// manifest or ledger.
func FindRecordByID(ctx context.Context, q sqlx.ExtContext, id int64) (map[string]any, error) {
	row := &models.FleetRow{}
	if err := dbal.FindByPrimaryKey(ctx, q, models.FleetTable, id, dbal.LockNone, row); err != nil {
		return nil, err
	}
	return row.Fields(), nil
}

// ID returns the fleet ID, 0 for an unsaved fleet.
func (r *Record) ID() int64 { return r.entity.ID() }

// Bound reports whether the record still has a backing row. A fleet persisted
// without ships is unbound.
func (r *Record) Bound() bool { return r.entity.Bound() }

// ChangeShipCount adds delta ships of one type. A count that reaches zero removes
// the type from the manifest. The change is rejected with
// corefleet.ErrInvalidShipCount for a NaN or infinite delta and with
// corefleet.ErrInsufficientShips if the count would become negative.
func (r *Record) ChangeShipCount(shipID int, delta float64) error {
	if !r.entity.Bound() {
		return dbal.ErrNotBound
	}

	guard := corefleet.CanChangeShipCount(corefleet.ShipChangeContext{
		FleetID: r.ID(),
		ShipID:  shipID,
		Current: r.ships[shipID],
		Delta:   delta,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	r.ships = corefleet.ApplyShipDelta(r.ships, shipID, delta)
	r.row.Array = manifest.Encode(r.ships)
	r.row.Amount = corefleet.ShipCount(r.ships)
	return nil
}

// ChangeResource adds delta of a resource to the cargo. Unknown kinds and zero
// deltas are ignored. The change is rejected with corefleet.ErrInsufficientResource
// if the quantity would become negative.
func (r *Record) ChangeResource(kind corefleet.Resource, delta decimal.Decimal) error {
	if !r.entity.Bound() {
		return dbal.ErrNotBound
	}
	if !kind.Valid() || delta.IsZero() {
		return nil
	}

	current := r.ledger.Get(kind)
	guard := corefleet.CanChangeResource(corefleet.ResourceChangeContext{
		FleetID:  r.ID(),
		Resource: kind,
		Current:  current,
		Delta:    delta,
	})
	if err := guard.Error(); err != nil {
		return err
	}

	r.ledger = r.ledger.With(kind, current.Add(delta))
	r.row.ResourceMetal = r.ledger.Metal
	r.row.ResourceCrystal = r.ledger.Crystal
	r.row.ResourceDeuterium = r.ledger.Deuterium
	return nil
}

// ShipCount returns the total number of ships.
func (r *Record) ShipCount() float64 { return corefleet.ShipCount(r.ships) }

// ShipList returns a copy of the manifest.
func (r *Record) ShipList() map[int]float64 { return maps.Clone(r.ships) }

// Ships returns the count of one ship type, 0 when absent.
func (r *Record) Ships(shipID int) float64 { return r.ships[shipID] }

// Resources returns the carried resources.
func (r *Record) Resources() corefleet.Ledger { return r.ledger }

// Capacity returns the free cargo space.
func (r *Record) Capacity() decimal.Decimal {
	return corefleet.Capacity(r.ships, r.ledger, r.catalog)
}

// NominalCapacity returns the cargo space of the ships ignoring what they carry.
func (r *Record) NominalCapacity() decimal.Decimal {
	return corefleet.Capacity(r.ships, corefleet.Ledger{}, r.catalog)
}

// CostInMetal returns the metal-equivalent cost of all ships.
func (r *Record) CostInMetal() float64 {
	return corefleet.CostInMetal(r.ships, r.catalog)
}

// ShipCapacity returns the cargo capacity of one ship of the given type.
func (r *Record) ShipCapacity(shipID int) float64 { return r.catalog.Capacity(shipID) }

// ShipCostInMetal returns the metal-equivalent cost of one ship of the given type.
func (r *Record) ShipCostInMetal(shipID int) float64 { return r.catalog.CostInMetal(shipID) }

// Row returns a copy of the fleet's row.
func (r *Record) Row() models.FleetRow { return *r.row }

// SetOwner sets the owning player.
func (r *Record) SetOwner(ownerID int64) { r.row.OwnerID = ownerID }

// SetMission sets the mission.
func (r *Record) SetMission(m models.Mission) { r.row.Mission = m }

// SetTargetOwner sets the player owning the destination.
func (r *Record) SetTargetOwner(ownerID int64) { r.row.TargetOwner = ownerID }

// SetGroup sets the group shared by fleets split from a common origin.
func (r *Record) SetGroup(group string) { r.row.Group = group }

// SetCreatedAt sets the creation time as a unix timestamp.
func (r *Record) SetCreatedAt(unix int64) { r.row.CreatedAt = unix }

// SetDeparture sets where and when the fleet leaves.
func (r *Record) SetDeparture(at models.Coordinates, planetID, unix int64) {
	r.row.SetStart(at)
	r.row.StartPlanetID = planetID
	r.row.StartTime = unix
}

// SetArrival sets where and when the fleet arrives and how long it stays.
func (r *Record) SetArrival(at models.Coordinates, planetID, unix, stay int64) {
	r.row.SetEnd(at)
	r.row.EndPlanetID = planetID
	r.row.EndTime = unix
	r.row.EndStay = stay
}

func (r *Record) planPersist(rec dbal.Record) effects.PersistEffect {
	return corefleet.PlanPersist(corefleet.PersistPlanInput{
		FleetID:   rec.PrimaryKey(),
		ShipCount: r.ShipCount(),
	})
}

// Persist writes the fleet: a new fleet is inserted and a stored one updated. A
// stored fleet with fewer than one ship is deleted and left unbound; an unsaved
// one is not written at all. The returned effect describes what was done.
func (r *Record) Persist(ctx context.Context) (effects.PersistEffect, error) {
	return r.entity.Persist(ctx)
}

// Update persists the fleet and reports only the error.
func (r *Record) Update(ctx context.Context) error {
	_, err := r.Persist(ctx)
	return err
}

// AsFlatFields returns the fleet's column values for outer layers.
func (r *Record) AsFlatFields() (map[string]any, error) {
	return r.entity.AsArray()
}
