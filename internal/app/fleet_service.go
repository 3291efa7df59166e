package app

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/example/armada/internal/catalog"
	"github.com/example/armada/internal/core/effects"
	corefleet "github.com/example/armada/internal/core/fleet"
	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/fleet"
	"github.com/example/armada/internal/logging"
	"github.com/example/armada/internal/models"
	"github.com/example/armada/internal/ports/primary"
	"github.com/example/armada/internal/ports/secondary"
)

// ShipCatalog is the ship-info table as the services need it.
type ShipCatalog interface {
	fleet.ShipCatalog
	Info(shipID int) (catalog.ShipInfo, bool)
	Ships() []catalog.ShipInfo
}

// FleetServiceImpl implements the FleetService interface.
type FleetServiceImpl struct {
	db        *sqlx.DB
	fleetRepo secondary.FleetRepository
	catalog   ShipCatalog
	logWriter secondary.LogWriter
	executor  EffectExecutor
	logger    zerolog.Logger
	now       func() time.Time
	newGroup  func() string
}

// NewFleetService creates a new FleetService with injected dependencies.
func NewFleetService(
	db *sqlx.DB,
	fleetRepo secondary.FleetRepository,
	catalog ShipCatalog,
	logWriter secondary.LogWriter,
	executor EffectExecutor,
	logger zerolog.Logger,
) *FleetServiceImpl {
	return &FleetServiceImpl{
		db:        db,
		fleetRepo: fleetRepo,
		catalog:   catalog,
		logWriter: logWriter,
		executor:  executor,
		logger:    logger,
		now:       time.Now,
		newGroup:  uuid.NewString,
	}
}

// fieldChange is one column change recorded in the audit log.
type fieldChange struct {
	field    string
	old, new string
}

// GetFleet retrieves a hydrated fleet.
func (s *FleetServiceImpl) GetFleet(ctx context.Context, fleetID int64) (*primary.Fleet, error) {
	rec, err := fleet.Load(ctx, s.db, s.catalog, fleetID, dbal.LockNone)
	if err != nil {
		return nil, fmt.Errorf("failed to load fleet: %w", err)
	}
	return s.toFleet(rec), nil
}

// GetFleetFields retrieves the stored column values of a fleet.
func (s *FleetServiceImpl) GetFleetFields(ctx context.Context, fleetID int64) (map[string]any, error) {
	return s.fleetRepo.FindRecordByID(ctx, fleetID)
}

// ListFleets lists stored fleets with optional filters.
func (s *FleetServiceImpl) ListFleets(ctx context.Context, filters primary.FleetFilters) ([]*primary.FleetSummary, error) {
	repoFilters := secondary.FleetFilters{
		OwnerID: filters.OwnerID,
		Group:   filters.Group,
		Limit:   filters.Limit,
	}
	if filters.Mission != "" {
		mission, err := models.ParseMission(filters.Mission)
		if err != nil {
			return nil, err
		}
		repoFilters.Mission = &mission
	}

	rows, err := s.fleetRepo.List(ctx, repoFilters)
	if err != nil {
		return nil, err
	}

	summaries := make([]*primary.FleetSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &primary.FleetSummary{
			ID:        row.ID,
			OwnerID:   row.OwnerID,
			Mission:   row.Mission.String(),
			Group:     row.Group,
			Start:     row.Start().String(),
			End:       row.End().String(),
			Manifest:  row.Array,
			ShipCount: row.Amount,
		}
	}
	return summaries, nil
}

// CreateFleet creates a fleet with ships and optional cargo.
func (s *FleetServiceImpl) CreateFleet(ctx context.Context, req primary.CreateFleetRequest) (*primary.CreateFleetResponse, error) {
	mission, err := models.ParseMission(req.Mission)
	if err != nil {
		return nil, err
	}
	start, err := models.ParseCoordinates(req.Start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := models.ParseCoordinates(req.End)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	cargo, err := parseResourceDeltas(req.Cargo)
	if err != nil {
		return nil, err
	}
	if err := s.catalog.Populate(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ship catalog: %w", err)
	}

	now := s.now().Unix()
	departAt := req.DepartAt
	if departAt == 0 {
		departAt = now
	}
	arriveAt := req.ArriveAt
	if arriveAt == 0 {
		arriveAt = departAt
	}

	rec := fleet.New(s.db, s.catalog)
	rec.SetOwner(req.OwnerID)
	rec.SetTargetOwner(req.TargetOwnerID)
	rec.SetMission(mission)
	rec.SetGroup(req.Group)
	rec.SetCreatedAt(now)
	rec.SetDeparture(start, req.StartPlanetID, departAt)
	rec.SetArrival(end, req.EndPlanetID, arriveAt, req.Stay)

	for _, d := range req.Ships {
		if err := rec.ChangeShipCount(d.ShipID, d.Delta); err != nil {
			return nil, err
		}
	}
	for _, d := range cargo {
		if err := rec.ChangeResource(d.kind, d.delta); err != nil {
			return nil, err
		}
	}

	guard := corefleet.CanCreateFleet(corefleet.CreateFleetContext{
		ShipCount: rec.ShipCount(),
		Cargo:     rec.Resources().Total(),
		Capacity:  rec.NominalCapacity(),
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	plan, err := rec.Persist(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create fleet: %w", err)
	}
	s.afterPersist(ctx, plan, nil)

	return &primary.CreateFleetResponse{
		FleetID: rec.ID(),
		Fleet:   s.toFleet(rec),
	}, nil
}

// ChangeShips applies ship count deltas under a row lock.
func (s *FleetServiceImpl) ChangeShips(ctx context.Context, req primary.ChangeShipsRequest) (*primary.ChangeFleetResponse, error) {
	return s.mutate(ctx, req.FleetID, func(rec *fleet.Record) error {
		for _, d := range req.Deltas {
			if err := rec.ChangeShipCount(d.ShipID, d.Delta); err != nil {
				return err
			}
		}
		return nil
	})
}

// ChangeCargo applies resource deltas under a row lock.
func (s *FleetServiceImpl) ChangeCargo(ctx context.Context, req primary.ChangeCargoRequest) (*primary.ChangeFleetResponse, error) {
	deltas, err := parseResourceDeltas(req.Deltas)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, req.FleetID, func(rec *fleet.Record) error {
		for _, d := range deltas {
			if err := rec.ChangeResource(d.kind, d.delta); err != nil {
				return err
			}
		}
		return nil
	})
}

// mutate loads a fleet for update, applies fn and persists it in one transaction.
// Any error from fn rolls the whole change back.
func (s *FleetServiceImpl) mutate(ctx context.Context, fleetID int64, fn func(rec *fleet.Record) error) (*primary.ChangeFleetResponse, error) {
	resp := &primary.ChangeFleetResponse{FleetID: fleetID}
	var plan effects.PersistEffect
	var changes []fieldChange

	err := dbal.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		rec, err := fleet.Load(ctx, tx, s.catalog, fleetID, dbal.LockForUpdate)
		if err != nil {
			return err
		}

		before := rec.Row()
		if err := fn(rec); err != nil {
			return err
		}
		after := rec.Row()

		plan, err = rec.Persist(ctx)
		if err != nil {
			return err
		}

		changes = diffRows(before, after)
		if rec.Bound() {
			resp.Fleet = s.toFleet(rec)
		} else {
			resp.Deleted = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterPersist(ctx, plan, changes)
	return resp, nil
}

// SplitFleet moves ships and cargo into a new fleet on the same route.
func (s *FleetServiceImpl) SplitFleet(ctx context.Context, req primary.SplitFleetRequest) (*primary.SplitFleetResponse, error) {
	cargo, err := parseResourceDeltas(req.Cargo)
	if err != nil {
		return nil, err
	}

	splitCtx := corefleet.SplitFleetContext{FleetID: req.FleetID}
	for _, d := range req.Ships {
		splitCtx.ShipsMoved = append(splitCtx.ShipsMoved, d.Delta)
	}
	for _, d := range cargo {
		splitCtx.CargoMoved = append(splitCtx.CargoMoved, d.delta)
	}
	if err := corefleet.CanSplitFleet(splitCtx).Error(); err != nil {
		return nil, err
	}

	resp := &primary.SplitFleetResponse{SourceID: req.FleetID}
	var sourcePlan, splitPlan effects.PersistEffect
	var changes []fieldChange

	err = dbal.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		source, err := fleet.Load(ctx, tx, s.catalog, req.FleetID, dbal.LockForUpdate)
		if err != nil {
			return err
		}
		before := source.Row()

		group := before.Group
		if group == "" {
			group = s.newGroup()
			source.SetGroup(group)
		}

		split := fleet.New(tx, s.catalog)
		split.SetOwner(before.OwnerID)
		split.SetTargetOwner(before.TargetOwner)
		split.SetMission(before.Mission)
		split.SetGroup(group)
		split.SetCreatedAt(s.now().Unix())
		split.SetDeparture(before.Start(), before.StartPlanetID, before.StartTime)
		split.SetArrival(before.End(), before.EndPlanetID, before.EndTime, before.EndStay)

		for _, d := range req.Ships {
			if err := source.ChangeShipCount(d.ShipID, -d.Delta); err != nil {
				return err
			}
			if err := split.ChangeShipCount(d.ShipID, d.Delta); err != nil {
				return err
			}
		}
		for _, d := range cargo {
			if err := source.ChangeResource(d.kind, d.delta.Neg()); err != nil {
				return err
			}
			if err := split.ChangeResource(d.kind, d.delta); err != nil {
				return err
			}
		}

		guard := corefleet.CanCreateFleet(corefleet.CreateFleetContext{
			ShipCount: split.ShipCount(),
			Cargo:     split.Resources().Total(),
			Capacity:  split.NominalCapacity(),
		})
		if err := guard.Error(); err != nil {
			return err
		}

		if splitPlan, err = split.Persist(ctx); err != nil {
			return err
		}
		after := source.Row()
		if sourcePlan, err = source.Persist(ctx); err != nil {
			return err
		}

		changes = diffRows(before, after)
		resp.NewFleetID = split.ID()
		resp.Group = group
		resp.SourceDeleted = !source.Bound()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterPersist(ctx, splitPlan, nil)
	s.afterPersist(ctx, sourcePlan, changes)
	return resp, nil
}

// afterPersist runs the persist notice and writes the audit log for a committed write.
// Failures here are logged and do not undo the committed change.
func (s *FleetServiceImpl) afterPersist(ctx context.Context, plan effects.PersistEffect, changes []fieldChange) {
	logger := logging.WithActor(ctx, s.logger)

	notice := corefleet.PersistNotice(plan)
	if err := s.executor.Execute(ctx, []effects.Effect{plan, notice}); err != nil {
		logger.Warn().Err(err).Int64("fleet_id", plan.ID).Msg("failed to execute fleet effects")
	}

	if s.logWriter == nil {
		return
	}

	var err error
	switch plan.Operation {
	case effects.OpInsert:
		err = s.logWriter.LogCreate(ctx, plan.ID)
	case effects.OpDelete:
		err = s.logWriter.LogDelete(ctx, plan.ID)
	case effects.OpUpdate:
		for _, c := range changes {
			if err = s.logWriter.LogUpdate(ctx, plan.ID, c.field, c.old, c.new); err != nil {
				break
			}
		}
	}
	if err != nil {
		logger.Warn().Err(err).Int64("fleet_id", plan.ID).Msg("failed to write fleet audit log")
	}
}

// toFleet converts a hydrated record to its port representation.
func (s *FleetServiceImpl) toFleet(rec *fleet.Record) *primary.Fleet {
	row := rec.Row()
	ledger := rec.Resources()
	ships := rec.ShipList()

	f := &primary.Fleet{
		ID:            row.ID,
		OwnerID:       row.OwnerID,
		TargetOwnerID: row.TargetOwner,
		Mission:       row.Mission.String(),
		Group:         row.Group,
		Start:         row.Start().String(),
		End:           row.End().String(),
		DepartAt:      row.StartTime,
		ArriveAt:      row.EndTime,
		Stay:          row.EndStay,
		ShipCount:     rec.ShipCount(),
		Metal:         ledger.Metal,
		Crystal:       ledger.Crystal,
		Deuterium:     ledger.Deuterium,
		Capacity:      rec.Capacity(),
		CostInMetal:   rec.CostInMetal(),
	}
	for _, id := range slices.Sorted(maps.Keys(ships)) {
		entry := primary.FleetShips{ShipID: id, Count: ships[id]}
		if info, ok := s.catalog.Info(id); ok {
			entry.Name = info.Name
		}
		f.Ships = append(f.Ships, entry)
	}
	return f
}

// diffRows lists the manifest and cargo columns that differ between two rows.
func diffRows(before, after models.FleetRow) []fieldChange {
	var changes []fieldChange
	add := func(field, old, new string) {
		if old != new {
			changes = append(changes, fieldChange{field: field, old: old, new: new})
		}
	}
	add(models.ColArray, before.Array, after.Array)
	add(models.ColResourceMetal, before.ResourceMetal.String(), after.ResourceMetal.String())
	add(models.ColResourceCrystal, before.ResourceCrystal.String(), after.ResourceCrystal.String())
	add(models.ColResourceDeuterium, before.ResourceDeuterium.String(), after.ResourceDeuterium.String())
	add(models.ColGroup, before.Group, after.Group)
	return changes
}

// Ensure FleetServiceImpl implements the interface
var _ primary.FleetService = (*FleetServiceImpl)(nil)
