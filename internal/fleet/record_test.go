package fleet_test

import (
	"context"
	"errors"
	"maps"
	"math"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/core/effects"
	corefleet "github.com/example/armada/internal/core/fleet"
	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/fleet"
	"github.com/example/armada/internal/manifest"
	"github.com/example/armada/internal/models"
)

func TestLoadHydratesManifestAndLedger(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 3, 204: 5}, 1200)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if rec.ID() != id {
		t.Errorf("ID() = %d, want %d", rec.ID(), id)
	}
	if got := rec.ShipCount(); got != 8 {
		t.Errorf("ShipCount() = %v, want 8", got)
	}
	if !maps.Equal(rec.ShipList(), map[int]float64{202: 3, 204: 5}) {
		t.Errorf("ShipList() = %v", rec.ShipList())
	}
	if !rec.Resources().Metal.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("metal = %s, want 1200", rec.Resources().Metal)
	}
	if !rec.Resources().Crystal.IsZero() {
		t.Errorf("crystal = %s, want 0", rec.Resources().Crystal)
	}
}

func TestLoadNotFound(t *testing.T) {
	testDB := setupTestDB(t)

	rec, err := fleet.Load(context.Background(), testDB, testCatalog(), 999, dbal.LockForUpdate)
	if !errors.Is(err, dbal.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if rec != nil {
		t.Error("expected no record for a missing fleet")
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 1}, 0)
	if _, err := testDB.Exec("UPDATE fleets SET fleet_array = 'garbage' WHERE fleet_id = ?", id); err != nil {
		t.Fatalf("failed to corrupt manifest: %v", err)
	}

	_, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if !errors.Is(err, manifest.ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestLoadUnderLockInTransaction(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 3}, 0)

	err := dbal.InTx(ctx, testDB, func(tx *sqlx.Tx) error {
		rec, err := fleet.Load(ctx, tx, testCatalog(), id, dbal.LockForUpdate)
		if err != nil {
			return err
		}
		if err := rec.ChangeShipCount(202, 2); err != nil {
			return err
		}
		return rec.Update(ctx)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	fields, err := fleet.FindRecordByID(ctx, testDB, id)
	if err != nil {
		t.Fatalf("FindRecordByID failed: %v", err)
	}
	if fields[models.ColArray] != "202,5" {
		t.Errorf("fleet_array = %v, want 202,5", fields[models.ColArray])
	}
}

func TestChangeShipCountToZeroDeletesOnPersist(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{204: 5}, 0)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := rec.ShipCount(); got != 5 {
		t.Fatalf("ShipCount() = %v, want 5", got)
	}

	if err := rec.ChangeShipCount(204, -5); err != nil {
		t.Fatalf("ChangeShipCount failed: %v", err)
	}
	if len(rec.ShipList()) != 0 {
		t.Errorf("expected empty manifest, got %v", rec.ShipList())
	}
	if rec.ShipCount() != 0 {
		t.Errorf("ShipCount() = %v, want 0", rec.ShipCount())
	}

	plan, err := rec.Persist(ctx)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if plan.Operation != effects.OpDelete {
		t.Errorf("Operation = %q, want delete", plan.Operation)
	}
	if rec.Bound() {
		t.Error("deleted fleet should be unbound")
	}

	if _, err := fleet.FindRecordByID(ctx, testDB, id); !errors.Is(err, dbal.ErrNotFound) {
		t.Errorf("expected row to be gone, got %v", err)
	}
	if err := rec.ChangeShipCount(204, 1); !errors.Is(err, dbal.ErrNotBound) {
		t.Errorf("expected ErrNotBound after delete, got %v", err)
	}
	if _, err := rec.AsFlatFields(); !errors.Is(err, dbal.ErrNotBound) {
		t.Errorf("expected ErrNotBound from AsFlatFields, got %v", err)
	}
}

func TestEmptyFleetDeletedRegardlessOfCargo(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 1}, 3000)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := rec.ChangeShipCount(202, -1); err != nil {
		t.Fatalf("ChangeShipCount failed: %v", err)
	}
	if err := rec.Update(ctx); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if _, err := fleet.FindRecordByID(ctx, testDB, id); !errors.Is(err, dbal.ErrNotFound) {
		t.Errorf("expected row to be deleted, got %v", err)
	}
}

func TestChangeShipCountInsufficient(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 3}, 0)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	before, _ := rec.AsFlatFields()

	err = rec.ChangeShipCount(202, -10)
	if !errors.Is(err, corefleet.ErrInsufficientShips) {
		t.Fatalf("expected ErrInsufficientShips, got %v", err)
	}

	if !maps.Equal(rec.ShipList(), map[int]float64{202: 3}) {
		t.Errorf("manifest changed on rejection: %v", rec.ShipList())
	}
	after, _ := rec.AsFlatFields()
	if !maps.Equal(before, after) {
		t.Errorf("fields changed on rejection:\nbefore %v\nafter  %v", before, after)
	}
}

func TestChangeShipCountRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name  string
		delta float64
	}{
		{name: "NaN", delta: math.NaN()},
		{name: "positive infinity", delta: math.Inf(1)},
		{name: "negative infinity", delta: math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			testDB := setupTestDB(t)
			id := seedFleet(t, testDB, map[int]float64{202: 3}, 0)

			rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			err = rec.ChangeShipCount(202, tt.delta)
			if !errors.Is(err, corefleet.ErrInvalidShipCount) {
				t.Fatalf("expected ErrInvalidShipCount, got %v", err)
			}
			if !maps.Equal(rec.ShipList(), map[int]float64{202: 3}) {
				t.Errorf("manifest changed on rejection: %v", rec.ShipList())
			}
			row := rec.Row()
			if row.Array != "202,3" || row.Amount != 3 {
				t.Errorf("row = %q/%v, want 202,3/3", row.Array, row.Amount)
			}
			if got := rec.Capacity(); !got.Equal(decimal.NewFromInt(15000)) {
				t.Errorf("Capacity() = %s, want 15000", got)
			}
		})
	}
}

func TestLoadNonFiniteManifest(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 1}, 0)
	if _, err := testDB.Exec("UPDATE fleets SET fleet_array = '202,Inf' WHERE fleet_id = ?", id); err != nil {
		t.Fatalf("failed to store manifest: %v", err)
	}

	_, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if !errors.Is(err, manifest.ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestChangeShipCountKeepsRowInSync(t *testing.T) {
	rec := fleet.New(setupTestDB(t), testCatalog())

	if err := rec.ChangeShipCount(204, 5); err != nil {
		t.Fatalf("ChangeShipCount failed: %v", err)
	}
	if err := rec.ChangeShipCount(202, 3); err != nil {
		t.Fatalf("ChangeShipCount failed: %v", err)
	}
	if err := rec.ChangeShipCount(204, -2); err != nil {
		t.Fatalf("ChangeShipCount failed: %v", err)
	}

	row := rec.Row()
	if row.Array != "202,3;204,3" {
		t.Errorf("Array = %q, want 202,3;204,3", row.Array)
	}
	if row.Amount != 6 {
		t.Errorf("Amount = %v, want 6", row.Amount)
	}
}

func TestSparseManifestEquivalence(t *testing.T) {
	testDB := setupTestDB(t)
	cat := testCatalog()

	touched := fleet.New(testDB, cat)
	if err := touched.ChangeShipCount(203, 2); err != nil {
		t.Fatal(err)
	}
	if err := touched.ChangeShipCount(204, 4); err != nil {
		t.Fatal(err)
	}
	if err := touched.ChangeShipCount(204, -4); err != nil {
		t.Fatal(err)
	}

	untouched := fleet.New(testDB, cat)
	if err := untouched.ChangeShipCount(203, 2); err != nil {
		t.Fatal(err)
	}

	if !maps.Equal(touched.ShipList(), untouched.ShipList()) {
		t.Errorf("manifests differ: %v vs %v", touched.ShipList(), untouched.ShipList())
	}
	if touched.Row().Array != untouched.Row().Array {
		t.Errorf("encoded manifests differ: %q vs %q", touched.Row().Array, untouched.Row().Array)
	}
	if touched.CostInMetal() != untouched.CostInMetal() || !touched.Capacity().Equal(untouched.Capacity()) {
		t.Error("derived values differ")
	}
}

func TestChangeResource(t *testing.T) {
	tests := []struct {
		name    string
		kind    corefleet.Resource
		delta   decimal.Decimal
		wantErr error
		want    corefleet.Ledger
	}{
		{
			name:  "load metal",
			kind:  corefleet.Metal,
			delta: decimal.NewFromInt(4000),
			want:  corefleet.Ledger{Metal: decimal.NewFromInt(4000)},
		},
		{
			name:    "unload deuterium from empty ledger",
			kind:    corefleet.Deuterium,
			delta:   decimal.NewFromInt(-50),
			wantErr: corefleet.ErrInsufficientResource,
		},
		{
			name:  "unknown kind is ignored",
			kind:  corefleet.Resource(99),
			delta: decimal.NewFromInt(10),
		},
		{
			name:  "zero delta is ignored",
			kind:  corefleet.Crystal,
			delta: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := fleet.New(setupTestDB(t), testCatalog())
			if err := rec.ChangeShipCount(202, 1); err != nil {
				t.Fatal(err)
			}

			err := rec.ChangeResource(tt.kind, tt.delta)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("ChangeResource failed: %v", err)
			}

			if !rec.Resources().Equal(tt.want) {
				t.Errorf("Resources() = %+v, want %+v", rec.Resources(), tt.want)
			}
			row := rec.Row()
			if !row.ResourceMetal.Equal(tt.want.Metal) || !row.ResourceDeuterium.Equal(tt.want.Deuterium) {
				t.Errorf("row resources not mirrored: metal %s deuterium %s", row.ResourceMetal, row.ResourceDeuterium)
			}
		})
	}
}

func TestCapacityScenario(t *testing.T) {
	rec := fleet.New(setupTestDB(t), testCatalog())
	if err := rec.ChangeShipCount(202, 3); err != nil {
		t.Fatal(err)
	}

	if got := rec.Capacity(); !got.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("Capacity() = %s, want 15000", got)
	}
	if err := rec.ChangeResource(corefleet.Metal, decimal.NewFromInt(4000)); err != nil {
		t.Fatal(err)
	}
	if got := rec.Capacity(); !got.Equal(decimal.NewFromInt(11000)) {
		t.Errorf("Capacity() = %s, want 11000", got)
	}
	if got := rec.NominalCapacity(); !got.Equal(decimal.NewFromInt(15000)) {
		t.Errorf("NominalCapacity() = %s, want 15000", got)
	}
}

func TestCapacityFloorsAtZero(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{204: 1}, 10000)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := rec.Capacity(); !got.IsZero() {
		t.Errorf("Capacity() = %s, want 0", got)
	}
}

func TestCostInMetal(t *testing.T) {
	rec := fleet.New(setupTestDB(t), testCatalog())
	for id, n := range map[int]float64{202: 2, 204: 1, 999: 7} {
		if err := rec.ChangeShipCount(id, n); err != nil {
			t.Fatal(err)
		}
	}

	if got := rec.CostInMetal(); got != 17000 {
		t.Errorf("CostInMetal() = %v, want 17000", got)
	}
	if got := rec.ShipCostInMetal(999); got != 0 {
		t.Errorf("ShipCostInMetal(999) = %v, want 0", got)
	}
	if got := rec.ShipCapacity(203); got != 25000 {
		t.Errorf("ShipCapacity(203) = %v, want 25000", got)
	}
}

func TestNewFleetPersist(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)

	empty := fleet.New(testDB, testCatalog())
	plan, err := empty.Persist(ctx)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if plan.Operation != effects.OpSkip {
		t.Errorf("empty new fleet Operation = %q, want skip", plan.Operation)
	}

	rec := fleet.New(testDB, testCatalog())
	rec.SetOwner(9)
	rec.SetMission(models.MissionColonize)
	rec.SetDeparture(models.Coordinates{Galaxy: 1, System: 2, Planet: 3, Type: models.PlanetTypePlanet}, 11, 1000)
	rec.SetArrival(models.Coordinates{Galaxy: 1, System: 2, Planet: 9, Type: models.PlanetTypePlanet}, 0, 2000, 60)
	if err := rec.ChangeShipCount(208, 1); err != nil {
		t.Fatal(err)
	}

	plan, err = rec.Persist(ctx)
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if plan.Operation != effects.OpInsert || plan.ID == 0 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if rec.ID() != plan.ID {
		t.Errorf("ID() = %d, want %d", rec.ID(), plan.ID)
	}

	loaded, err := fleet.Load(ctx, testDB, testCatalog(), plan.ID, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	row := loaded.Row()
	if row.OwnerID != 9 || row.Mission != models.MissionColonize || row.EndStay != 60 {
		t.Errorf("metadata not stored: %+v", row)
	}
	if row.End().Planet != 9 || row.StartPlanetID != 11 {
		t.Errorf("route not stored: start %v end %v", row.Start(), row.End())
	}
}

func TestFlushThenReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 2}, 0)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := rec.ChangeShipCount(206, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := rec.ChangeResource(corefleet.Crystal, decimal.RequireFromString("1234.5678")); err != nil {
		t.Fatal(err)
	}
	if err := rec.ChangeResource(corefleet.Deuterium, decimal.NewFromInt(77)); err != nil {
		t.Fatal(err)
	}
	if err := rec.Update(ctx); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if !maps.Equal(reloaded.ShipList(), rec.ShipList()) {
		t.Errorf("manifest = %v, want %v", reloaded.ShipList(), rec.ShipList())
	}
	if !reloaded.Resources().Equal(rec.Resources()) {
		t.Errorf("ledger = %+v, want %+v", reloaded.Resources(), rec.Resources())
	}
	if reloaded.ShipCount() != 2.5 {
		t.Errorf("ShipCount() = %v, want 2.5", reloaded.ShipCount())
	}
}

func TestHighPrecisionResourcesSurviveReload(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{203: 1}, 0)

	rec, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := decimal.RequireFromString("12345678901234567890.123456789")
	if err := rec.ChangeResource(corefleet.Metal, want); err != nil {
		t.Fatal(err)
	}
	if err := rec.Update(ctx); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	reloaded, err := fleet.Load(ctx, testDB, testCatalog(), id, dbal.LockNone)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if got := reloaded.Resources().Get(corefleet.Metal); !got.Equal(want) {
		t.Errorf("metal = %s, want %s", got, want)
	}
}

func TestFromRow(t *testing.T) {
	row := &models.FleetRow{ID: 5, Array: "203,4", ResourceMetal: decimal.NewFromInt(100)}

	rec, err := fleet.FromRow(context.Background(), setupTestDB(t), testCatalog(), row)
	if err != nil {
		t.Fatalf("FromRow failed: %v", err)
	}
	if rec.ID() != 5 || rec.Ships(203) != 4 {
		t.Errorf("unexpected record id %d ships %v", rec.ID(), rec.ShipList())
	}
	if got := rec.Capacity(); !got.Equal(decimal.NewFromInt(99900)) {
		t.Errorf("Capacity() = %s, want 99900", got)
	}
}

func TestFindRecordByID(t *testing.T) {
	ctx := context.Background()
	testDB := setupTestDB(t)
	id := seedFleet(t, testDB, map[int]float64{202: 3}, 250)

	fields, err := fleet.FindRecordByID(ctx, testDB, id)
	if err != nil {
		t.Fatalf("FindRecordByID failed: %v", err)
	}
	if fields[models.ColFleetID] != id {
		t.Errorf("fleet_id = %v, want %d", fields[models.ColFleetID], id)
	}
	if fields[models.ColResourceMetal] != "250" {
		t.Errorf("fleet_resource_metal = %v, want 250", fields[models.ColResourceMetal])
	}
	if fields[models.ColAmount] != float64(3) {
		t.Errorf("fleet_amount = %v, want 3", fields[models.ColAmount])
	}
}
