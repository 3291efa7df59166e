package fleet_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/catalog"
	"github.com/example/armada/internal/db"
	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/manifest"
	"github.com/example/armada/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	testDB, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// testCatalog returns a catalog with the ships used in tests.
func testCatalog() *catalog.Catalog {
	return catalog.NewStatic(
		catalog.ShipInfo{ID: 202, Name: "Small Cargo", Capacity: 5000, CostInMetal: 6000},
		catalog.ShipInfo{ID: 203, Name: "Large Cargo", Capacity: 25000, CostInMetal: 18000},
		catalog.ShipInfo{ID: 204, Name: "Light Fighter", Capacity: 50, CostInMetal: 5000},
	)
}

// seedFleet inserts a fleet row with the given ships and metal and returns its ID.
func seedFleet(t *testing.T, q sqlx.ExtContext, ships map[int]float64, metal int64) int64 {
	t.Helper()

	row := &models.FleetRow{
		OwnerID:       1,
		Mission:       models.MissionTransport,
		Array:         manifest.Encode(ships),
		ResourceMetal: decimal.NewFromInt(metal),
		StartType:     models.PlanetTypePlanet,
		EndType:       models.PlanetTypePlanet,
	}
	for _, n := range ships {
		row.Amount += n
	}

	id, err := dbal.InsertRow(context.Background(), q, models.FleetTable, row)
	if err != nil {
		t.Fatalf("failed to seed fleet: %v", err)
	}
	return id
}
