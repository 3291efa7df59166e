// Package sqldb_test contains integration tests for the sqlx repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the same schema the
// migrations create.
package sqldb_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

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

// newFleetRow builds an unsaved fleet row.
func newFleetRow(owner int64, mission models.Mission, group string, ships map[int]float64) *models.FleetRow {
	row := &models.FleetRow{
		OwnerID:       owner,
		Mission:       mission,
		Group:         group,
		Array:         manifest.Encode(ships),
		ResourceMetal: decimal.Zero,
		StartType:     models.PlanetTypePlanet,
		EndType:       models.PlanetTypePlanet,
	}
	for _, n := range ships {
		row.Amount += n
	}
	return row
}

func ptr[T any](v T) *T { return &v }


// insertFleet stores row and sets its generated ID.
func insertFleet(t *testing.T, q sqlx.ExtContext, row *models.FleetRow) {
	t.Helper()
	id, err := dbal.InsertRow(context.Background(), q, models.FleetTable, row)
	if err != nil {
		t.Fatalf("failed to insert fleet: %v", err)
	}
	row.ID = id
}
