package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/catalog"
	"github.com/example/armada/internal/db"
	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/manifest"
	"github.com/example/armada/internal/models"
	"github.com/example/armada/internal/ports/secondary"
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
		catalog.ShipInfo{ID: 202, Name: "Small Cargo", Capacity: 5000, Cost: secondary.CostVector{Metal: 2000, Crystal: 2000}, CostInMetal: 6000},
		catalog.ShipInfo{ID: 203, Name: "Large Cargo", Capacity: 25000, Cost: secondary.CostVector{Metal: 6000, Crystal: 6000}, CostInMetal: 18000},
		catalog.ShipInfo{ID: 204, Name: "Light Fighter", Capacity: 50, Cost: secondary.CostVector{Metal: 3000, Crystal: 1000}, CostInMetal: 5000},
	)
}

// seedFleet inserts a transport fleet with the given ships and metal and returns its ID.
func seedFleet(t *testing.T, q sqlx.ExtContext, ships map[int]float64, metal int64) int64 {
	t.Helper()

	row := &models.FleetRow{
		OwnerID:       1,
		Mission:       models.MissionTransport,
		Array:         manifest.Encode(ships),
		ResourceMetal: decimal.NewFromInt(metal),
		StartGalaxy:   1,
		StartSystem:   100,
		StartPlanet:   4,
		StartType:     models.PlanetTypePlanet,
		EndGalaxy:     1,
		EndSystem:     120,
		EndPlanet:     7,
		EndType:       models.PlanetTypePlanet,
		StartTime:     1000,
		EndTime:       2000,
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

// logCall records one LogWriter invocation.
type logCall struct {
	action  string
	fleetID int64
	field   string
	old     string
	new     string
}

// mockLogWriter implements secondary.LogWriter for testing.
type mockLogWriter struct {
	mu    sync.Mutex
	calls []logCall
	err   error
}

func (m *mockLogWriter) record(c logCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
	return m.err
}

func (m *mockLogWriter) LogCreate(ctx context.Context, fleetID int64) error {
	return m.record(logCall{action: "create", fleetID: fleetID})
}

func (m *mockLogWriter) LogUpdate(ctx context.Context, fleetID int64, field, oldValue, newValue string) error {
	return m.record(logCall{action: "update", fleetID: fleetID, field: field, old: oldValue, new: newValue})
}

func (m *mockLogWriter) LogDelete(ctx context.Context, fleetID int64) error {
	return m.record(logCall{action: "delete", fleetID: fleetID})
}

func (m *mockLogWriter) actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.action
	}
	return out
}

// Ensure mockLogWriter implements the interface
var _ secondary.LogWriter = (*mockLogWriter)(nil)

// mockFleetLogRepository implements secondary.FleetLogRepository for testing.
type mockFleetLogRepository struct {
	logs       []*secondary.FleetLogRecord
	lastFilter secondary.FleetLogFilters
	pruneDays  int
	pruned     int
	err        error
}

func (m *mockFleetLogRepository) Create(ctx context.Context, log *secondary.FleetLogRecord) error {
	if m.err != nil {
		return m.err
	}
	log.ID = int64(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockFleetLogRepository) List(ctx context.Context, filters secondary.FleetLogFilters) ([]*secondary.FleetLogRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = filters
	var result []*secondary.FleetLogRecord
	for _, l := range m.logs {
		if filters.FleetID != 0 && l.FleetID != filters.FleetID {
			continue
		}
		if filters.Action != "" && l.Action != filters.Action {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (m *mockFleetLogRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	m.pruneDays = days
	return m.pruned, m.err
}

// Ensure mockFleetLogRepository implements the interface
var _ secondary.FleetLogRepository = (*mockFleetLogRepository)(nil)

// stubFleetRepository implements secondary.FleetRepository over canned rows.
type stubFleetRepository struct {
	rows       []*models.FleetRow
	lastFilter secondary.FleetFilters
}

func (s *stubFleetRepository) FindRecordByID(ctx context.Context, id int64) (map[string]any, error) {
	for _, r := range s.rows {
		if r.ID == id {
			return r.Fields(), nil
		}
	}
	return nil, dbal.ErrNotFound
}

func (s *stubFleetRepository) List(ctx context.Context, filters secondary.FleetFilters) ([]*models.FleetRow, error) {
	s.lastFilter = filters
	return s.rows, nil
}

func (s *stubFleetRepository) CountByGroup(ctx context.Context, group string) (int, error) {
	n := 0
	for _, r := range s.rows {
		if r.Group == group {
			n++
		}
	}
	return n, nil
}

// newTestFleetService wires a FleetServiceImpl over an in-memory database.
func newTestFleetService(t *testing.T) (*FleetServiceImpl, *sqlx.DB, *mockLogWriter) {
	t.Helper()

	testDB := setupTestDB(t)
	logWriter := &mockLogWriter{}
	svc := NewFleetService(testDB, &stubFleetRepository{}, testCatalog(), logWriter, NewEffectExecutor(zerolog.Nop()), zerolog.Nop())
	svc.now = func() time.Time { return time.Unix(5000, 0) }
	svc.newGroup = func() string { return "group-1" }
	return svc, testDB, logWriter
}
