package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/dbal"
	"github.com/example/armada/internal/manifest"
	"github.com/example/armada/internal/models"
)

// SeedFixtures populates the database with development fleets covering stationed,
// transporting and grouped fleets. It returns the IDs of the inserted rows.
func SeedFixtures(ctx context.Context, q sqlx.ExtContext) ([]int64, error) {
	now := time.Now().Unix()
	home := models.Coordinates{Galaxy: 1, System: 42, Planet: 7, Type: models.PlanetTypePlanet}
	moon := models.Coordinates{Galaxy: 1, System: 42, Planet: 7, Type: models.PlanetTypeMoon}
	target := models.Coordinates{Galaxy: 1, System: 108, Planet: 3, Type: models.PlanetTypePlanet}

	fixtures := []struct {
		owner   int64
		mission models.Mission
		ships   map[int]float64
		metal   int64
		crystal int64
		start   models.Coordinates
		end     models.Coordinates
		group   string
	}{
		{owner: 1, mission: models.MissionTransport, ships: map[int]float64{202: 3}, metal: 4000, crystal: 2500, start: home, end: target},
		{owner: 1, mission: models.MissionRelocate, ships: map[int]float64{203: 2, 210: 1}, start: home, end: moon},
		{owner: 2, mission: models.MissionAttack, ships: map[int]float64{204: 25, 206: 4, 202: 2}, start: target, end: home, group: "seed-acs"},
		{owner: 3, mission: models.MissionAttack, ships: map[int]float64{207: 6}, start: target, end: home, group: "seed-acs"},
	}

	ids := make([]int64, 0, len(fixtures))
	for _, f := range fixtures {
		row := &models.FleetRow{
			OwnerID:         f.owner,
			Mission:         f.mission,
			Array:           manifest.Encode(f.ships),
			Group:           f.group,
			CreatedAt:       now,
			StartTime:       now,
			EndTime:         now + 3600,
			ResourceMetal:   decimal.NewFromInt(f.metal),
			ResourceCrystal: decimal.NewFromInt(f.crystal),
		}
		for _, n := range f.ships {
			row.Amount += n
		}
		row.SetStart(f.start)
		row.SetEnd(f.end)

		id, err := dbal.InsertRow(ctx, q, models.FleetTable, row)
		if err != nil {
			return ids, fmt.Errorf("seed fleets: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
