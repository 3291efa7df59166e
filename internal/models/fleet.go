// Package models contains the typed rows and value types for armada entities.
package models

import (
	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/dbal"
)

// Fleet column names.
const (
	ColFleetID           = "fleet_id"
	ColOwner             = "fleet_owner"
	ColMission           = "fleet_mission"
	ColAmount            = "fleet_amount"
	ColArray             = "fleet_array"
	ColStartTime         = "fleet_start_time"
	ColStartPlanetID     = "fleet_start_planet_id"
	ColStartGalaxy       = "fleet_start_galaxy"
	ColStartSystem       = "fleet_start_system"
	ColStartPlanet       = "fleet_start_planet"
	ColStartType         = "fleet_start_type"
	ColEndTime           = "fleet_end_time"
	ColEndStay           = "fleet_end_stay"
	ColEndPlanetID       = "fleet_end_planet_id"
	ColEndGalaxy         = "fleet_end_galaxy"
	ColEndSystem         = "fleet_end_system"
	ColEndPlanet         = "fleet_end_planet"
	ColEndType           = "fleet_end_type"
	ColResourceMetal     = "fleet_resource_metal"
	ColResourceCrystal   = "fleet_resource_crystal"
	ColResourceDeuterium = "fleet_resource_deuterium"
	ColTargetOwner       = "fleet_target_owner"
	ColGroup             = "fleet_group"
	ColMess              = "fleet_mess"
	ColCreatedAt         = "start_time"
)

// FleetTable is the layout of the fleets table.
var FleetTable = dbal.Table{
	Name:       "fleets",
	PrimaryKey: ColFleetID,
	Columns: []string{
		ColFleetID, ColOwner, ColMission, ColAmount, ColArray,
		ColStartTime, ColStartPlanetID, ColStartGalaxy, ColStartSystem, ColStartPlanet, ColStartType,
		ColEndTime, ColEndStay, ColEndPlanetID, ColEndGalaxy, ColEndSystem, ColEndPlanet, ColEndType,
		ColResourceMetal, ColResourceCrystal, ColResourceDeuterium,
		ColTargetOwner, ColGroup, ColMess, ColCreatedAt,
	},
}

// FleetRow is a fleets row as stored. Array holds the encoded ship manifest and
// Amount the total ship count derived from it.
type FleetRow struct {
	ID          int64   `db:"fleet_id"`
	OwnerID     int64   `db:"fleet_owner"`
	Mission     Mission `db:"fleet_mission"`
	Amount      float64 `db:"fleet_amount"`
	Array       string  `db:"fleet_array"`
	TargetOwner int64   `db:"fleet_target_owner"`
	Group       string  `db:"fleet_group"`
	Mess        int     `db:"fleet_mess"`
	CreatedAt   int64   `db:"start_time"`

	StartTime     int64      `db:"fleet_start_time"`
	StartPlanetID int64      `db:"fleet_start_planet_id"`
	StartGalaxy   int        `db:"fleet_start_galaxy"`
	StartSystem   int        `db:"fleet_start_system"`
	StartPlanet   int        `db:"fleet_start_planet"`
	StartType     PlanetType `db:"fleet_start_type"`

	EndTime     int64      `db:"fleet_end_time"`
	EndStay     int64      `db:"fleet_end_stay"`
	EndPlanetID int64      `db:"fleet_end_planet_id"`
	EndGalaxy   int        `db:"fleet_end_galaxy"`
	EndSystem   int        `db:"fleet_end_system"`
	EndPlanet   int        `db:"fleet_end_planet"`
	EndType     PlanetType `db:"fleet_end_type"`

	ResourceMetal     decimal.Decimal `db:"fleet_resource_metal"`
	ResourceCrystal   decimal.Decimal `db:"fleet_resource_crystal"`
	ResourceDeuterium decimal.Decimal `db:"fleet_resource_deuterium"`
}

// PrimaryKey implements dbal.Record.
func (r *FleetRow) PrimaryKey() int64 { return r.ID }

// SetPrimaryKey implements dbal.Record.
func (r *FleetRow) SetPrimaryKey(id int64) { r.ID = id }

// Start returns the departure coordinates.
func (r *FleetRow) Start() Coordinates {
	return Coordinates{Galaxy: r.StartGalaxy, System: r.StartSystem, Planet: r.StartPlanet, Type: r.StartType}
}

// End returns the destination coordinates.
func (r *FleetRow) End() Coordinates {
	return Coordinates{Galaxy: r.EndGalaxy, System: r.EndSystem, Planet: r.EndPlanet, Type: r.EndType}
}

// SetStart sets the departure coordinates.
func (r *FleetRow) SetStart(c Coordinates) {
	r.StartGalaxy, r.StartSystem, r.StartPlanet, r.StartType = c.Galaxy, c.System, c.Planet, c.Type
}

// SetEnd sets the destination coordinates.
func (r *FleetRow) SetEnd(c Coordinates) {
	r.EndGalaxy, r.EndSystem, r.EndPlanet, r.EndType = c.Galaxy, c.System, c.Planet, c.Type
}

// Fields implements dbal.Record. Values are driver-ready: decimals are written as
// their exact string form and enums as plain ints.
func (r *FleetRow) Fields() map[string]any {
	return map[string]any{
		ColFleetID:           r.ID,
		ColOwner:             r.OwnerID,
		ColMission:           int(r.Mission),
		ColAmount:            r.Amount,
		ColArray:             r.Array,
		ColStartTime:         r.StartTime,
		ColStartPlanetID:     r.StartPlanetID,
		ColStartGalaxy:       r.StartGalaxy,
		ColStartSystem:       r.StartSystem,
		ColStartPlanet:       r.StartPlanet,
		ColStartType:         int(r.StartType),
		ColEndTime:           r.EndTime,
		ColEndStay:           r.EndStay,
		ColEndPlanetID:       r.EndPlanetID,
		ColEndGalaxy:         r.EndGalaxy,
		ColEndSystem:         r.EndSystem,
		ColEndPlanet:         r.EndPlanet,
		ColEndType:           int(r.EndType),
		ColResourceMetal:     r.ResourceMetal.String(),
		ColResourceCrystal:   r.ResourceCrystal.String(),
		ColResourceDeuterium: r.ResourceDeuterium.String(),
		ColTargetOwner:       r.TargetOwner,
		ColGroup:             r.Group,
		ColMess:              r.Mess,
		ColCreatedAt:         r.CreatedAt,
	}
}
