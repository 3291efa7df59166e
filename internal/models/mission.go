package models

import (
	"fmt"
	"strconv"
)

// Mission is the opaque mission code stored in fleet_mission.
type Mission int

// Mission codes.
const (
	MissionNone      Mission = 0
	MissionAttack    Mission = 1
	MissionACS       Mission = 2
	MissionTransport Mission = 3
	MissionRelocate  Mission = 4
	MissionHold      Mission = 5
	MissionSpy       Mission = 6
	MissionColonize  Mission = 7
	MissionRecycle   Mission = 8
	MissionDestroy   Mission = 9
	MissionMissile   Mission = 10
	MissionExplore   Mission = 15
)

var missionNames = map[Mission]string{
	MissionNone:      "none",
	MissionAttack:    "attack",
	MissionACS:       "acs",
	MissionTransport: "transport",
	MissionRelocate:  "relocate",
	MissionHold:      "hold",
	MissionSpy:       "spy",
	MissionColonize:  "colonize",
	MissionRecycle:   "recycle",
	MissionDestroy:   "destroy",
	MissionMissile:   "missile",
	MissionExplore:   "explore",
}

func (m Mission) String() string {
	if name, ok := missionNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mission(%d)", int(m))
}

// ParseMission accepts a mission name or its numeric code.
func ParseMission(s string) (Mission, error) {
	for m, name := range missionNames {
		if name == s {
			return m, nil
		}
	}
	if code, err := strconv.Atoi(s); err == nil && code >= 0 {
		return Mission(code), nil
	}
	return MissionNone, fmt.Errorf("unknown mission %q", s)
}

// PlanetType distinguishes planets, debris fields and moons at one position.
type PlanetType int

// Planet types.
const (
	PlanetTypePlanet PlanetType = 1
	PlanetTypeDebris PlanetType = 2
	PlanetTypeMoon   PlanetType = 3
)

func (t PlanetType) String() string {
	switch t {
	case PlanetTypePlanet:
		return "planet"
	case PlanetTypeDebris:
		return "debris"
	case PlanetTypeMoon:
		return "moon"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Coordinates locate a body in the galaxy.
type Coordinates struct {
	Galaxy int
	System int
	Planet int
	Type   PlanetType
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%d:%d:%d] %s", c.Galaxy, c.System, c.Planet, c.Type)
}

// ParseCoordinates parses "g:s:p" or "g:s:p:t"; the type defaults to planet.
func ParseCoordinates(s string) (Coordinates, error) {
	c := Coordinates{Type: PlanetTypePlanet}
	var t int
	n, err := fmt.Sscanf(s, "%d:%d:%d:%d", &c.Galaxy, &c.System, &c.Planet, &t)
	switch {
	case n == 4:
		c.Type = PlanetType(t)
	case n == 3:
	default:
		return Coordinates{}, fmt.Errorf("invalid coordinates %q: %w", s, err)
	}
	if c.Galaxy < 1 || c.System < 1 || c.Planet < 1 {
		return Coordinates{}, fmt.Errorf("invalid coordinates %q: positions start at 1", s)
	}
	if c.Type < PlanetTypePlanet || c.Type > PlanetTypeMoon {
		return Coordinates{}, fmt.Errorf("invalid coordinates %q: unknown planet type %d", s, t)
	}
	return c, nil
}
