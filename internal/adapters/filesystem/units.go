// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/example/armada/internal/ports/secondary"
)

//go:embed units.toml
var defaultUnits []byte

var (
	// ErrUnknownUnit is returned for a unit ID missing from the catalog.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrUnknownGroup is returned for a group name missing from the catalog.
	ErrUnknownGroup = errors.New("unknown unit group")
)

type unitFile struct {
	Groups map[string][]int `toml:"groups"`
	Units  []unitEntry      `toml:"unit"`
}

type unitEntry struct {
	ID       int    `toml:"id"`
	Name     string `toml:"name"`
	Capacity int64  `toml:"capacity"`
	Cost     struct {
		Metal     int64 `toml:"metal"`
		Crystal   int64 `toml:"crystal"`
		Deuterium int64 `toml:"deuterium"`
	} `toml:"cost"`
}

// UnitCatalog implements secondary.UnitSource from a TOML unit file.
type UnitCatalog struct {
	groups map[string][]int
	units  map[int]secondary.UnitParams
}

// NewUnitCatalog reads the unit file at path. An empty path loads the built-in catalog.
func NewUnitCatalog(path string) (*UnitCatalog, error) {
	data := defaultUnits
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read unit catalog: %w", err)
		}
	}
	return ParseUnitCatalog(data)
}

// ParseUnitCatalog parses unit file contents. Every grouped unit must be defined
// and unit IDs must be unique.
func ParseUnitCatalog(data []byte) (*UnitCatalog, error) {
	var file unitFile
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse unit catalog: %w", err)
	}

	c := &UnitCatalog{
		groups: file.Groups,
		units:  make(map[int]secondary.UnitParams, len(file.Units)),
	}
	for _, u := range file.Units {
		if _, dup := c.units[u.ID]; dup {
			return nil, fmt.Errorf("unit %d defined twice", u.ID)
		}
		if u.Capacity < 0 {
			return nil, fmt.Errorf("unit %d has negative capacity", u.ID)
		}
		c.units[u.ID] = secondary.UnitParams{
			ID:       u.ID,
			Name:     u.Name,
			Capacity: float64(u.Capacity),
			Cost: secondary.CostVector{
				Metal:     float64(u.Cost.Metal),
				Crystal:   float64(u.Cost.Crystal),
				Deuterium: float64(u.Cost.Deuterium),
			},
		}
	}

	for name, ids := range c.groups {
		for _, id := range ids {
			if _, ok := c.units[id]; !ok {
				return nil, fmt.Errorf("group %q: %w %d", name, ErrUnknownUnit, id)
			}
		}
	}

	return c, nil
}

// UnitGroup returns the unit IDs in the named group, sorted.
func (c *UnitCatalog) UnitGroup(ctx context.Context, group string) ([]int, error) {
	ids, ok := c.groups[group]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGroup, group)
	}
	return slices.Sorted(slices.Values(ids)), nil
}

// UnitParams returns the parameters of one unit.
func (c *UnitCatalog) UnitParams(ctx context.Context, id int) (secondary.UnitParams, error) {
	p, ok := c.units[id]
	if !ok {
		return secondary.UnitParams{}, fmt.Errorf("%w %d", ErrUnknownUnit, id)
	}
	return p, nil
}

// Ensure UnitCatalog implements the interface
var _ secondary.UnitSource = (*UnitCatalog)(nil)
