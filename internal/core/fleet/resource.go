// Package fleet contains the pure business logic for fleet records: the resource
// ledger, manifest arithmetic, mutation guards and the persist plan.
package fleet

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Resource is a kind of carried resource.
type Resource int

const (
	Metal Resource = iota + 1
	Crystal
	Deuterium
)

// Resources lists every recognized resource kind.
var Resources = []Resource{Metal, Crystal, Deuterium}

func (r Resource) String() string {
	switch r {
	case Metal:
		return "metal"
	case Crystal:
		return "crystal"
	case Deuterium:
		return "deuterium"
	default:
		return fmt.Sprintf("Resource(%d)", int(r))
	}
}

// Valid reports whether r is one of the three recognized kinds.
func (r Resource) Valid() bool {
	return r >= Metal && r <= Deuterium
}

// ParseResource parses a resource name. Unknown names yield an invalid Resource
// and an error.
func ParseResource(s string) (Resource, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "metal", "m":
		return Metal, nil
	case "crystal", "c":
		return Crystal, nil
	case "deuterium", "d":
		return Deuterium, nil
	default:
		return 0, fmt.Errorf("unknown resource %q", s)
	}
}

// Ledger holds the carried quantity of each resource.
type Ledger struct {
	Metal     decimal.Decimal
	Crystal   decimal.Decimal
	Deuterium decimal.Decimal
}

// Get returns the quantity of r, zero for unknown kinds.
func (l Ledger) Get(r Resource) decimal.Decimal {
	switch r {
	case Metal:
		return l.Metal
	case Crystal:
		return l.Crystal
	case Deuterium:
		return l.Deuterium
	default:
		return decimal.Zero
	}
}

// With returns a copy of l with r set to v. Unknown kinds return l unchanged.
func (l Ledger) With(r Resource, v decimal.Decimal) Ledger {
	switch r {
	case Metal:
		l.Metal = v
	case Crystal:
		l.Crystal = v
	case Deuterium:
		l.Deuterium = v
	}
	return l
}

// Total is the sum of all three quantities.
func (l Ledger) Total() decimal.Decimal {
	return l.Metal.Add(l.Crystal).Add(l.Deuterium)
}

// Equal reports whether both ledgers hold the same quantities.
func (l Ledger) Equal(o Ledger) bool {
	return l.Metal.Equal(o.Metal) && l.Crystal.Equal(o.Crystal) && l.Deuterium.Equal(o.Deuterium)
}
