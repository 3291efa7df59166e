package app

import (
	"github.com/shopspring/decimal"

	corefleet "github.com/example/armada/internal/core/fleet"
	"github.com/example/armada/internal/ports/primary"
)

type resourceDelta struct {
	kind  corefleet.Resource
	delta decimal.Decimal
}

// parseResourceDeltas resolves resource names before any fleet is touched.
func parseResourceDeltas(in []primary.ResourceDelta) ([]resourceDelta, error) {
	out := make([]resourceDelta, 0, len(in))
	for _, d := range in {
		kind, err := corefleet.ParseResource(d.Resource)
		if err != nil {
			return nil, err
		}
		out = append(out, resourceDelta{kind: kind, delta: d.Delta})
	}
	return out, nil
}
