package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/example/armada/internal/ports/primary"
)

// parseShipFlags parses repeated "shipID=count" values.
func parseShipFlags(values []string) ([]primary.ShipDelta, error) {
	deltas := make([]primary.ShipDelta, 0, len(values))
	for _, v := range values {
		id, count, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid ship %q: expected ID=COUNT", v)
		}
		shipID, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return nil, fmt.Errorf("invalid ship id in %q: %w", v, err)
		}
		delta, err := strconv.ParseFloat(strings.TrimSpace(count), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ship count in %q: %w", v, err)
		}
		if math.IsNaN(delta) || math.IsInf(delta, 0) {
			return nil, fmt.Errorf("invalid ship count in %q: not a finite number", v)
		}
		deltas = append(deltas, primary.ShipDelta{ShipID: shipID, Delta: delta})
	}
	return deltas, nil
}

// parseCargoFlags parses repeated "resource=amount" values.
func parseCargoFlags(values []string) ([]primary.ResourceDelta, error) {
	deltas := make([]primary.ResourceDelta, 0, len(values))
	for _, v := range values {
		name, amount, ok := strings.Cut(v, "=")
		if !ok {
			return nil, fmt.Errorf("invalid cargo %q: expected RESOURCE=AMOUNT", v)
		}
		delta, err := decimal.NewFromString(strings.TrimSpace(amount))
		if err != nil {
			return nil, fmt.Errorf("invalid cargo amount in %q: %w", v, err)
		}
		deltas = append(deltas, primary.ResourceDelta{Resource: strings.TrimSpace(name), Delta: delta})
	}
	return deltas, nil
}

// parseFleetID parses a fleet ID argument.
func parseFleetID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid fleet id %q", arg)
	}
	return id, nil
}
