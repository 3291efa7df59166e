package fleet

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientShips is returned when a change would leave a negative ship count.
	ErrInsufficientShips = errors.New("insufficient ships")

	// ErrInvalidShipCount is returned for ship counts that are NaN or infinite.
	ErrInvalidShipCount = errors.New("invalid ship count")

	// ErrInsufficientResource is returned when a change would leave a negative quantity.
	ErrInsufficientResource = errors.New("insufficient resource")

	// ErrEmptyFleet is returned when a new fleet would carry no ships.
	ErrEmptyFleet = errors.New("fleet has no ships")

	// ErrCargoExceedsCapacity is returned when a new fleet cannot hold its cargo.
	ErrCargoExceedsCapacity = errors.New("cargo exceeds capacity")

	// ErrInvalidSplit is returned when a split does not move a positive amount.
	ErrInvalidSplit = errors.New("invalid fleet split")
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Cause   error
}

// Error converts the guard result to an error if not allowed.
// The returned error matches Cause under errors.Is.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	if r.Cause == nil {
		return errors.New(r.Reason)
	}
	return fmt.Errorf("%w: %s", r.Cause, r.Reason)
}

// ShipChangeContext provides context for ship count guards.
type ShipChangeContext struct {
	FleetID int64
	ShipID  int
	Current float64 // count before the change, 0 when absent
	Delta   float64
}

// ResourceChangeContext provides context for ledger guards.
type ResourceChangeContext struct {
	FleetID  int64
	Resource Resource
	Current  decimal.Decimal
	Delta    decimal.Decimal
}

// CreateFleetContext provides context for fleet creation guards.
type CreateFleetContext struct {
	ShipCount float64
	Cargo     decimal.Decimal
	Capacity  decimal.Decimal // nominal capacity of the ships, before cargo
}

// CanChangeShipCount evaluates whether delta ships of a type can be added.
// Rules:
// - The delta must be a finite number
// - The resulting count must not be negative
func CanChangeShipCount(ctx ShipChangeContext) GuardResult {
	if !finite(ctx.Delta) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("fleet %d: ship %d delta %s is not a finite number", ctx.FleetID, ctx.ShipID, formatCount(ctx.Delta)),
			Cause:   ErrInvalidShipCount,
		}
	}
	if ctx.Current+ctx.Delta < 0 {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("fleet %d has %s of ship %d, cannot remove %s",
				ctx.FleetID, formatCount(ctx.Current), ctx.ShipID, formatCount(-ctx.Delta)),
			Cause: ErrInsufficientShips,
		}
	}
	return GuardResult{Allowed: true}
}

// CanChangeResource evaluates whether delta of a resource can be added.
// Rules:
// - The resulting quantity must not be negative
func CanChangeResource(ctx ResourceChangeContext) GuardResult {
	if ctx.Current.Add(ctx.Delta).IsNegative() {
		return GuardResult{
			Allowed: false,
			Reason: fmt.Sprintf("fleet %d carries %s %s, cannot unload %s",
				ctx.FleetID, ctx.Current, ctx.Resource, ctx.Delta.Neg()),
			Cause: ErrInsufficientResource,
		}
	}
	return GuardResult{Allowed: true}
}

// CanCreateFleet evaluates whether a new fleet can be created.
// Rules:
// - The fleet must contain at least one ship
// - The cargo must fit into the ships' capacity
func CanCreateFleet(ctx CreateFleetContext) GuardResult {
	if ctx.ShipCount < 1 {
		return GuardResult{
			Allowed: false,
			Reason:  "a fleet needs at least one ship",
			Cause:   ErrEmptyFleet,
		}
	}
	if ctx.Cargo.GreaterThan(ctx.Capacity) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cargo %s exceeds capacity %s", ctx.Cargo, ctx.Capacity),
			Cause:   ErrCargoExceedsCapacity,
		}
	}
	return GuardResult{Allowed: true}
}

// SplitFleetContext provides context for fleet split guards.
type SplitFleetContext struct {
	FleetID    int64
	ShipsMoved []float64         // requested count per ship type
	CargoMoved []decimal.Decimal // requested amount per resource
}

// CanSplitFleet evaluates whether a split request is well formed.
// Rules:
// - Every moved amount must be positive and finite
// - At least one ship must move
func CanSplitFleet(ctx SplitFleetContext) GuardResult {
	var total float64
	for _, n := range ctx.ShipsMoved {
		if !finite(n) || n <= 0 {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("fleet %d: ship counts to split off must be positive", ctx.FleetID),
				Cause:   ErrInvalidSplit,
			}
		}
		total += n
	}
	for _, amount := range ctx.CargoMoved {
		if !amount.IsPositive() {
			return GuardResult{
				Allowed: false,
				Reason:  fmt.Sprintf("fleet %d: cargo to split off must be positive", ctx.FleetID),
				Cause:   ErrInvalidSplit,
			}
		}
	}
	if total < 1 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("fleet %d: a split must move at least one ship", ctx.FleetID),
			Cause:   ErrInvalidSplit,
		}
	}
	return GuardResult{Allowed: true}
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

func formatCount(n float64) string {
	if !finite(n) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return decimal.NewFromFloat(n).String()
}
