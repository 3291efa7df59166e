package fleet

import "github.com/example/armada/internal/core/effects"

// EntityName is the entity label used in fleet effects.
const EntityName = "fleet"

// PersistPlanInput contains the state the persist decision depends on.
type PersistPlanInput struct {
	FleetID   int64 // 0 for a fleet that was never stored
	ShipCount float64
}

// PlanPersist decides how a fleet is written. A fleet with fewer than one ship is
// never stored: an existing row is deleted and a new fleet is skipped.
// This is a pure function.
func PlanPersist(input PersistPlanInput) effects.PersistEffect {
	plan := effects.PersistEffect{Entity: EntityName, ID: input.FleetID}

	switch {
	case input.ShipCount < 1 && input.FleetID == 0:
		plan.Operation = effects.OpSkip
	case input.ShipCount < 1:
		plan.Operation = effects.OpDelete
	case input.FleetID == 0:
		plan.Operation = effects.OpInsert
	default:
		plan.Operation = effects.OpUpdate
	}
	return plan
}

// PersistNotice returns the log effect announcing a completed persist, or NoEffect
// when the operation is routine.
func PersistNotice(plan effects.PersistEffect) effects.Effect {
	switch plan.Operation {
	case effects.OpDelete:
		return effects.LogEffect{
			Level:   "info",
			Message: "fleet destroyed",
			Fields:  map[string]any{"fleet_id": plan.ID},
		}
	case effects.OpInsert:
		return effects.LogEffect{
			Level:   "debug",
			Message: "fleet created",
			Fields:  map[string]any{"fleet_id": plan.ID},
		}
	default:
		return effects.NoEffect{}
	}
}
