package simulation

import (
	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils"
	"github.com/marsyard/marsyard/common/utils/number"
)

// Registry commands and query accessors. Operating on an unknown rover id
// is logged and ignored, never an error: the absence of effect is the
// caller's signal.

func (sim *Simulation) aspects(id string) (*PhysicalBody, *Battery, *Behavior, bool) {
	entity, known := sim.entities[id]
	if !known {
		return nil, nil, nil, false
	}

	entityresult := sim.manager.GetEntityByID(
		entity.GetID(),
		sim.physicalBodyComponent,
		sim.batteryComponent,
		sim.behaviorComponent,
	)
	if entityresult == nil {
		return nil, nil, nil, false
	}

	return sim.CastPhysicalBody(entityresult.Components[sim.physicalBodyComponent]),
		sim.CastBattery(entityresult.Components[sim.batteryComponent]),
		sim.CastBehavior(entityresult.Components[sim.behaviorComponent]),
		true
}

// SelectRover makes the given rover the selected one, replacing any
// previous selection. Emits roverSelected with the rover snapshot.
func (sim *Simulation) SelectRover(id string) {
	body, battery, behavior, known := sim.aspects(id)
	if !known {
		utils.Debug("simulation", "SelectRover: unknown rover id "+id)
		return
	}

	sim.selectedID = id
	sim.bus.Notify(commontypes.EventRoverSelected, sim.makeSnapshot(id, body, battery, behavior))
}

// ClearSelection deselects the current rover, if any. Emits roverSelected
// with a nil payload.
func (sim *Simulation) ClearSelection() {
	sim.selectedID = ""
	sim.bus.Notify(commontypes.EventRoverSelected, nil)
}

// SetTask stores the task label and reinterprets it as the new behavior
// goal (the UI task values are literally the goal identifiers), resetting
// the behavior working memory. Emits roverUpdated.
func (sim *Simulation) SetTask(id string, text string) {
	body, battery, behavior, known := sim.aspects(id)
	if !known {
		utils.Debug("simulation", "SetTask: unknown rover id "+id)
		return
	}

	// the goal keeps the raw text; the behavior selector falls back to
	// random for goals it does not know
	behavior.switchGoal(text, text)

	sim.emitNow(id, body, battery, behavior)
}

// SetCapabilities merges a partial capability bag into the rover's
// capabilities, clamping every value to its allowed range. Emits
// roverUpdated.
func (sim *Simulation) SetCapabilities(id string, partial PartialCapabilities) {
	body, battery, behavior, known := sim.aspects(id)
	if !known {
		utils.Debug("simulation", "SetCapabilities: unknown rover id "+id)
		return
	}

	merged := sim.assembleCapabilities(body, battery).merge(partial)
	applyCapabilities(body, battery, merged)

	sim.emitNow(id, body, battery, behavior)
}

// RemoveRover deletes a rover, clearing the selection first when it was
// the selected one.
func (sim *Simulation) RemoveRover(id string) {
	entity, known := sim.entities[id]
	if !known {
		utils.Debug("simulation", "RemoveRover: unknown rover id "+id)
		return
	}

	if sim.selectedID == id {
		sim.ClearSelection()
	}

	sim.manager.DisposeEntities(entity)

	delete(sim.idsByEntity, entity.GetID())
	delete(sim.entities, id)
	delete(sim.lastEmit, id)

	for i, existing := range sim.order {
		if existing == id {
			sim.order = append(sim.order[:i], sim.order[i+1:]...)
			break
		}
	}
}

func (sim *Simulation) GetRover(id string) (RoverSnapshot, bool) {
	body, battery, behavior, known := sim.aspects(id)
	if !known {
		return RoverSnapshot{}, false
	}

	return sim.makeSnapshot(id, body, battery, behavior), true
}

// GetAllRovers returns snapshots in creation order.
func (sim *Simulation) GetAllRovers() []RoverSnapshot {
	snapshots := make([]RoverSnapshot, 0, len(sim.order))

	for _, id := range sim.order {
		if snapshot, known := sim.GetRover(id); known {
			snapshots = append(snapshots, snapshot)
		}
	}

	return snapshots
}

func (sim *Simulation) GetSelectedRover() (RoverSnapshot, bool) {
	if sim.selectedID == "" {
		return RoverSnapshot{}, false
	}

	return sim.GetRover(sim.selectedID)
}

// GetRoverData projects a rover into the flat progress record consumed by
// the persistence backend; position and coordinates are rounded to 2
// decimals.
func (sim *Simulation) GetRoverData(id string) (commontypes.RoverRecord, bool) {
	body, battery, behavior, known := sim.aspects(id)
	if !known {
		return commontypes.RoverRecord{}, false
	}

	x := number.ToFixed(body.GetPosition().GetX(), 2)
	z := number.ToFixed(body.GetPosition().GetZ(), 2)
	point := commontypes.PlanePoint{X: x, Z: z}

	return commontypes.RoverRecord{
		RobotID:      id,
		Position:     point,
		Height:       number.ToFixed(body.GetHeight(), 2),
		Coordinates:  point,
		BehaviorGoal: behavior.GetGoal(),
		Speed:        number.ToFixed(body.GetSpeed(), 2),
		Capabilities: sim.assembleCapabilities(body, battery).toRecord(),
	}, true
}

// emitNow bypasses the update throttle for synchronous commands.
func (sim *Simulation) emitNow(id string, body *PhysicalBody, battery *Battery, behavior *Behavior) {
	sim.lastEmit[id] = sim.clock
	sim.bus.Notify(commontypes.EventRoverUpdated, sim.makeSnapshot(id, body, battery, behavior))
}
