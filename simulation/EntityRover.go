package simulation

import (
	"math"

	uuid "github.com/satori/go.uuid"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/vector"
)

// CreateRover registers a new rover and returns its id. With a nil
// position the rover is placed at a random spot inside the terrain bounds.
// Emits roverAdded.
func (sim *Simulation) CreateRover(position *vector.Vector2) string {
	var at vector.Vector2
	if position != nil {
		at = sim.clampPointToBounds(*position)
	} else {
		halfWidth, halfDepth := sim.halfExtents()
		at = vector.MakeVector2(
			(sim.rng.Float64()*2-1)*(halfWidth-sim.tuning.BoundsMargin),
			(sim.rng.Float64()*2-1)*(halfDepth-sim.tuning.BoundsMargin),
		)
	}

	return sim.spawnRover(
		at,
		vector.MakeVector2FromAngle(sim.rng.Float64()*2*math.Pi),
		0,
		DefaultCapabilities(),
		GoalRandom,
		GoalRandom,
	)
}

// RestoreRover rebuilds a rover from a persisted progress record and
// returns its (new) id. The record's goal, position and capabilities
// survive the round-trip; transient behavior memory does not.
func (sim *Simulation) RestoreRover(record commontypes.RoverRecord) string {
	goal := record.BehaviorGoal
	if goal == "" {
		goal = GoalRandom
	}

	return sim.spawnRover(
		sim.clampPointToBounds(vector.MakeVector2(record.Position.X, record.Position.Z)),
		vector.MakeVector2FromAngle(sim.rng.Float64()*2*math.Pi),
		record.Speed,
		capabilitiesFromRecord(record.Capabilities),
		goal,
		goal,
	)
}

func (sim *Simulation) spawnRover(
	position vector.Vector2,
	direction vector.Vector2,
	speed float64,
	caps Capabilities,
	goal string,
	task string,
) string {
	id := uuid.NewV4().String()

	body := &PhysicalBody{
		position:  position,
		height:    sim.resolveHeight(position.GetX(), position.GetZ()),
		direction: direction,
		speed:     speed,
	}

	battery := &Battery{}
	applyCapabilities(body, battery, caps)

	behavior := &Behavior{}
	behavior.switchGoal(goal, task)

	entity := sim.manager.NewEntity().
		AddComponent(sim.physicalBodyComponent, body).
		AddComponent(sim.batteryComponent, battery).
		AddComponent(sim.behaviorComponent, behavior)

	sim.entities[id] = entity
	sim.idsByEntity[entity.GetID()] = id
	sim.order = append(sim.order, id)

	sim.bus.Notify(commontypes.EventRoverAdded, sim.makeSnapshot(id, body, battery, behavior))

	return id
}

func applyCapabilities(body *PhysicalBody, battery *Battery, caps Capabilities) {
	caps = ValidateCapabilities(caps)

	body.SetMaxSpeed(caps.MaxSpeed)
	body.SetTurnRate(caps.TurnRate)
	body.SetSensorRange(caps.SensorRange)
	body.SetEffectiveMaxSpeed(caps.MaxSpeed)

	battery.SetCapacity(caps.BatteryCapacity)
	battery.SetLevel(caps.BatteryLevel)
	battery.SetDrainRate(caps.BatteryDrainRate)
}
