package simulation

import (
	"math"
	"math/rand"

	"github.com/bytearena/ecs"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/vector"
)

// Simulation is the rover registry and update loop: the single source of
// truth for every live rover. All mutation goes through its methods, called
// from one logical thread of control (the host render loop); it does no
// locking of its own.
type Simulation struct {
	manager *ecs.Manager

	physicalBodyComponent *ecs.Component
	batteryComponent      *ecs.Component
	behaviorComponent     *ecs.Component

	roversView *ecs.View

	terrain commontypes.TerrainHeightProvider
	rocks   commontypes.RockProvider
	bus     commontypes.NotificationBus
	tuning  Tuning

	rng   *rand.Rand
	clock float64 // accumulated simulated milliseconds

	entities    map[string]*ecs.Entity
	idsByEntity map[ecs.EntityID]string
	order       []string

	selectedID string
	lastEmit   map[string]float64
}

// NewSimulation wires the registry to its collaborators. rocks may be nil,
// in which case findRocks degrades to wandering.
func NewSimulation(
	terrain commontypes.TerrainHeightProvider,
	rocks commontypes.RockProvider,
	bus commontypes.NotificationBus,
	tuning Tuning,
	seed int64,
) *Simulation {
	manager := ecs.NewManager()

	sim := &Simulation{
		manager: manager,

		physicalBodyComponent: manager.NewComponent(),
		batteryComponent:      manager.NewComponent(),
		behaviorComponent:     manager.NewComponent(),

		terrain: terrain,
		rocks:   rocks,
		bus:     bus,
		tuning:  tuning,

		rng: rand.New(rand.NewSource(seed)),

		entities:    make(map[string]*ecs.Entity),
		idsByEntity: make(map[ecs.EntityID]string),
		order:       make([]string, 0),
		lastEmit:    make(map[string]float64),
	}

	sim.roversView = manager.CreateView(
		sim.physicalBodyComponent,
		sim.batteryComponent,
		sim.behaviorComponent,
	)

	return sim
}

// Update advances every live rover by one tick: battery accounting, then
// behavior/movement (skipped for a dead rover), then bounds clamp and
// terrain height resample, then a throttled roverUpdated notification.
func (sim *Simulation) Update(deltaTimeMs float64) {
	sim.clock += deltaTimeMs

	for _, entityresult := range sim.roversView.Get() {
		id, known := sim.idsByEntity[entityresult.Entity.GetID()]
		if !known {
			continue
		}

		body := sim.CastPhysicalBody(entityresult.Components[sim.physicalBodyComponent])
		battery := sim.CastBattery(entityresult.Components[sim.batteryComponent])
		behavior := sim.CastBehavior(entityresult.Components[sim.behaviorComponent])

		alive := systemBattery(sim, body, battery, behavior, deltaTimeMs)

		if alive {
			systemBehavior(sim, body, battery, behavior, deltaTimeMs)
		}

		sim.systemBounds(body)

		sim.emitThrottled(id, body, battery, behavior)
	}
}

// systemBounds keeps a rover inside the terrain half-extents and rests its
// height on the (re-sampled) terrain surface.
func (sim *Simulation) systemBounds(body *PhysicalBody) {
	halfWidth, halfDepth := sim.halfExtents()
	x, z := body.GetPosition().Get()

	clampedX := clampAbs(x, halfWidth-sim.tuning.BoundsMargin)
	clampedZ := clampAbs(z, halfDepth-sim.tuning.BoundsMargin)

	if clampedX != x || clampedZ != z {
		body.SetPosition(vector.MakeVector2(clampedX, clampedZ))
	}

	body.SetHeight(sim.resolveHeight(clampedX, clampedZ))
}

// resolveHeight queries the terrain provider and applies the near-zero
// fallback, so rovers neither sink nor disappear while terrain data is
// still loading.
func (sim *Simulation) resolveHeight(x float64, z float64) float64 {
	height := sim.terrain.GetHeightAtPosition(x, z)

	if math.Abs(height) < sim.tuning.NearZeroHeight {
		height = sim.tuning.FallbackHeight
	}

	return height + sim.tuning.RoverClearance
}

// clampPointToBounds pulls an arbitrary target point inside the usable
// terrain rectangle.
func (sim *Simulation) clampPointToBounds(point vector.Vector2) vector.Vector2 {
	halfWidth, halfDepth := sim.halfExtents()
	x, z := point.Get()

	return vector.MakeVector2(
		clampAbs(x, halfWidth-sim.tuning.BoundsMargin),
		clampAbs(z, halfDepth-sim.tuning.BoundsMargin),
	)
}

// buildPatrolSquare lays out the 4 corners of a patrol path around the
// rover's current position, sized by its sensor range.
func (sim *Simulation) buildPatrolSquare(body *PhysicalBody) []vector.Vector2 {
	radius := sim.tuning.PatrolRadiusFactor * body.GetSensorRange()
	center := body.GetPosition()

	corners := []vector.Vector2{
		center.Add(vector.MakeVector2(radius, radius)),
		center.Add(vector.MakeVector2(radius, -radius)),
		center.Add(vector.MakeVector2(-radius, -radius)),
		center.Add(vector.MakeVector2(-radius, radius)),
	}

	for i, corner := range corners {
		corners[i] = sim.clampPointToBounds(corner)
	}

	return corners
}

func (sim *Simulation) emitThrottled(id string, body *PhysicalBody, battery *Battery, behavior *Behavior) {
	last, seen := sim.lastEmit[id]
	if seen && sim.clock-last < sim.tuning.EmitIntervalMs {
		return
	}

	sim.lastEmit[id] = sim.clock
	sim.bus.Notify(commontypes.EventRoverUpdated, sim.makeSnapshot(id, body, battery, behavior))
}

func clampAbs(val float64, max float64) float64 {
	if val > max {
		return max
	}

	if val < -max {
		return -max
	}

	return val
}

// Clock returns the accumulated simulated time in milliseconds.
func (sim *Simulation) Clock() float64 {
	return sim.clock
}
