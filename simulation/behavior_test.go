package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/vector"
)

func TestPatrolCyclesThroughAllWaypoints(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	start := vector.MakeVector2(0, 0)
	id := sim.CreateRover(&start)

	sim.SetCapabilities(id, PartialCapabilities{
		MaxSpeed: Float64(10),
		TurnRate: Float64(1.0),
	})
	sim.SetTask(id, GoalPatrol)

	_, _, behavior, ok := sim.aspects(id)
	require.True(t, ok)

	visited := make(map[int]bool)
	lastIndex := -1
	transitions := 0

	for i := 0; i < 20000 && transitions < 5; i++ {
		sim.Update(50)

		index := behavior.GetPatrolIndex()
		if index != lastIndex {
			if lastIndex != -1 {
				transitions++
			}
			visited[index] = true
			lastIndex = index
		}
	}

	require.Len(t, behavior.GetPatrolPoints(), 4)

	for corner := 0; corner < 4; corner++ {
		assert.True(t, visited[corner], "waypoint %d never reached", corner)
	}

	// closure: after a full lap the index is back to its starting value
	// modulo the path length
	assert.Contains(t, []int{0, 1, 2, 3}, behavior.GetPatrolIndex())
}

func TestFindRocksApproachAndDwell(t *testing.T) {
	rocks := &fakeRocks{rock: commontypes.RockPoint{X: 50, Z: 0}}
	sim := newTestSimWithRocks(&fakeBus{}, rocks)

	start := vector.MakeVector2(0, 0)
	id := sim.CreateRover(&start)

	body, _, behavior, ok := sim.aspects(id)
	require.True(t, ok)

	body.SetDirection(vector.MakeVector2(1, 0))
	sim.SetTask(id, GoalFindRocks)

	rockAt := vector.MakeVector2(50, 0)
	lastDistance := body.GetPosition().DistanceTo(rockAt)

	arrived := false
	for i := 0; i < 2000; i++ {
		sim.Update(16)

		distance := body.GetPosition().DistanceTo(rockAt)
		if distance < sim.tuning.RockArriveRadius {
			arrived = true
			break
		}

		assert.Less(t, distance, lastDistance, "distance to the rock must shrink every tick")
		lastDistance = distance
	}

	require.True(t, arrived, "rover never reached the rock")

	// examining: frozen for the dwell duration
	dwellTicks := int(sim.tuning.RockDwellMs/16) - 2
	for i := 0; i < dwellTicks; i++ {
		sim.Update(16)
		assert.Zero(t, body.GetSpeed())
	}

	assert.True(t, behavior.dwelling(sim.clock))
}

func TestDwellGoesStaleOnGoalSwitch(t *testing.T) {
	rocks := &fakeRocks{rock: commontypes.RockPoint{X: 10, Z: 0}}
	sim := newTestSimWithRocks(&fakeBus{}, rocks)

	start := vector.MakeVector2(0, 0)
	id := sim.CreateRover(&start)

	_, _, behavior, ok := sim.aspects(id)
	require.True(t, ok)

	sim.SetTask(id, GoalFindRocks)
	sim.Update(16) // rock is inside the arrive radius: dwell starts
	require.True(t, behavior.dwelling(sim.clock))

	sim.SetTask(id, GoalRandom)

	// the armed dwell must not survive the goal switch
	assert.False(t, behavior.dwelling(sim.clock))

	for i := 0; i < 500; i++ {
		sim.Update(16)
	}

	snapshot, ok := sim.GetRover(id)
	require.True(t, ok)
	assert.Positive(t, snapshot.Speed, "stale dwell must not keep the rover parked")
}

func TestStandbyFreezesMovement(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	sim.SetTask(id, GoalStandby)
	sim.Update(16)

	before, ok := sim.GetRover(id)
	require.True(t, ok)

	for i := 0; i < 200; i++ {
		sim.Update(16)
	}

	after, ok := sim.GetRover(id)
	require.True(t, ok)

	assert.Zero(t, after.Speed)
	assert.Equal(t, before.Position, after.Position)
}

func TestUnknownGoalWanders(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	sim.SetTask(id, "terraform")

	snapshot, ok := sim.GetRover(id)
	require.True(t, ok)
	assert.Equal(t, "terraform", snapshot.BehaviorGoal, "the raw task text stays visible")

	for i := 0; i < 500; i++ {
		sim.Update(16)
	}

	after, ok := sim.GetRover(id)
	require.True(t, ok)
	assert.Positive(t, after.Speed, "unknown goals fall back to wandering")
}

func TestFindRocksWithoutProviderFallsBackToWandering(t *testing.T) {
	sim := newTestSim(&fakeBus{}) // no rock provider
	id := sim.CreateRover(nil)

	sim.SetTask(id, GoalFindRocks)

	for i := 0; i < 500; i++ {
		sim.Update(16)
	}

	snapshot, ok := sim.GetRover(id)
	require.True(t, ok)
	assert.Positive(t, snapshot.Speed)
}

func TestSearchCommitsToATargetAfterThinking(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	start := vector.MakeVector2(0, 0)
	id := sim.CreateRover(&start)

	_, _, behavior, ok := sim.aspects(id)
	require.True(t, ok)

	sim.SetTask(id, GoalFindWater)

	profile := searchProfiles[GoalFindWater]
	sawTarget := false

	for i := 0; i < int(profile.thinkMs/16)+50; i++ {
		sim.Update(16)

		if behavior.GetTargetPosition() != nil {
			sawTarget = true
			break
		}
	}

	assert.True(t, sawTarget, "thinking must end in a committed search point")
}

func TestFindFlatSurfaceDwellsOnFlatTerrain(t *testing.T) {
	sim := newTestSim(&fakeBus{}) // flat terrain: every sample passes the threshold

	start := vector.MakeVector2(0, 0)
	id := sim.CreateRover(&start)

	sim.SetCapabilities(id, PartialCapabilities{MaxSpeed: Float64(10), TurnRate: Float64(1.0)})
	sim.SetTask(id, GoalFindFlatSurface)

	_, _, behavior, ok := sim.aspects(id)
	require.True(t, ok)

	dwelled := false
	for i := 0; i < 5000; i++ {
		sim.Update(50)

		if behavior.dwelling(sim.clock) {
			dwelled = true
			break
		}
	}

	assert.True(t, dwelled, "flat ground must pass the flatness check and trigger a dwell")
}
