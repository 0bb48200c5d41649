package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/vector"
)

func TestCreateRoverEmitsAndPlacesInsideBounds(t *testing.T) {
	bus := &fakeBus{}
	sim := newTestSim(bus)

	for i := 0; i < 50; i++ {
		id := sim.CreateRover(nil)

		snapshot, ok := sim.GetRover(id)
		require.True(t, ok)

		x, z := snapshot.Position.Get()
		assert.LessOrEqual(t, math.Abs(x), testWorldSize/2)
		assert.LessOrEqual(t, math.Abs(z), testWorldSize/2)
		assert.InDelta(t, 1.0, snapshot.Direction.Mag(), 1e-9)
	}

	assert.Equal(t, 50, bus.count(commontypes.EventRoverAdded))
	assert.Len(t, sim.GetAllRovers(), 50)
}

func TestSelectionIsExclusive(t *testing.T) {
	bus := &fakeBus{}
	sim := newTestSim(bus)

	first := sim.CreateRover(nil)
	second := sim.CreateRover(nil)

	sim.SelectRover(first)
	selected, ok := sim.GetSelectedRover()
	require.True(t, ok)
	assert.Equal(t, first, selected.ID)

	sim.SelectRover(second)
	selected, ok = sim.GetSelectedRover()
	require.True(t, ok)
	assert.Equal(t, second, selected.ID)

	firstSnapshot, ok := sim.GetRover(first)
	require.True(t, ok)
	assert.False(t, firstSnapshot.Selected)

	sim.ClearSelection()
	_, ok = sim.GetSelectedRover()
	assert.False(t, ok)

	payload, emitted := bus.last(commontypes.EventRoverSelected)
	require.True(t, emitted)
	assert.Nil(t, payload)
}

func TestSelectUnknownRoverIsANoOp(t *testing.T) {
	bus := &fakeBus{}
	sim := newTestSim(bus)

	id := sim.CreateRover(nil)
	sim.SelectRover(id)

	sim.SelectRover("no-such-rover")

	selected, ok := sim.GetSelectedRover()
	require.True(t, ok, "a failed select must not clear the selection")
	assert.Equal(t, id, selected.ID)
}

func TestRemoveSelectedRoverClearsSelection(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	id := sim.CreateRover(nil)
	sim.SelectRover(id)
	sim.RemoveRover(id)

	_, ok := sim.GetSelectedRover()
	assert.False(t, ok)

	_, ok = sim.GetRover(id)
	assert.False(t, ok)
	assert.Empty(t, sim.GetAllRovers())
}

func TestSetCapabilitiesEmptyPartialIsIdempotent(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	before, ok := sim.GetRover(id)
	require.True(t, ok)

	sim.SetCapabilities(id, PartialCapabilities{})

	after, ok := sim.GetRover(id)
	require.True(t, ok)

	assert.Equal(t, before.Capabilities, after.Capabilities)
}

func TestCapacityChangeRescalesLevel(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	sim.SetCapabilities(id, PartialCapabilities{
		BatteryCapacity: Float64(100),
		BatteryLevel:    Float64(50),
	})

	sim.SetCapabilities(id, PartialCapabilities{BatteryCapacity: Float64(200)})

	snapshot, ok := sim.GetRover(id)
	require.True(t, ok)

	assert.InDelta(t, 200.0, snapshot.Capabilities.BatteryCapacity, 1e-9)
	assert.InDelta(t, 100.0, snapshot.Capabilities.BatteryLevel, 1e-9, "50% charge must survive the resize")
}

func TestRoverRecordRoundTrip(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	start := vector.MakeVector2(120, -80)
	id := sim.CreateRover(&start)

	sim.SetTask(id, GoalPatrol)
	sim.SetCapabilities(id, PartialCapabilities{
		MaxSpeed:    Float64(3.5),
		SensorRange: Float64(80),
	})

	record, ok := sim.GetRoverData(id)
	require.True(t, ok)

	restored := sim.RestoreRover(record)
	snapshot, ok := sim.GetRover(restored)
	require.True(t, ok)

	assert.Equal(t, GoalPatrol, snapshot.BehaviorGoal)
	assert.InDelta(t, record.Position.X, snapshot.Position.GetX(), 0.01)
	assert.InDelta(t, record.Position.Z, snapshot.Position.GetZ(), 0.01)
	assert.Equal(t, record.Capabilities, snapshot.Capabilities.toRecord())
}

func TestPositionsStayInBoundsUnderLongSimulation(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	goals := []string{GoalRandom, GoalPatrol, GoalFindWater, GoalFindGoodWeather, GoalFindGoodSoil, GoalFindFlatSurface}
	ids := make([]string, 0, len(goals))

	for _, goal := range goals {
		id := sim.CreateRover(nil)
		sim.SetTask(id, goal)
		ids = append(ids, id)
	}

	halfExtent := testWorldSize / 2

	for i := 0; i < 5000; i++ {
		sim.Update(32)

		for _, id := range ids {
			snapshot, ok := sim.GetRover(id)
			require.True(t, ok)

			x, z := snapshot.Position.Get()
			assert.LessOrEqual(t, math.Abs(x), halfExtent)
			assert.LessOrEqual(t, math.Abs(z), halfExtent)
			assert.InDelta(t, 1.0, snapshot.Direction.Mag(), 1e-9)
		}
	}
}

func TestRoverUpdatedEmissionIsThrottled(t *testing.T) {
	bus := &fakeBus{}
	sim := newTestSim(bus)

	sim.CreateRover(nil)
	baseline := bus.count(commontypes.EventRoverUpdated)

	// 100 ticks x 16ms = 1600ms of simulation; at a 100ms floor this is at
	// most 17 emissions for the single rover
	for i := 0; i < 100; i++ {
		sim.Update(16)
	}

	emitted := bus.count(commontypes.EventRoverUpdated) - baseline
	assert.LessOrEqual(t, emitted, 17)
	assert.Greater(t, emitted, 0)
}

func TestUnknownIdCommandsDoNotPanic(t *testing.T) {
	sim := newTestSim(&fakeBus{})

	assert.NotPanics(t, func() {
		sim.SetTask("ghost", GoalPatrol)
		sim.SetCapabilities("ghost", PartialCapabilities{MaxSpeed: Float64(1)})
		sim.RemoveRover("ghost")

		_, ok := sim.GetRover("ghost")
		assert.False(t, ok)

		_, ok = sim.GetRoverData("ghost")
		assert.False(t, ok)
	})
}
