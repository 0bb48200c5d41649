package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryStaysInRange(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	for i := 0; i < 2000; i++ {
		sim.Update(16)

		snapshot, ok := sim.GetRover(id)
		require.True(t, ok)

		caps := snapshot.Capabilities
		assert.GreaterOrEqual(t, caps.BatteryLevel, 0.0)
		assert.LessOrEqual(t, caps.BatteryLevel, caps.BatteryCapacity)
	}
}

func TestDeadBatteryFreezesRover(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	sim.SetCapabilities(id, PartialCapabilities{BatteryLevel: Float64(0)})

	before, ok := sim.GetRover(id)
	require.True(t, ok)

	sim.Update(16)

	after, ok := sim.GetRover(id)
	require.True(t, ok)

	assert.Zero(t, after.Speed)
	assert.Equal(t, before.Position, after.Position)
	assert.Zero(t, after.Capabilities.BatteryLevel)
}

func TestLowBatteryDegradesSpeedCeiling(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	body, battery, _, ok := sim.aspects(id)
	require.True(t, ok)

	// 10% charge: ceiling halves (fraction / lowBatteryFraction = 0.5)
	battery.SetLevel(battery.GetCapacity() * 0.10)
	body.SetTargetSpeed(body.GetMaxSpeed())

	sim.Update(16)

	expected := body.GetMaxSpeed() * 0.5
	assert.InDelta(t, expected, body.GetEffectiveMaxSpeed(), 0.01)

	require.NotNil(t, body.GetTargetSpeed())
	assert.LessOrEqual(t, *body.GetTargetSpeed(), expected+1e-9,
		"a too-high target speed must be forced under the degraded ceiling")
}

func TestDegradedCeilingNeverBelowFloor(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	body, battery, _, ok := sim.aspects(id)
	require.True(t, ok)

	battery.SetLevel(battery.GetCapacity() * 0.01)

	sim.Update(16)

	floor := body.GetMaxSpeed() * sim.tuning.DegradedSpeedFloor
	assert.GreaterOrEqual(t, body.GetEffectiveMaxSpeed(), floor-1e-9)
}

func TestHealthyBatteryIsNotDistressed(t *testing.T) {
	sim := newTestSim(&fakeBus{})
	id := sim.CreateRover(nil)

	sim.Update(16)

	snapshot, ok := sim.GetRover(id)
	require.True(t, ok)
	assert.False(t, snapshot.Distress)
}

func TestStandbyDrainsSlowerThanPatrol(t *testing.T) {
	bus := &fakeBus{}
	sim := newTestSim(bus)

	idle := sim.CreateRover(nil)
	scout := sim.CreateRover(nil)

	sim.SetTask(idle, GoalStandby)
	sim.SetTask(scout, GoalPatrol)

	for i := 0; i < 1000; i++ {
		sim.Update(16)
	}

	idleSnapshot, ok := sim.GetRover(idle)
	require.True(t, ok)
	scoutSnapshot, ok := sim.GetRover(scout)
	require.True(t, ok)

	assert.Greater(t, idleSnapshot.Capabilities.BatteryLevel, scoutSnapshot.Capabilities.BatteryLevel)
}
