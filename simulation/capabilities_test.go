package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCapabilitiesClampsEveryField(t *testing.T) {
	caps := ValidateCapabilities(Capabilities{
		MaxSpeed:         99,
		TurnRate:         -3,
		SensorRange:      1,
		BatteryCapacity:  10000,
		BatteryLevel:     10000,
		BatteryDrainRate: 5,
	})

	assert.Equal(t, 10.0, caps.MaxSpeed)
	assert.Equal(t, 0.01, caps.TurnRate)
	assert.Equal(t, 10.0, caps.SensorRange)
	assert.Equal(t, 500.0, caps.BatteryCapacity)
	assert.Equal(t, 500.0, caps.BatteryLevel)
	assert.Equal(t, 0.1, caps.BatteryDrainRate)
}

func TestValidateCapabilitiesIsIdempotent(t *testing.T) {
	caps := ValidateCapabilities(Capabilities{
		MaxSpeed:         3,
		TurnRate:         0.2,
		SensorRange:      60,
		BatteryCapacity:  80,
		BatteryLevel:     40,
		BatteryDrainRate: 0.02,
	})

	assert.Equal(t, caps, ValidateCapabilities(caps))
}

func TestLevelClampFollowsCapacityClamp(t *testing.T) {
	// capacity is clamped down to 500 first, then the level is clamped
	// against the already-clamped capacity
	caps := ValidateCapabilities(Capabilities{
		MaxSpeed:         2,
		TurnRate:         0.1,
		SensorRange:      50,
		BatteryCapacity:  900,
		BatteryLevel:     700,
		BatteryDrainRate: 0.01,
	})

	assert.Equal(t, 500.0, caps.BatteryCapacity)
	assert.Equal(t, 500.0, caps.BatteryLevel)
}

func TestMergeKeepsUnsetFields(t *testing.T) {
	base := DefaultCapabilities()

	merged := base.merge(PartialCapabilities{MaxSpeed: Float64(5)})

	assert.Equal(t, 5.0, merged.MaxSpeed)
	assert.Equal(t, base.TurnRate, merged.TurnRate)
	assert.Equal(t, base.SensorRange, merged.SensorRange)
	assert.Equal(t, base.BatteryCapacity, merged.BatteryCapacity)
	assert.Equal(t, base.BatteryLevel, merged.BatteryLevel)
	assert.Equal(t, base.BatteryDrainRate, merged.BatteryDrainRate)
}

func TestMergeExplicitLevelWinsOverRescale(t *testing.T) {
	base := DefaultCapabilities()

	merged := base.merge(PartialCapabilities{
		BatteryCapacity: Float64(200),
		BatteryLevel:    Float64(30),
	})

	assert.Equal(t, 200.0, merged.BatteryCapacity)
	assert.Equal(t, 30.0, merged.BatteryLevel)
}
