package simulation

import (
	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils/number"
)

// Capabilities is the tunable parameter bag of a rover.
type Capabilities struct {
	MaxSpeed         float64 `json:"maxSpeed"`
	TurnRate         float64 `json:"turnRate"`
	SensorRange      float64 `json:"sensorRange"`
	BatteryCapacity  float64 `json:"batteryCapacity"`
	BatteryLevel     float64 `json:"batteryLevel"`
	BatteryDrainRate float64 `json:"batteryDrainRate"`
}

// PartialCapabilities carries a capability merge; nil fields keep the
// current value.
type PartialCapabilities struct {
	MaxSpeed         *float64 `json:"maxSpeed"`
	TurnRate         *float64 `json:"turnRate"`
	SensorRange      *float64 `json:"sensorRange"`
	BatteryCapacity  *float64 `json:"batteryCapacity"`
	BatteryLevel     *float64 `json:"batteryLevel"`
	BatteryDrainRate *float64 `json:"batteryDrainRate"`
}

func DefaultCapabilities() Capabilities {
	return Capabilities{
		MaxSpeed:         2.0,
		TurnRate:         0.1,
		SensorRange:      50.0,
		BatteryCapacity:  100.0,
		BatteryLevel:     100.0,
		BatteryDrainRate: 0.01,
	}
}

// ValidateCapabilities clamps every capability into its allowed range.
// Idempotent; the capacity clamp is applied before the level clamp so the
// result does not depend on field order.
func ValidateCapabilities(caps Capabilities) Capabilities {
	caps.MaxSpeed = number.Clamp(caps.MaxSpeed, 0.1, 10.0)
	caps.TurnRate = number.Clamp(caps.TurnRate, 0.01, 1.0)
	caps.SensorRange = number.Clamp(caps.SensorRange, 10, 500)
	caps.BatteryCapacity = number.Clamp(caps.BatteryCapacity, 50, 500)
	caps.BatteryLevel = number.Clamp(caps.BatteryLevel, 0, caps.BatteryCapacity)
	caps.BatteryDrainRate = number.Clamp(caps.BatteryDrainRate, 0.001, 0.1)

	return caps
}

// merge applies a partial on top of current capabilities. When the battery
// capacity changes without an explicit level, the level is rescaled to keep
// the charge fraction.
func (caps Capabilities) merge(partial PartialCapabilities) Capabilities {
	previousCapacity := caps.BatteryCapacity

	if partial.MaxSpeed != nil {
		caps.MaxSpeed = *partial.MaxSpeed
	}

	if partial.TurnRate != nil {
		caps.TurnRate = *partial.TurnRate
	}

	if partial.SensorRange != nil {
		caps.SensorRange = *partial.SensorRange
	}

	if partial.BatteryCapacity != nil {
		caps.BatteryCapacity = *partial.BatteryCapacity
	}

	if partial.BatteryLevel != nil {
		caps.BatteryLevel = *partial.BatteryLevel
	} else if partial.BatteryCapacity != nil && previousCapacity > 0 {
		fraction := caps.BatteryLevel / previousCapacity
		caps.BatteryLevel = fraction * *partial.BatteryCapacity
	}

	if partial.BatteryDrainRate != nil {
		caps.BatteryDrainRate = *partial.BatteryDrainRate
	}

	return ValidateCapabilities(caps)
}

func (caps Capabilities) toRecord() commontypes.CapabilityRecord {
	return commontypes.CapabilityRecord{
		MaxSpeed:         caps.MaxSpeed,
		TurnRate:         caps.TurnRate,
		SensorRange:      caps.SensorRange,
		BatteryCapacity:  caps.BatteryCapacity,
		BatteryLevel:     caps.BatteryLevel,
		BatteryDrainRate: caps.BatteryDrainRate,
	}
}

func capabilitiesFromRecord(record commontypes.CapabilityRecord) Capabilities {
	return ValidateCapabilities(Capabilities{
		MaxSpeed:         record.MaxSpeed,
		TurnRate:         record.TurnRate,
		SensorRange:      record.SensorRange,
		BatteryCapacity:  record.BatteryCapacity,
		BatteryLevel:     record.BatteryLevel,
		BatteryDrainRate: record.BatteryDrainRate,
	})
}

// Float64 returns a pointer to its argument, for PartialCapabilities
// literals.
func Float64(f float64) *float64 {
	return &f
}
