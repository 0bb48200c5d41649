package simulation

import (
	"time"

	"github.com/marsyard/marsyard/common/utils/number"
)

// goalDrainMultiplier scales battery drain per behavior goal: active
// sensor work costs extra, standby and the pondering searches cost half.
func goalDrainMultiplier(goal string) float64 {
	switch goal {
	case GoalPatrol, GoalFindRocks, GoalFindFlatSurface:
		return 1.5
	case GoalStandby, GoalFindWater, GoalFindGoodWeather, GoalFindGoodSoil:
		return 0.5
	default:
		return 1.0
	}
}

// systemBattery accounts battery drain for one rover tick and degrades the
// effective speed ceiling as charge depletes. Returns false when the rover
// is dead; a dead rover does not think or move, whatever its goal.
func systemBattery(sim *Simulation, body *PhysicalBody, battery *Battery, behavior *Behavior, deltaTimeMs float64) bool {
	seconds := deltaTimeMs / 1000
	speed := body.GetSpeed()

	drain := battery.GetDrainRate() * seconds
	drain += speed * speed * sim.tuning.SpeedDrainFactor * seconds

	if target := body.GetTargetDirection(); target != nil && !target.Normalize().Equals(body.GetDirection()) {
		drain += sim.tuning.TurnDrainRate * seconds
	}

	drain *= goalDrainMultiplier(behavior.GetGoal())

	level := number.Clamp(battery.GetLevel()-drain, 0, battery.GetCapacity())
	battery.SetLevel(level)

	fraction := battery.ChargeFraction()

	// cosmetic distress flash on very low charge, wall-clock driven so it
	// blinks at a steady rate whatever the tick length
	if fraction < sim.tuning.DistressFraction && level > 0 {
		battery.setDistress((time.Now().UnixMilli()/400)%2 == 0)
	} else {
		battery.setDistress(false)
	}

	if battery.IsDead() {
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		return false
	}

	ceiling := body.GetMaxSpeed()
	if fraction < sim.tuning.LowBatteryFraction {
		degraded := fraction / sim.tuning.LowBatteryFraction
		if degraded < sim.tuning.DegradedSpeedFloor {
			degraded = sim.tuning.DegradedSpeedFloor
		}
		ceiling *= degraded
	}

	body.SetEffectiveMaxSpeed(ceiling)

	if target := body.GetTargetSpeed(); target != nil && *target > ceiling {
		body.SetTargetSpeed(ceiling)
	}

	return true
}
