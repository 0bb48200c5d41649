package simulation

import (
	"math"

	"github.com/marsyard/marsyard/common/utils/trigo"
	"github.com/marsyard/marsyard/common/utils/vector"
)

// Movement integrator: converts the steering setpoints (targetDirection,
// targetSpeed) into frame-consistent changes of direction and speed, and
// applies point-seeking.

// smoothlyUpdateDirectionAndSpeed rotates the heading toward
// targetDirection by at most turnRate*multiplier rad/s along the shorter
// angular path, and chases targetSpeed with a fractional approach rule.
func (sim *Simulation) smoothlyUpdateDirectionAndSpeed(body *PhysicalBody, deltaTimeMs float64) {
	if target := body.GetTargetDirection(); target != nil && !target.IsNull() {
		currentAngle := body.GetDirection().Angle()
		targetAngle := target.Angle()

		diff := trigo.SignedAngularDistance(currentAngle, targetAngle)
		maxTurn := body.GetTurnRate() * sim.tuning.TurnRateMultiplier * deltaTimeMs / 1000

		if math.Abs(diff) <= maxTurn {
			body.SetDirection(target.Normalize())
		} else if diff > 0 {
			body.SetDirection(vector.MakeVector2FromAngle(currentAngle + maxTurn))
		} else {
			body.SetDirection(vector.MakeVector2FromAngle(currentAngle - maxTurn))
		}
	}

	if target := body.GetTargetSpeed(); target != nil {
		speed := body.GetSpeed()
		step := sim.tuning.Acceleration * deltaTimeMs / 100
		if step > 1 {
			step = 1
		}

		speed += (*target - speed) * step

		// fractional approach never quite reaches the setpoint; keep the
		// rover from asymptotically stalling when it is meant to move
		if *target > 0 && speed < sim.tuning.MinSpeedFloor {
			speed = sim.tuning.MinSpeedFloor
		}

		if speed < 0 {
			speed = 0
		}

		body.SetSpeed(speed)
	}
}

// moveTowardPoint steers the rover at the target point and advances its
// position. Near the point the approach speed ramps down linearly to avoid
// overshoot oscillation. Leaving the terrain is recovered locally: the
// rover stops and its target heading is inverted to force a turn-around.
func (sim *Simulation) moveTowardPoint(body *PhysicalBody, target vector.Vector2, deltaTimeMs float64) {
	toTarget := target.Sub(body.GetPosition())
	distance := toTarget.Mag()

	if distance > 0 {
		body.SetTargetDirection(toTarget.DivScalar(distance))
	}

	maxSpeed := body.GetEffectiveMaxSpeed()
	if distance >= sim.tuning.NearThreshold {
		body.SetTargetSpeed(maxSpeed)
	} else {
		fraction := sim.tuning.MinApproachFraction +
			(1-sim.tuning.MinApproachFraction)*(distance/sim.tuning.NearThreshold)
		body.SetTargetSpeed(maxSpeed * fraction)
	}

	sim.smoothlyUpdateDirectionAndSpeed(body, deltaTimeMs)
	sim.advance(body, deltaTimeMs, sim.tuning.ForwardBias)
}

// moveForward advances the rover along its current heading.
func (sim *Simulation) moveForward(body *PhysicalBody, deltaTimeMs float64) {
	sim.smoothlyUpdateDirectionAndSpeed(body, deltaTimeMs)
	sim.advance(body, deltaTimeMs, 1)
}

// advance applies the displacement of one tick, refusing moves that would
// leave the terrain half-extents.
func (sim *Simulation) advance(body *PhysicalBody, deltaTimeMs float64, forwardBias float64) {
	if body.GetSpeed() <= 0 {
		return
	}

	displacement := body.GetDirection().
		MultScalar(body.GetSpeed() * sim.tuning.SpeedScale * forwardBias * deltaTimeMs / 1000)

	tentative := body.GetPosition().Add(displacement)

	halfWidth, halfDepth := sim.halfExtents()
	x, z := tentative.Get()

	if math.Abs(x) > halfWidth-sim.tuning.BoundsMargin ||
		math.Abs(z) > halfDepth-sim.tuning.BoundsMargin {
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		body.SetTargetDirection(body.GetDirection().MultScalar(-1))
		return
	}

	body.SetPosition(tentative)
}

func (sim *Simulation) halfExtents() (float64, float64) {
	width, depth := sim.terrain.GetTerrainDimensions()
	return width / 2, depth / 2
}
