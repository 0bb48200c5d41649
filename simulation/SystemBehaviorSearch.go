package simulation

import (
	"math"

	"github.com/marsyard/marsyard/common/utils/vector"
)

// searchProfile parametrizes the think-then-seek searches. The rover
// ponders for thinkMs while drifting in a zig-zag, then commits to a
// randomized point inside its angular/distance envelope; on arrival the
// search succeeds with successChance and the rover dwells, or fails and
// immediately starts over.
type searchProfile struct {
	thinkMs       float64
	minDistance   float64
	maxDistance   float64
	halfAngleRad  float64
	successChance float64
	dwellMs       float64
}

var searchProfiles = map[string]searchProfile{
	GoalFindWater: {
		thinkMs:       1200,
		minDistance:   60,
		maxDistance:   140,
		halfAngleRad:  math.Pi / 3,
		successChance: 0.35,
		dwellMs:       2500,
	},
	GoalFindGoodWeather: {
		thinkMs:       900,
		minDistance:   80,
		maxDistance:   180,
		halfAngleRad:  math.Pi / 2,
		successChance: 0.5,
		dwellMs:       2000,
	},
	GoalFindGoodSoil: {
		thinkMs:       1500,
		minDistance:   40,
		maxDistance:   100,
		halfAngleRad:  math.Pi / 4,
		successChance: 0.4,
		dwellMs:       3000,
	},
}

// behaviorFindRocks asks the rock provider for the nearest rock within
// sensor range and goes to examine it; with no provider or no rock in
// range the rover falls back to wandering.
func behaviorFindRocks(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64) {
	if behavior.dwelling(sim.clock) {
		// examining the rock
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		return
	}

	if behavior.GetTargetPosition() == nil {
		if sim.rocks == nil {
			behaviorRandom(sim, body, behavior, deltaTimeMs)
			return
		}

		x, z := body.GetPosition().Get()
		rock, found := sim.rocks.NearestRock(x, z, body.GetSensorRange())
		if !found {
			behaviorRandom(sim, body, behavior, deltaTimeMs)
			return
		}

		behavior.setTargetPosition(vector.MakeVector2(rock.X, rock.Z))
	}

	target := *behavior.GetTargetPosition()

	if body.GetPosition().DistanceTo(target) < sim.tuning.RockArriveRadius {
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		behavior.startDwell(sim.clock + sim.tuning.RockDwellMs)
		behavior.clearTargetPosition()
		return
	}

	sim.moveTowardPoint(body, target, deltaTimeMs)
}

func behaviorSearch(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64, profile searchProfile) {
	if behavior.dwelling(sim.clock) {
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		return
	}

	if behavior.GetTargetPosition() == nil {
		behavior.thinkTime += deltaTimeMs

		if behavior.thinkTime < profile.thinkMs {
			behaviorThinkDrift(sim, body, behavior, deltaTimeMs)
			return
		}

		behavior.thinkTime = 0

		heading := body.GetDirection().Angle()
		angle := heading + (sim.rng.Float64()*2-1)*profile.halfAngleRad
		distance := profile.minDistance + sim.rng.Float64()*(profile.maxDistance-profile.minDistance)

		point := body.GetPosition().Add(vector.MakeVector2FromAngle(angle).MultScalar(distance))
		behavior.setTargetPosition(sim.clampPointToBounds(point))
	}

	target := *behavior.GetTargetPosition()

	if body.GetPosition().DistanceTo(target) < sim.tuning.SearchArriveRadius {
		behavior.clearTargetPosition()

		if sim.rng.Float64() < profile.successChance {
			body.SetSpeed(0)
			body.SetTargetSpeed(0)
			behavior.startDwell(sim.clock + profile.dwellMs)
		}
		// on failure the next tick starts a fresh think cycle

		return
	}

	sim.moveTowardPoint(body, target, deltaTimeMs)
}

// behaviorThinkDrift keeps a pondering rover in slow lateral zig-zag
// motion instead of standing still.
func behaviorThinkDrift(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64) {
	behavior.zigzagPhase += deltaTimeMs / 1000 * 2 * math.Pi * 0.5 // 0.5 Hz weave

	weave := math.Sin(behavior.zigzagPhase) * 0.35
	body.SetTargetDirection(body.GetDirection().Rotate(weave))
	body.SetTargetSpeed(body.GetEffectiveMaxSpeed() * sim.tuning.MinApproachFraction)

	sim.moveForward(body, deltaTimeMs)
}

// behaviorFindFlatSurface probes the terrain on a ring around the rover,
// heads for the lowest sample and dwells there if the ground turned out
// flat enough, otherwise discards the sample and probes again.
func behaviorFindFlatSurface(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64) {
	if behavior.dwelling(sim.clock) {
		body.SetSpeed(0)
		body.SetTargetSpeed(0)
		return
	}

	if behavior.GetTargetPosition() == nil {
		samples := sim.tuning.FlatRingSamples
		radius := body.GetSensorRange()
		center := body.GetPosition()

		best := vector.MakeNullVector2()
		bestHeight := math.Inf(1)

		for i := 0; i < samples; i++ {
			angle := float64(i) / float64(samples) * 2 * math.Pi
			point := sim.clampPointToBounds(center.Add(vector.MakeVector2FromAngle(angle).MultScalar(radius)))

			height := sim.terrain.GetHeightAtPosition(point.GetX(), point.GetZ())
			if height < bestHeight {
				bestHeight = height
				best = point
			}
		}

		behavior.setTargetPosition(best)
		behavior.sampleHeight = sim.terrain.GetHeightAtPosition(center.GetX(), center.GetZ())
	}

	target := *behavior.GetTargetPosition()

	if body.GetPosition().DistanceTo(target) < sim.tuning.SearchArriveRadius {
		behavior.clearTargetPosition()

		endHeight := sim.terrain.GetHeightAtPosition(target.GetX(), target.GetZ())
		if math.Abs(endHeight-behavior.sampleHeight) <= sim.tuning.FlatnessThreshold {
			body.SetSpeed(0)
			body.SetTargetSpeed(0)
			behavior.startDwell(sim.clock + sim.tuning.FlatDwellMs)
		}

		return
	}

	sim.moveTowardPoint(body, target, deltaTimeMs)
}
