package simulation

// Behavior selector: one handler per goal, dispatched every tick for every
// live rover. Handlers mutate the steering setpoints and invoke the
// movement integrator primitives; they never touch another rover.

func systemBehavior(sim *Simulation, body *PhysicalBody, battery *Battery, behavior *Behavior, deltaTimeMs float64) {
	switch NormalizeGoal(behavior.GetGoal()) {
	case GoalPatrol:
		behaviorPatrol(sim, body, behavior, deltaTimeMs)
	case GoalFindRocks:
		behaviorFindRocks(sim, body, behavior, deltaTimeMs)
	case GoalFindWater:
		behaviorSearch(sim, body, behavior, deltaTimeMs, searchProfiles[GoalFindWater])
	case GoalFindGoodWeather:
		behaviorSearch(sim, body, behavior, deltaTimeMs, searchProfiles[GoalFindGoodWeather])
	case GoalFindGoodSoil:
		behaviorSearch(sim, body, behavior, deltaTimeMs, searchProfiles[GoalFindGoodSoil])
	case GoalFindFlatSurface:
		behaviorFindFlatSurface(sim, body, behavior, deltaTimeMs)
	case GoalStandby:
		behaviorStandby(body)
	default:
		behaviorRandom(sim, body, behavior, deltaTimeMs)
	}
}

// behaviorRandom wanders: every moveInterval (randomized) the rover picks a
// new heading, mostly small corrections with the occasional wider turn, and
// jitters its cruise speed. Between changes it keeps going straight.
func behaviorRandom(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64) {
	if behavior.moveInterval <= 0 {
		behavior.moveInterval = sim.randomMoveInterval()
	}

	behavior.moveTimer += deltaTimeMs

	if behavior.moveTimer >= behavior.moveInterval {
		behavior.moveTimer = 0
		behavior.moveInterval = sim.randomMoveInterval()

		var turn float64
		if sim.rng.Float64() < sim.tuning.SmallTurnChance {
			turn = (sim.rng.Float64()*2 - 1) * sim.tuning.SmallTurnMaxRad
		} else {
			turn = (sim.rng.Float64()*2 - 1) * sim.tuning.LargeTurnMaxRad
		}

		body.SetTargetDirection(body.GetDirection().Rotate(turn))

		jitter := 1 + (sim.rng.Float64()*2-1)*sim.tuning.SpeedJitter
		cruise := body.GetEffectiveMaxSpeed() * sim.tuning.BaseSpeedFraction * jitter
		body.SetTargetSpeed(cruise)
	}

	sim.moveForward(body, deltaTimeMs)
}

func (sim *Simulation) randomMoveInterval() float64 {
	spread := sim.tuning.MoveIntervalMaxMs - sim.tuning.MoveIntervalMinMs
	return sim.tuning.MoveIntervalMinMs + sim.rng.Float64()*spread
}

// behaviorPatrol walks a square path built lazily around the rover's
// position when the goal was assigned. On reaching a waypoint the rover
// slows briefly, then resumes toward the next corner at near-max speed.
func behaviorPatrol(sim *Simulation, body *PhysicalBody, behavior *Behavior, deltaTimeMs float64) {
	if len(behavior.patrolPoints) == 0 {
		behavior.patrolPoints = sim.buildPatrolSquare(body)
		behavior.patrolIndex = 0
	}

	target := behavior.patrolPoints[behavior.patrolIndex]

	if body.GetPosition().DistanceTo(target) < sim.tuning.WaypointRadius {
		behavior.patrolIndex = (behavior.patrolIndex + 1) % len(behavior.patrolPoints)
		behavior.startDwell(sim.clock + sim.tuning.PatrolSlowdownMs)
		target = behavior.patrolPoints[behavior.patrolIndex]
	}

	sim.moveTowardPoint(body, target, deltaTimeMs)

	// the post-waypoint slowdown overrides the seek speed until it expires
	if behavior.dwelling(sim.clock) {
		body.SetTargetSpeed(body.GetEffectiveMaxSpeed() * sim.tuning.MinApproachFraction)
	}
}

// behaviorStandby parks the rover.
func behaviorStandby(body *PhysicalBody) {
	body.SetSpeed(0)
	body.SetTargetSpeed(0)
}
