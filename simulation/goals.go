package simulation

// Behavior goals selectable through task assignment. The UI task labels are
// literally these identifiers.
const (
	GoalRandom          = "random"
	GoalPatrol          = "patrol"
	GoalFindRocks       = "findRocks"
	GoalFindWater       = "findWater"
	GoalFindGoodWeather = "findGoodWeather"
	GoalFindGoodSoil    = "findGoodSoil"
	GoalFindFlatSurface = "findFlatSurface"
	GoalStandby         = "standby"
)

var knownGoals = map[string]bool{
	GoalRandom:          true,
	GoalPatrol:          true,
	GoalFindRocks:       true,
	GoalFindWater:       true,
	GoalFindGoodWeather: true,
	GoalFindGoodSoil:    true,
	GoalFindFlatSurface: true,
	GoalStandby:         true,
}

// NormalizeGoal maps unknown goal names to the random fallback.
func NormalizeGoal(goal string) string {
	if knownGoals[goal] {
		return goal
	}

	return GoalRandom
}
