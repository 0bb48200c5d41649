package simulation

import (
	"github.com/marsyard/marsyard/common/utils/vector"
)

func (sim *Simulation) CastBehavior(data interface{}) *Behavior {
	return data.(*Behavior)
}

// Behavior holds the autonomous decision state of a rover: the active goal
// plus the goal's transient working memory. The working memory is reset on
// every goal switch; handlers must tolerate finding it empty.
type Behavior struct {
	goal string
	task string

	// generation increments on every goal switch. Deferred effects (dwell
	// expiry) capture the generation they were armed in and no-op when it
	// no longer matches: the stale-timer cancellation token.
	generation int

	targetPosition *vector.Vector2

	patrolPoints []vector.Vector2
	patrolIndex  int

	thinkTime    float64 // ms accumulated while pondering a search point
	moveTimer    float64 // ms since the last random gait change
	moveInterval float64 // ms between random gait changes

	dwellUntil      float64 // sim-clock ms; 0 = not dwelling
	dwellGeneration int

	sampleHeight float64 // terrain height when a flat-surface seek began
	zigzagPhase  float64
}

func (b Behavior) GetGoal() string {
	return b.goal
}

func (b Behavior) GetTask() string {
	return b.task
}

func (b Behavior) GetTargetPosition() *vector.Vector2 {
	return b.targetPosition
}

func (b *Behavior) setTargetPosition(target vector.Vector2) *Behavior {
	t := target
	b.targetPosition = &t
	return b
}

func (b *Behavior) clearTargetPosition() *Behavior {
	b.targetPosition = nil
	return b
}

func (b Behavior) GetPatrolIndex() int {
	return b.patrolIndex
}

func (b Behavior) GetPatrolPoints() []vector.Vector2 {
	return b.patrolPoints
}

// switchGoal resets the working memory and bumps the generation so any
// in-flight dwell becomes stale.
func (b *Behavior) switchGoal(goal string, task string) *Behavior {
	b.goal = goal
	b.task = task
	b.generation++

	b.targetPosition = nil
	b.patrolPoints = nil
	b.patrolIndex = 0
	b.thinkTime = 0
	b.moveTimer = 0
	b.moveInterval = 0
	b.dwellUntil = 0
	b.sampleHeight = 0
	b.zigzagPhase = 0

	return b
}

// startDwell arms the examine pause until the given sim-clock time.
func (b *Behavior) startDwell(until float64) *Behavior {
	b.dwellUntil = until
	b.dwellGeneration = b.generation
	return b
}

// dwelling reports whether the rover is inside an examine pause. A dwell
// armed under a previous goal is discarded instead of honored.
func (b *Behavior) dwelling(now float64) bool {
	if b.dwellUntil == 0 {
		return false
	}

	if b.dwellGeneration != b.generation {
		b.dwellUntil = 0
		return false
	}

	if now >= b.dwellUntil {
		b.dwellUntil = 0
		return false
	}

	return true
}
