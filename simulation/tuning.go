package simulation

import (
	"github.com/marsyard/marsyard/common/utils/number"
)

// Tuning gathers the numeric constants of the simulation in one place.
// Earlier iterations of the engine carried divergent copies of these values
// at every call site; they are consolidated here and overridable per host.
// None of them is a contract, only the invariants asserted in the tests are.
type Tuning struct {
	// movement integrator
	TurnRateMultiplier  float64 `yaml:"turn_rate_multiplier"`  // scales capability turnRate into rad/s
	Acceleration        float64 `yaml:"acceleration"`          // fractional approach factor per 100ms
	MinSpeedFloor       float64 `yaml:"min_speed_floor"`       // lowest nonzero speed while targetSpeed > 0
	NearThreshold       float64 `yaml:"near_threshold"`        // distance under which approach speed ramps down
	MinApproachFraction float64 `yaml:"min_approach_fraction"` // fraction of maxSpeed kept at distance 0
	ForwardBias         float64 `yaml:"forward_bias"`          // favors forward progress while turning
	SpeedScale          float64 `yaml:"speed_scale"`           // world units per second for speed 1.0

	// world
	BoundsMargin   float64 `yaml:"bounds_margin"`    // kept distance to the terrain half-extents
	RoverClearance float64 `yaml:"rover_clearance"`  // height offset above the sampled terrain
	FallbackHeight float64 `yaml:"fallback_height"`  // used when the height provider resolves ~0
	NearZeroHeight float64 `yaml:"near_zero_height"` // threshold under which a height counts as unresolved

	// registry
	EmitIntervalMs float64 `yaml:"emit_interval_ms"` // roverUpdated throttle floor per rover

	// battery
	SpeedDrainFactor   float64 `yaml:"speed_drain_factor"`   // quadratic speed penalty factor
	TurnDrainRate      float64 `yaml:"turn_drain_rate"`      // flat drain per second while turning
	LowBatteryFraction float64 `yaml:"low_battery_fraction"` // below this charge fraction, speed degrades
	DegradedSpeedFloor float64 `yaml:"degraded_speed_floor"` // effective ceiling never drops below this fraction
	DistressFraction   float64 `yaml:"distress_fraction"`    // below this charge fraction, distress flag

	// behaviors
	MoveIntervalMinMs  float64 `yaml:"move_interval_min_ms"` // random gait: shortest heading-change period
	MoveIntervalMaxMs  float64 `yaml:"move_interval_max_ms"`
	SmallTurnMaxRad    float64 `yaml:"small_turn_max_rad"`
	LargeTurnMaxRad    float64 `yaml:"large_turn_max_rad"`
	SmallTurnChance    float64 `yaml:"small_turn_chance"`
	BaseSpeedFraction  float64 `yaml:"base_speed_fraction"` // random gait cruise speed, fraction of maxSpeed
	SpeedJitter        float64 `yaml:"speed_jitter"`        // +-20% around the cruise speed
	WaypointRadius     float64 `yaml:"waypoint_radius"`     // patrol arrival radius
	PatrolRadiusFactor float64 `yaml:"patrol_radius_factor"` // patrol square radius = factor * sensorRange
	PatrolSlowdownMs   float64 `yaml:"patrol_slowdown_ms"`   // reduced-speed span after reaching a waypoint
	RockArriveRadius   float64 `yaml:"rock_arrive_radius"`
	RockDwellMs        float64 `yaml:"rock_dwell_ms"` // examine time on a rock
	SearchArriveRadius float64 `yaml:"search_arrive_radius"`
	FlatRingSamples    int     `yaml:"flat_ring_samples"`  // terrain probes around the rover
	FlatnessThreshold  float64 `yaml:"flatness_threshold"` // max height delta still considered flat
	FlatDwellMs        float64 `yaml:"flat_dwell_ms"`
}

func DefaultTuning() Tuning {
	return Tuning{
		TurnRateMultiplier:  2.5,
		Acceleration:        1.0,
		MinSpeedFloor:       0.2,
		NearThreshold:       20.0,
		MinApproachFraction: 0.4,
		ForwardBias:         1.4,
		SpeedScale:          10.0,

		BoundsMargin:   5.0,
		RoverClearance: 2.0,
		FallbackHeight: 5.0,
		NearZeroHeight: 0.1,

		EmitIntervalMs: 100,

		SpeedDrainFactor:   0.01,
		TurnDrainRate:      0.005,
		LowBatteryFraction: 0.2,
		DegradedSpeedFloor: 0.3,
		DistressFraction:   0.05,

		MoveIntervalMinMs:  1500,
		MoveIntervalMaxMs:  5000,
		SmallTurnMaxRad:    number.DegreeToRadian(15),
		LargeTurnMaxRad:    number.DegreeToRadian(45),
		SmallTurnChance:    0.6,
		BaseSpeedFraction:  0.6,
		SpeedJitter:        0.2,
		WaypointRadius:     15.0,
		PatrolRadiusFactor: 2.0,
		PatrolSlowdownMs:   800,
		RockArriveRadius:   15.0,
		RockDwellMs:        2000,
		SearchArriveRadius: 12.0,
		FlatRingSamples:    8,
		FlatnessThreshold:  1.5,
		FlatDwellMs:        2500,
	}
}
