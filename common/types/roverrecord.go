package types

// PlanePoint is an (x, z) pair as persisted by the progress backend.
type PlanePoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// CapabilityRecord is the persisted capability bag of a rover.
type CapabilityRecord struct {
	MaxSpeed         float64 `json:"maxSpeed"`
	TurnRate         float64 `json:"turnRate"`
	SensorRange      float64 `json:"sensorRange"`
	BatteryCapacity  float64 `json:"batteryCapacity"`
	BatteryLevel     float64 `json:"batteryLevel"`
	BatteryDrainRate float64 `json:"batteryDrainRate"`
}

// RoverRecord is the flat per-rover progress record exchanged with the
// persistence backend. Position and Coordinates carry the same (x, z) pair;
// the backend historically stored both and the shape is kept for
// save/restore round-tripping. Values are rounded to 2 decimals.
type RoverRecord struct {
	RobotID      string           `json:"robotId"`
	Position     PlanePoint       `json:"position"`
	Height       float64          `json:"height"`
	Coordinates  PlanePoint       `json:"coordinates"`
	BehaviorGoal string           `json:"behaviorGoal"`
	Speed        float64          `json:"speed"`
	Capabilities CapabilityRecord `json:"capabilities"`
}
