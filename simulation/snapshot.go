package simulation

import (
	"github.com/marsyard/marsyard/common/utils/vector"
)

// RoverSnapshot is the mesh-independent state of one rover, published with
// every notification and served by the query accessors. It is a copy;
// holding one never aliases live simulation state.
type RoverSnapshot struct {
	ID           string         `json:"id"`
	Position     vector.Vector2 `json:"position"`
	Height       float64        `json:"height"`
	Direction    vector.Vector2 `json:"direction"`
	Speed        float64        `json:"speed"`
	Task         string         `json:"task"`
	BehaviorGoal string         `json:"behaviorGoal"`
	Capabilities Capabilities   `json:"capabilities"`
	Distress     bool           `json:"distress"`
	Selected     bool           `json:"selected"`
}

func (sim *Simulation) makeSnapshot(id string, body *PhysicalBody, battery *Battery, behavior *Behavior) RoverSnapshot {
	return RoverSnapshot{
		ID:           id,
		Position:     body.GetPosition(),
		Height:       body.GetHeight(),
		Direction:    body.GetDirection(),
		Speed:        body.GetSpeed(),
		Task:         behavior.GetTask(),
		BehaviorGoal: behavior.GetGoal(),
		Capabilities: sim.assembleCapabilities(body, battery),
		Distress:     battery.IsDistressed(),
		Selected:     sim.selectedID == id,
	}
}

func (sim *Simulation) assembleCapabilities(body *PhysicalBody, battery *Battery) Capabilities {
	return Capabilities{
		MaxSpeed:         body.GetMaxSpeed(),
		TurnRate:         body.GetTurnRate(),
		SensorRange:      body.GetSensorRange(),
		BatteryCapacity:  battery.GetCapacity(),
		BatteryLevel:     battery.GetLevel(),
		BatteryDrainRate: battery.GetDrainRate(),
	}
}
