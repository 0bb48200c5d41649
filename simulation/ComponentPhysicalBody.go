package simulation

import (
	"github.com/marsyard/marsyard/common/utils/vector"
)

func (sim *Simulation) CastPhysicalBody(data interface{}) *PhysicalBody {
	return data.(*PhysicalBody)
}

// PhysicalBody holds the physical state of a rover on the terrain plane.
// position (x, z) is authoritative simulation state; height (y) is derived
// from the terrain each tick. direction is kept unit-length.
type PhysicalBody struct {
	position  vector.Vector2
	height    float64
	direction vector.Vector2
	speed     float64

	targetDirection *vector.Vector2
	targetSpeed     *float64

	maxSpeed    float64 // nominal capability ceiling
	turnRate    float64 // rad/s before the integrator multiplier
	sensorRange float64

	// battery-degraded ceiling, refreshed by the battery system each tick
	effectiveMaxSpeed float64
}

func (p PhysicalBody) GetPosition() vector.Vector2 {
	return p.position
}

func (p *PhysicalBody) SetPosition(position vector.Vector2) *PhysicalBody {
	p.position = position
	return p
}

func (p PhysicalBody) GetHeight() float64 {
	return p.height
}

func (p *PhysicalBody) SetHeight(height float64) *PhysicalBody {
	p.height = height
	return p
}

func (p PhysicalBody) GetDirection() vector.Vector2 {
	return p.direction
}

func (p *PhysicalBody) SetDirection(direction vector.Vector2) *PhysicalBody {
	p.direction = direction
	return p
}

func (p PhysicalBody) GetSpeed() float64 {
	return p.speed
}

func (p *PhysicalBody) SetSpeed(speed float64) *PhysicalBody {
	p.speed = speed
	return p
}

func (p PhysicalBody) GetTargetDirection() *vector.Vector2 {
	return p.targetDirection
}

func (p *PhysicalBody) SetTargetDirection(direction vector.Vector2) *PhysicalBody {
	d := direction
	p.targetDirection = &d
	return p
}

func (p *PhysicalBody) ClearTargetDirection() *PhysicalBody {
	p.targetDirection = nil
	return p
}

func (p PhysicalBody) GetTargetSpeed() *float64 {
	return p.targetSpeed
}

func (p *PhysicalBody) SetTargetSpeed(speed float64) *PhysicalBody {
	s := speed
	p.targetSpeed = &s
	return p
}

func (p *PhysicalBody) ClearTargetSpeed() *PhysicalBody {
	p.targetSpeed = nil
	return p
}

func (p PhysicalBody) GetMaxSpeed() float64 {
	return p.maxSpeed
}

func (p *PhysicalBody) SetMaxSpeed(maxSpeed float64) *PhysicalBody {
	p.maxSpeed = maxSpeed
	return p
}

func (p PhysicalBody) GetTurnRate() float64 {
	return p.turnRate
}

func (p *PhysicalBody) SetTurnRate(turnRate float64) *PhysicalBody {
	p.turnRate = turnRate
	return p
}

func (p PhysicalBody) GetSensorRange() float64 {
	return p.sensorRange
}

func (p *PhysicalBody) SetSensorRange(sensorRange float64) *PhysicalBody {
	p.sensorRange = sensorRange
	return p
}

// GetEffectiveMaxSpeed is the speed ceiling the behaviors steer against;
// it equals maxSpeed on a healthy battery and shrinks as charge depletes.
func (p PhysicalBody) GetEffectiveMaxSpeed() float64 {
	return p.effectiveMaxSpeed
}

func (p *PhysicalBody) SetEffectiveMaxSpeed(maxSpeed float64) *PhysicalBody {
	p.effectiveMaxSpeed = maxSpeed
	return p
}
