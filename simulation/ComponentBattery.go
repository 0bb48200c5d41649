package simulation

func (sim *Simulation) CastBattery(data interface{}) *Battery {
	return data.(*Battery)
}

// Battery holds the charge state of a rover.
type Battery struct {
	capacity  float64
	level     float64
	drainRate float64 // charge units per second at rest

	distress bool
}

func (b Battery) GetCapacity() float64 {
	return b.capacity
}

func (b *Battery) SetCapacity(capacity float64) *Battery {
	b.capacity = capacity
	return b
}

func (b Battery) GetLevel() float64 {
	return b.level
}

func (b *Battery) SetLevel(level float64) *Battery {
	b.level = level
	return b
}

func (b Battery) GetDrainRate() float64 {
	return b.drainRate
}

func (b *Battery) SetDrainRate(drainRate float64) *Battery {
	b.drainRate = drainRate
	return b
}

func (b Battery) ChargeFraction() float64 {
	if b.capacity <= 0 {
		return 0
	}

	return b.level / b.capacity
}

func (b Battery) IsDead() bool {
	return b.level <= 0
}

// IsDistressed reports the cosmetic low-charge distress flag; it never
// feeds back into the simulation numerics.
func (b Battery) IsDistressed() bool {
	return b.distress
}

func (b *Battery) setDistress(distress bool) *Battery {
	b.distress = distress
	return b
}
