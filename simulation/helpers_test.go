package simulation

import (
	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/terrain"
)

// fakeBus records every notification synchronously.
type fakeBus struct {
	events []fakeEvent
}

type fakeEvent struct {
	name    string
	payload interface{}
}

func (bus *fakeBus) Notify(event string, payload interface{}) {
	bus.events = append(bus.events, fakeEvent{name: event, payload: payload})
}

func (bus *fakeBus) Subscribe(event string, handler func(payload interface{})) func() {
	return func() {}
}

func (bus *fakeBus) count(event string) int {
	n := 0
	for _, recorded := range bus.events {
		if recorded.name == event {
			n++
		}
	}
	return n
}

func (bus *fakeBus) last(event string) (interface{}, bool) {
	for i := len(bus.events) - 1; i >= 0; i-- {
		if bus.events[i].name == event {
			return bus.events[i].payload, true
		}
	}
	return nil, false
}

// fakeRocks always answers with the same rock when it is in range.
type fakeRocks struct {
	rock commontypes.RockPoint
}

func (rocks *fakeRocks) NearestRock(x float64, z float64, within float64) (commontypes.RockPoint, bool) {
	dx := rocks.rock.X - x
	dz := rocks.rock.Z - z

	if dx*dx+dz*dz > within*within {
		return commontypes.RockPoint{}, false
	}

	return rocks.rock, true
}

const testWorldSize = 1000.0
const testWorldHeight = 10.0

func newTestSim(bus *fakeBus) *Simulation {
	return NewSimulation(
		terrain.FlatTerrain{Width: testWorldSize, Depth: testWorldSize, Height: testWorldHeight},
		nil,
		bus,
		DefaultTuning(),
		42,
	)
}

func newTestSimWithRocks(bus *fakeBus, rocks commontypes.RockProvider) *Simulation {
	return NewSimulation(
		terrain.FlatTerrain{Width: testWorldSize, Depth: testWorldSize, Height: testWorldHeight},
		rocks,
		bus,
		DefaultTuning(),
		42,
	)
}
