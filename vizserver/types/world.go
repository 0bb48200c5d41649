package types

import (
	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils"
)

// VizWorld carries the static scene data shared by every watcher; the
// live rover frames flow over the notification bus.
type VizWorld struct {
	width float64
	depth float64
	rocks []commontypes.RockPoint
	pool  *WatcherMap
}

func NewVizWorld(width float64, depth float64, rocks []commontypes.RockPoint) *VizWorld {
	return &VizWorld{
		width: width,
		depth: depth,
		rocks: rocks,
		pool:  NewWatcherMap(),
	}
}

type VizInitMessageData struct {
	Width float64                 `json:"width"`
	Depth float64                 `json:"depth"`
	Rocks []commontypes.RockPoint `json:"rocks"`
}

type VizInitMessage struct {
	Type string             `json:"type"`
	Data VizInitMessageData `json:"data"`
}

func (world *VizWorld) SetWatcher(watcher *Watcher) {
	world.pool.Set(watcher.GetId(), watcher)

	initMsg := VizInitMessage{
		Type: "init",
		Data: VizInitMessageData{
			Width: world.width,
			Depth: world.depth,
			Rocks: world.rocks,
		},
	}

	err := watcher.conn.WriteJSON(initMsg)
	if err != nil {
		utils.Debug("viz-server", "Could not send VizInitMessage JSON;"+err.Error())
	}
}

func (world *VizWorld) RemoveWatcher(watcherid string) {
	world.pool.Remove(watcherid)
}

func (world *VizWorld) GetNumberWatchers() int {
	return world.pool.Size()
}

func (world *VizWorld) GetDimensions() (float64, float64) {
	return world.width, world.depth
}
