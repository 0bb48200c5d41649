package main

import (
	"encoding/json"

	"github.com/marsyard/marsyard/common/utils"
	"github.com/marsyard/marsyard/simulation"
)

// Command frames sent by the viz client over the websocket.
type vizCommand struct {
	Type         string                          `json:"type"`
	RoverID      string                          `json:"roverId"`
	Task         string                          `json:"task"`
	Capabilities *simulation.PartialCapabilities `json:"capabilities"`
}

func applyCommand(sim *simulation.Simulation, raw string) {
	var command vizCommand
	if err := json.Unmarshal([]byte(raw), &command); err != nil {
		utils.Debug("rover-server", "Ignoring malformed command "+raw)
		return
	}

	switch command.Type {
	case "createRover":
		sim.CreateRover(nil)
	case "removeRover":
		sim.RemoveRover(command.RoverID)
	case "selectRover":
		sim.SelectRover(command.RoverID)
	case "clearSelection":
		sim.ClearSelection()
	case "setTask":
		sim.SetTask(command.RoverID, command.Task)
	case "setCapabilities":
		if command.Capabilities != nil {
			sim.SetCapabilities(command.RoverID, *command.Capabilities)
		}
	default:
		utils.Debug("rover-server", "Unknown command type "+command.Type)
	}
}
