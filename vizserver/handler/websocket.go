package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	notify "github.com/bitly/go-notify"
	"github.com/gorilla/websocket"

	commontypes "github.com/marsyard/marsyard/common/types"
	"github.com/marsyard/marsyard/common/utils"
	"github.com/marsyard/marsyard/vizserver/types"
)

type wsincomingmessage struct {
	messageType int
	p           []byte
	err         error
}

type vizEnvelope struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func Websocket(world *types.VizWorld, bus commontypes.NotificationBus) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		}

		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}

		watcher := types.NewWatcher(c)
		world.SetWatcher(watcher)

		defer func(c *websocket.Conn) {
			world.RemoveWatcher(watcher.GetId())
			c.Close()
			utils.Debug("ws", "disconnected")
		}(c)

		clientclosedsocket := make(chan bool)
		c.SetCloseHandler(func(code int, text string) error {
			clientclosedsocket <- true
			return nil
		})

		// Commands typed in the viz arrive here; reading is also mandatory
		// to notice when the websocket is closed client side
		incomingmsg := make(chan wsincomingmessage)
		go func(client *websocket.Conn, ch chan wsincomingmessage) {
			for {
				messageType, p, err := client.ReadMessage()
				ch <- wsincomingmessage{messageType, p, err}
				if err != nil {
					return
				}
			}
		}(c, incomingmsg)

		// Rover frames published by the simulation loop, funnelled into a
		// single channel so only this goroutine writes on the socket
		frames := make(chan []byte, 64)
		unsubscribes := []func(){
			subscribeFrames(bus, commontypes.EventRoverAdded, frames),
			subscribeFrames(bus, commontypes.EventRoverUpdated, frames),
			subscribeFrames(bus, commontypes.EventRoverSelected, frames),
		}
		defer func() {
			for _, unsubscribe := range unsubscribes {
				unsubscribe()
			}
		}()

		for {
			select {
			case <-clientclosedsocket:
				{
					return
				}
			case msg := <-incomingmsg:
				{
					if msg.err != nil {
						return
					}

					notify.PostTimeout("viz:command", string(msg.p), time.Millisecond)
				}
			case frame := <-frames:
				{
					c.WriteMessage(websocket.TextMessage, frame)
				}
			}
		}
	}
}

func subscribeFrames(bus commontypes.NotificationBus, event string, frames chan []byte) func() {
	return bus.Subscribe(event, func(payload interface{}) {
		data, err := json.Marshal(vizEnvelope{Type: event, Data: payload})
		if err != nil {
			utils.Debug("ws", "Could not marshal "+event+" frame;"+err.Error())
			return
		}

		// drop frames rather than block the bus on a slow watcher
		select {
		case frames <- data:
		default:
		}
	})
}
