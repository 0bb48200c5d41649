package types

import (
	notify "github.com/bitly/go-notify"
)

// Events emitted by the simulation core. Payloads are rover snapshots
// (or nil for a cleared selection); consumers must not assume synchronous
// delivery.
const (
	EventRoverAdded    = "roverAdded"
	EventRoverUpdated  = "roverUpdated"
	EventRoverSelected = "roverSelected"
)

type NotificationBus interface {
	Notify(event string, payload interface{})
	Subscribe(event string, handler func(payload interface{})) (unsubscribe func())
}

// NotifyBus is the default NotificationBus, fanning notifications out
// through the process-wide go-notify channels.
type NotifyBus struct{}

func NewNotifyBus() *NotifyBus {
	return &NotifyBus{}
}

func (bus *NotifyBus) Notify(event string, payload interface{}) {
	notify.PostTimeout(event, payload, 0)
}

func (bus *NotifyBus) Subscribe(event string, handler func(payload interface{})) func() {
	ch := make(chan interface{}, 64)
	notify.Start(event, ch)

	done := make(chan struct{})

	go func() {
		for {
			select {
			case payload, ok := <-ch:
				if !ok {
					return
				}
				handler(payload)
			case <-done:
				return
			}
		}
	}()

	return func() {
		notify.Stop(event, ch)
		close(done)
	}
}
