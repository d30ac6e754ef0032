package ws

import (
	"sync/atomic"
)

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyModelRetrained(version string, f1 float64) {
	defaultHub.Load().Broadcast(ModelRetrainedEvent{Version: version, F1: f1})
}

func NotifyModelReloaded(loaded bool) {
	defaultHub.Load().Broadcast(ModelReloadedEvent{ModelLoaded: loaded})
}

// Notifier adapts the package-level broadcasts to the usecase layer's
// notification interface.
type Notifier struct{}

func (Notifier) NotifyModelRetrained(version string, f1 float64) {
	NotifyModelRetrained(version, f1)
}

func (Notifier) NotifyModelReloaded(loaded bool) {
	NotifyModelReloaded(loaded)
}
