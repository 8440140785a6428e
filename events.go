package qedarray

import (
	"context"

	"github.com/guiguan/caster"
)

// InsertEvent is published to watchers whenever an insert has completed.
type InsertEvent struct {
	Position []int // insertion position
	Block    []int // block size
	Extents  []int // extents after the insert
}

// watchBuffer is the channel capacity of a watcher subscription.
const watchBuffer = 16

// Watch subscribes to completion events of the array. Events are of type
// InsertEvent. The subscription ends when ctx is done or after StopWatching.
// Watchers must keep up with the events, as publishing waits for slow
// subscribers.
func (a *Array[T]) Watch(ctx context.Context) (<-chan interface{}, bool) {
	if a.cast == nil {
		a.cast = caster.New(nil)
	}
	ch, ok := a.cast.Sub(ctx, watchBuffer)
	return ch, ok
}

// StopWatching closes all watcher subscriptions.
func (a *Array[T]) StopWatching() {
	if a.cast == nil {
		return
	}
	a.cast.Close()
	a.cast = nil
}

func (a *Array[T]) publish(ev InsertEvent) {
	if a.cast == nil {
		return
	}
	if !a.cast.Pub(ev) {
		tracer().P("insert", ev.Position).Infof("completion event not published, caster closed")
	}
}
