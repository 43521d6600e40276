package runtime

import (
	"frog-pond/contract"
	"sort"
	"sync"
)

// Registry keeps the snapshot sinks of the surfaces currently watching the pond.
type Registry struct {
	mu          sync.RWMutex
	subscribers map[string]contract.SnapshotSink // map subscriber -> Sink
}

func NewRegistry() *Registry {
	return &Registry{subscribers: make(map[string]contract.SnapshotSink)}
}

// Sinks returns the active sinks ordered by subscriber id.
// Returns nil if nobody is watching.
func (r *Registry) Sinks() []contract.SnapshotSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.subscribers) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.subscribers))
	for id := range r.subscribers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	sinks := make([]contract.SnapshotSink, 0, len(ids))
	for _, id := range ids {
		sinks = append(sinks, r.subscribers[id])
	}
	return sinks
}

// Subscribe registers a sink. Subscribing twice with the same id replaces the sink.
func (r *Registry) Subscribe(subscriberID string, sink contract.SnapshotSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers[subscriberID] = sink
}

func (r *Registry) Unsubscribe(subscriberID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subscribers, subscriberID)
}
