package workers

import (
	"context"
	"frog-pond/contract"
	"frog-pond/domain"
	"log/slog"
	"time"
)

var _ contract.Worker = (*SnapshotFanout)(nil)

// SinkSource lists sinks that come and go while the process runs.
type SinkSource interface {
	Sinks() []contract.SnapshotSink
}

// SnapshotFanout broadcasts pond snapshots to every in-process consumer.
//
// It provides best-effort delivery with no retries: a sink that fails or
// exceeds the sink timeout only loses that snapshot.
type SnapshotFanout struct {
	log         *slog.Logger
	snapshots   chan domain.State
	sinkTimeout time.Duration
	sinks       []contract.SnapshotSink
	source      SinkSource
}

func NewSnapshotFanout(log *slog.Logger, snapshots chan domain.State, sinkTimeout time.Duration) *SnapshotFanout {
	return &SnapshotFanout{log: log, snapshots: snapshots, sinkTimeout: sinkTimeout}
}

// Add registers permanent sinks.
func (w *SnapshotFanout) Add(sinks ...contract.SnapshotSink) *SnapshotFanout {
	w.sinks = append(w.sinks, sinks...)
	return w
}

// WithSource registers the dynamic sinks read at each snapshot.
func (w *SnapshotFanout) WithSource(source SinkSource) *SnapshotFanout {
	w.source = source
	return w
}

func (w *SnapshotFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping snapshot fanout")
			return nil
		case snapshot, ok := <-w.snapshots:
			if !ok {
				w.log.Debug("Channel is closed")
				return nil
			}
			w.Fanout(ctx, snapshot)
		}
	}
}

// Fanout hands the snapshot to each sink in turn, permanent sinks first.
func (w *SnapshotFanout) Fanout(ctx context.Context, snapshot domain.State) {
	sinks := w.sinks
	if w.source != nil {
		sinks = append(append([]contract.SnapshotSink(nil), w.sinks...), w.source.Sinks()...)
	}
	for _, sink := range sinks {
		w.consume(ctx, sink, snapshot)
	}
}

func (w *SnapshotFanout) consume(ctx context.Context, sink contract.SnapshotSink, snapshot domain.State) {
	sinkCtx := ctx
	if w.sinkTimeout > 0 {
		var cancel context.CancelFunc
		sinkCtx, cancel = context.WithTimeout(ctx, w.sinkTimeout)
		defer cancel()
	}
	if err := sink.Consume(sinkCtx, snapshot); err != nil {
		w.log.Warn("Sink failed to consume snapshot", "error", err)
	}
}
