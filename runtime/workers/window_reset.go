package workers

import (
	"context"
	"frog-pond/contract"
	"log/slog"
	"time"
)

var _ contract.Worker = (*WindowResetWorker)(nil)

// WindowResetWorker closes the ribbit counting window at a fixed interval.
type WindowResetWorker struct {
	log      *slog.Logger
	pond     contract.IPond
	interval time.Duration
}

func NewWindowResetWorker(log *slog.Logger, pond contract.IPond, interval time.Duration) *WindowResetWorker {
	return &WindowResetWorker{log: log, pond: pond, interval: interval}
}

func (w *WindowResetWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return nil
		case <-ticker.C:
			w.pond.ResetWindow()
		}
	}
}
