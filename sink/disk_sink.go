package sink

import (
	"context"
	"frog-pond/contract"
	"frog-pond/domain"
	"frog-pond/repositories"
	"log/slog"
	"sync"
)

var _ contract.SnapshotSink = (*DiskSink)(nil)

// DiskSink copies the chat log of each snapshot into the message repository.
// The log only grows, so it remembers how many messages are already stored.
type DiskSink struct {
	mu         sync.Mutex
	repository repositories.IMessageRepository
	log        *slog.Logger
	stored     int
}

func NewDiskSink(repository repositories.IMessageRepository, log *slog.Logger) *DiskSink {
	return &DiskSink{repository: repository, log: log}
}

func (d *DiskSink) Consume(ctx context.Context, snapshot domain.State) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for d.stored < len(snapshot.Messages) {
		if err := ctx.Err(); err != nil {
			return err
		}
		message := snapshot.Messages[d.stored]
		if err := d.repository.StoreMessage(repositories.FromMessage(message)); err != nil {
			return err
		}
		d.stored++
	}
	return nil
}
