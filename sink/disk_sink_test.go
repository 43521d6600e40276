package sink

import (
	"context"
	"fmt"
	"frog-pond/domain"
	"frog-pond/mocks"
	"frog-pond/repositories"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDiskSink_StoresOnlyNewMessages(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	diskSink := NewDiskSink(repository, log)

	state := domain.NewState(time.Now().UTC())
	welcome := state.Messages[0]
	hello := domain.NewMessage("Alice", "hello", time.Now().UTC())

	gomock.InOrder(
		repository.EXPECT().StoreMessage(repositories.FromMessage(welcome)).Return(nil).Times(1),
		repository.EXPECT().StoreMessage(repositories.FromMessage(hello)).Return(nil).Times(1),
	)

	// Given the first snapshot is stored
	req.NoError(diskSink.Consume(context.Background(), state))

	// When the same log arrives again with one more message
	req.NoError(diskSink.Consume(context.Background(), state))
	state.Messages = append(state.Messages, hello)
	req.NoError(diskSink.Consume(context.Background(), state))
}

func TestDiskSink_RetriesAfterFailure(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	diskSink := NewDiskSink(repository, log)
	state := domain.NewState(time.Now().UTC())

	gomock.InOrder(
		repository.EXPECT().StoreMessage(gomock.Any()).Return(fmt.Errorf("disk full")).Times(1),
		repository.EXPECT().StoreMessage(gomock.Any()).Return(nil).Times(1),
	)

	// When the repository fails, the message is kept for the next snapshot
	req.Error(diskSink.Consume(context.Background(), state))
	req.NoError(diskSink.Consume(context.Background(), state))
}

func TestDiskSink_CancelledContext(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIMessageRepository(ctrl)
	diskSink := NewDiskSink(repository, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req.ErrorIs(diskSink.Consume(ctx, domain.NewState(time.Now().UTC())), context.Canceled)
}
