package workers

import (
	"context"
	"frog-pond/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWindowResetWorker_ResetsOnEveryTick(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	pond := mocks.NewMockIPond(ctrl)

	reset := make(chan struct{}, 10)
	pond.EXPECT().ResetWindow().Do(func() { reset <- struct{}{} }).MinTimes(2)

	worker := NewWindowResetWorker(log, pond, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- worker.Run(ctx) }()

	// When two windows elapse
	for i := 0; i < 2; i++ {
		select {
		case <-reset:
		case <-time.After(time.Second):
			req.Fail("Window was not reset")
		}
	}

	// Then the worker stops with its context
	cancel()
	req.NoError(<-done)
}
