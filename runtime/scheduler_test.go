package runtime

import (
	"frog-pond/domain"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScheduler_Schedule_Fires(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	fired := make(chan domain.FrogID, 1)

	scheduler.Schedule(domain.Frog1, 10*time.Millisecond, func() { fired <- domain.Frog1 })
	req.Equal(1, scheduler.Pending())

	select {
	case id := <-fired:
		req.Equal(domain.Frog1, id)
	case <-time.After(time.Second):
		req.Fail("Callback did not fire")
	}
	req.Eventually(func() bool { return scheduler.Pending() == 0 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_Schedule_ReplacesPendingForSameFrog(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	var first, second atomic.Int32

	// Given a long reversion replaced by a short one
	scheduler.Schedule(domain.Frog2, 30*time.Millisecond, func() { first.Add(1) })
	scheduler.Schedule(domain.Frog2, 60*time.Millisecond, func() { second.Add(1) })
	req.Equal(1, scheduler.Pending())

	// Then only the latest callback fires
	req.Eventually(func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	req.Zero(first.Load())
}

func TestScheduler_Schedule_IndependentFrogs(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	var calls atomic.Int32

	scheduler.Schedule(domain.Frog1, 10*time.Millisecond, func() { calls.Add(1) })
	scheduler.Schedule(domain.Frog3, 10*time.Millisecond, func() { calls.Add(1) })
	req.Equal(2, scheduler.Pending())

	req.Eventually(func() bool { return calls.Load() == 2 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_Cancel(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	var calls atomic.Int32

	scheduler.Schedule(domain.Frog1, 20*time.Millisecond, func() { calls.Add(1) })

	req.True(scheduler.Cancel(domain.Frog1))
	req.False(scheduler.Cancel(domain.Frog1))
	req.Zero(scheduler.Pending())

	time.Sleep(50 * time.Millisecond)
	req.Zero(calls.Load())
}

func TestScheduler_Stop(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	var calls atomic.Int32

	scheduler.Schedule(domain.Frog1, 20*time.Millisecond, func() { calls.Add(1) })
	scheduler.Stop()

	// Then new callbacks are refused
	scheduler.Schedule(domain.Frog2, time.Millisecond, func() { calls.Add(1) })
	req.Zero(scheduler.Pending())

	time.Sleep(50 * time.Millisecond)
	req.Zero(calls.Load())
}

func TestScheduler_Claim_OnlyCurrentToken(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	t.Cleanup(scheduler.Stop)
	tokens := make(chan uint64, 2)

	// Given a reversion replaced before anyone claims it
	scheduler.ScheduleToken(domain.Frog1, time.Hour, func(token uint64) { tokens <- token })
	scheduler.ScheduleToken(domain.Frog1, time.Millisecond, func(token uint64) { tokens <- token })

	var latest uint64
	select {
	case latest = <-tokens:
	case <-time.After(time.Second):
		req.Fail("Callback did not fire")
	}

	// Then the old token is refused and the current one is claimed once
	req.False(scheduler.Claim(domain.Frog1, latest-1))
	req.Equal(1, scheduler.Pending())
	req.True(scheduler.Claim(domain.Frog1, latest))
	req.False(scheduler.Claim(domain.Frog1, latest))
	req.Zero(scheduler.Pending())
}

func TestScheduler_Claim_AfterStop(t *testing.T) {
	req := require.New(t)
	scheduler := NewScheduler()
	tokens := make(chan uint64, 1)

	scheduler.ScheduleToken(domain.Frog2, time.Millisecond, func(token uint64) {
		scheduler.Stop()
		tokens <- token
	})

	select {
	case token := <-tokens:
		req.False(scheduler.Claim(domain.Frog2, token))
	case <-time.After(time.Second):
		req.Fail("Callback did not fire")
	}
}
