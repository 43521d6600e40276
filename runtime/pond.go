package runtime

import (
	"fmt"
	"frog-pond/contract"
	"frog-pond/domain"
	"frog-pond/reaction"
	"log/slog"
	"sync"
	"time"

	"github.com/abadojack/whatlanggo"
)

var _ contract.IPond = (*Pond)(nil)

// Pond is the single source of truth of the widget.
// State only changes through the reducer; every change publishes a snapshot.
type Pond struct {
	mu        sync.Mutex
	log       *slog.Logger
	state     domain.State
	reducer   *reaction.Reducer
	scheduler *Scheduler
	snapshots chan domain.State
}

func NewPond(log *slog.Logger, reducer *reaction.Reducer, scheduler *Scheduler, snapshots chan domain.State) *Pond {
	return &Pond{
		log:       log,
		state:     domain.NewState(time.Now().UTC()),
		reducer:   reducer,
		scheduler: scheduler,
		snapshots: snapshots,
	}
}

func (p *Pond) Dispatch(cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.PostMessageCommand:
		p.Post(c.Author, c.Text)
	case domain.ThrowFlyCommand:
		p.ThrowFly()
	case domain.MakeThemCroakCommand:
		p.MakeThemCroak()
	default:
		p.log.Debug(fmt.Sprintf("Not implemented command : %v", cmd))
	}
}

// Post appends a chat message and lets the frogs react to it.
func (p *Pond) Post(author, text string) reaction.Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	outcome := p.reducer.Apply(p.state, author, text)
	p.state = outcome.State

	p.log.Info("Message posted",
		"author", author,
		"lang", whatlanggo.Detect(text).Lang.Iso6391(),
		"triggers", outcome.Triggers.List(),
		"ribbits", outcome.State.RibbitCount)
	if outcome.Summoned {
		p.log.Info("The Toadfather has been summoned", "ribbits", outcome.State.RibbitCount)
	}

	p.schedule(outcome.Reversions)
	p.publish()
	return outcome
}

func (p *Pond) ThrowFly() {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, reversions := p.reducer.Feed(p.state)
	p.state = next
	p.log.Debug("Fly thrown", "frog", reversions[0].FrogID)
	p.schedule(reversions)
	p.publish()
}

func (p *Pond) MakeThemCroak() {
	p.mu.Lock()
	defer p.mu.Unlock()

	next, reversions := reaction.Chorus(p.state)
	p.state = next
	p.log.Debug("Chorus started")
	p.schedule(reversions)
	p.publish()
}

// ResetWindow starts a new ribbit counting window.
func (p *Pond) ResetWindow() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.RibbitCount == 0 && !p.state.ToadfatherSummoned {
		return
	}
	p.state = reaction.ResetWindow(p.state)
	p.log.Debug("Ribbit window reset")
	p.publish()
}

// Revert puts a frog back to idle and cancels its pending reversion.
func (p *Pond) Revert(id domain.FrogID) {
	p.scheduler.Cancel(id)
	p.revert(id)
}

func (p *Pond) revert(id domain.FrogID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state = reaction.Revert(p.state, id)
	p.publish()
}

// revertScheduled runs when a reversion timer fires. The claim happens under the
// pond lock, so a reaction scheduled meanwhile for the same frog wins.
func (p *Pond) revertScheduled(id domain.FrogID, token uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.scheduler.Claim(id, token) {
		p.log.Debug("Stale reversion skipped", "frog", id)
		return
	}
	p.state = reaction.Revert(p.state, id)
	p.publish()
}

func (p *Pond) Snapshot() domain.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Clone()
}

func (p *Pond) Threshold() int {
	return p.reducer.Threshold()
}

// schedule must be called with the lock held.
func (p *Pond) schedule(reversions []domain.Reversion) {
	for _, r := range reversions {
		id := r.FrogID
		p.scheduler.ScheduleToken(id, r.After, func(token uint64) { p.revertScheduled(id, token) })
	}
}

// publish must be called with the lock held.
func (p *Pond) publish() {
	if p.snapshots == nil {
		return
	}
	select {
	case p.snapshots <- p.state.Clone():
	default:
		p.log.Warn("Snapshot channel full, dropping snapshot")
	}
}
