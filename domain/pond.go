package domain

import (
	"time"

	"github.com/samber/lo"
)

const WelcomeText = `Welcome to FrogTV! Type "ribbit" to interact!`

// State is everything the reducer reads and writes.
type State struct {
	Frogs              []Frog
	Messages           []Message
	RibbitCount        int
	ToadfatherSummoned bool
}

// NewState builds the pond as it looks when the page opens.
func NewState(at time.Time) State {
	return State{
		Frogs:    NewFrogs(),
		Messages: []Message{NewMessage(SystemAuthor, WelcomeText, at)},
	}
}

// Clone returns a copy sharing no slice or thought storage with s.
func (s State) Clone() State {
	frogs := lo.Map(s.Frogs, func(f Frog, _ int) Frog {
		if f.Thought != nil {
			f.Thought = lo.ToPtr(*f.Thought)
		}
		return f
	})
	messages := make([]Message, len(s.Messages))
	copy(messages, s.Messages)
	return State{
		Frogs:              frogs,
		Messages:           messages,
		RibbitCount:        s.RibbitCount,
		ToadfatherSummoned: s.ToadfatherSummoned,
	}
}

// Frog looks a frog up by identity.
func (s State) Frog(id FrogID) (Frog, bool) {
	return lo.Find(s.Frogs, func(f Frog) bool { return f.ID == id })
}

// Reversion asks the caller to put a frog back to idle after a delay.
type Reversion struct {
	FrogID FrogID
	After  time.Duration
}
