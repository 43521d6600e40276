// Package reaction turns chat messages and button presses into frog state changes.
// Every transition is a pure function of the previous state: no I/O, no timers.
// Scheduling the return to idle is left to the caller through Reversion values.
package reaction

import (
	"frog-pond/domain"
	"frog-pond/errors"
	"time"

	"github.com/samber/lo"
)

const DefaultSummonThreshold = 5

const SummonAnnouncement = "🐸👑 THE TOADFATHER HAS BEEN SUMMONED! 👑🐸"

const (
	ThoughtRibbit     = "Ribbit!"
	ThoughtDream      = "But what if we are the dream?"
	ThoughtFlies      = "FLIES!"
	ThoughtZzz        = "Zzz..."
	ThoughtNomNom     = "Nom nom!"
	ThoughtDon        = "The Don arrives..."
	ThoughtLoudest    = "He who croaks loudest"
	ThoughtTribute    = "I offer tribute"
	ThoughtRibbitx2   = "Ribbit ribbit!"
	ThoughtRibbitLoud = "RIBBIT!!"
)

// How long each reaction stays on screen before the frog goes back to idle.
const (
	CroakDelay      = 2 * time.Second
	SummonDelay     = 3 * time.Second
	PhilosophyDelay = 3 * time.Second
	FoodDelay       = 2 * time.Second
	SleepDelay      = 4 * time.Second
	FeedDelay       = 1500 * time.Millisecond
	ChorusDelay     = 2 * time.Second
)

// Frogs wired to a specific keyword family.
const (
	PhilosopherFrog = domain.Frog2
	FoodieFrog      = domain.Frog3
	FeedFallback    = domain.Frog3
	RandomFallback  = domain.Frog1
)

// Outcome is the result of applying one message to the pond.
type Outcome struct {
	State      domain.State
	Reversions []domain.Reversion
	Triggers   Triggers
	Summoned   bool // true only on the message that unlocked the Toadfather
}

type Reducer struct {
	detector  *Detector
	random    RandomSource
	threshold int
	now       func() time.Time
}

func NewReducer(detector *Detector, random RandomSource, threshold int) (*Reducer, error) {
	if threshold <= 0 {
		return nil, errors.ErrInvalidThreshold
	}
	return &Reducer{
		detector:  detector,
		random:    random,
		threshold: threshold,
		now:       time.Now,
	}, nil
}

// WithClock replaces the clock used to stamp new messages.
func (r *Reducer) WithClock(now func() time.Time) *Reducer {
	r.now = now
	return r
}

func (r *Reducer) Threshold() int { return r.threshold }

// Apply appends the message and runs every keyword check against it.
// Checks are independent: one message can fire several of them.
func (r *Reducer) Apply(state domain.State, author, text string) Outcome {
	next := state.Clone()
	at := r.now()
	next.Messages = append(next.Messages, domain.NewMessage(author, text, at))

	triggers := r.detector.Detect(text)
	var reversions []domain.Reversion
	summoned := false

	if triggers.Has(TriggerRibbit) {
		next.RibbitCount++
		if next.RibbitCount >= r.threshold && !next.ToadfatherSummoned {
			next.ToadfatherSummoned = true
			summoned = true
			for i := range next.Frogs {
				next.Frogs[i].Action = domain.ActionSummonToadfather
				next.Frogs[i].Thought = lo.ToPtr(summonThought(next.Frogs[i].ID))
				reversions = append(reversions, domain.Reversion{FrogID: next.Frogs[i].ID, After: SummonDelay})
			}
			// One nanosecond later so the chat log keeps it after the message that caused it.
			next.Messages = append(next.Messages, domain.NewMessage(domain.SystemAuthor, SummonAnnouncement, at.Add(time.Nanosecond)))
		} else {
			id := r.pick(next.Frogs, RandomFallback)
			update(next.Frogs, id, func(f *domain.Frog) {
				f.Action = domain.ActionCroak
				f.Thought = lo.ToPtr(ThoughtRibbit)
			})
			reversions = append(reversions, domain.Reversion{FrogID: id, After: CroakDelay})
		}
	}

	if triggers.Has(TriggerPhilosophy) {
		update(next.Frogs, PhilosopherFrog, func(f *domain.Frog) {
			f.Mood = domain.MoodPhilosophical
			f.Action = domain.ActionCroak
			f.Thought = lo.ToPtr(ThoughtDream)
		})
		reversions = append(reversions, domain.Reversion{FrogID: PhilosopherFrog, After: PhilosophyDelay})
	}

	if triggers.Has(TriggerFood) {
		update(next.Frogs, FoodieFrog, func(f *domain.Frog) {
			f.Mood = domain.MoodExcited
			f.Action = domain.ActionCroak
			f.Thought = lo.ToPtr(ThoughtFlies)
		})
		reversions = append(reversions, domain.Reversion{FrogID: FoodieFrog, After: FoodDelay})
	}

	if triggers.Has(TriggerSleep) {
		id := r.pick(next.Frogs, RandomFallback)
		update(next.Frogs, id, func(f *domain.Frog) {
			f.Mood = domain.MoodSleepy
			f.Thought = lo.ToPtr(ThoughtZzz)
		})
		reversions = append(reversions, domain.Reversion{FrogID: id, After: SleepDelay})
	}

	return Outcome{State: next, Reversions: reversions, Triggers: triggers, Summoned: summoned}
}

// Feed throws a fly to a hungry frog, or to the fallback frog when nobody is hungry.
func (r *Reducer) Feed(state domain.State) (domain.State, []domain.Reversion) {
	next := state.Clone()
	hungry := lo.Filter(next.Frogs, func(f domain.Frog, _ int) bool { return f.Mood == domain.MoodHungry })
	id := r.pick(hungry, FeedFallback)
	update(next.Frogs, id, func(f *domain.Frog) {
		f.Action = domain.ActionCatch
		f.Mood = domain.MoodExcited
		f.Thought = lo.ToPtr(ThoughtNomNom)
	})
	return next, []domain.Reversion{{FrogID: id, After: FeedDelay}}
}

// Chorus makes every frog croak, louder as we move along the couch.
func Chorus(state domain.State) (domain.State, []domain.Reversion) {
	next := state.Clone()
	reversions := make([]domain.Reversion, 0, len(next.Frogs))
	for i := range next.Frogs {
		next.Frogs[i].Action = domain.ActionCroak
		next.Frogs[i].Thought = lo.ToPtr(chorusThought(i))
		reversions = append(reversions, domain.Reversion{FrogID: next.Frogs[i].ID, After: ChorusDelay})
	}
	return next, reversions
}

// Revert puts a frog back to idle and hides its bubble. Mood is kept.
func Revert(state domain.State, id domain.FrogID) domain.State {
	next := state.Clone()
	update(next.Frogs, id, func(f *domain.Frog) {
		f.Action = domain.ActionIdle
		f.Thought = nil
	})
	return next
}

// ResetWindow starts a new ribbit counting window.
func ResetWindow(state domain.State) domain.State {
	next := state.Clone()
	next.RibbitCount = 0
	next.ToadfatherSummoned = false
	return next
}

func (r *Reducer) pick(candidates []domain.Frog, fallback domain.FrogID) domain.FrogID {
	if len(candidates) == 0 {
		return fallback
	}
	return candidates[r.random.IntN(len(candidates))].ID
}

// update mutates the frog with the given id in place; unknown ids are ignored.
func update(frogs []domain.Frog, id domain.FrogID, fn func(f *domain.Frog)) {
	for i := range frogs {
		if frogs[i].ID == id {
			fn(&frogs[i])
			return
		}
	}
}

func summonThought(id domain.FrogID) string {
	switch id {
	case domain.Frog1:
		return ThoughtDon
	case domain.Frog2:
		return ThoughtLoudest
	default:
		return ThoughtTribute
	}
}

func chorusThought(index int) string {
	switch index {
	case 0:
		return ThoughtRibbit
	case 1:
		return ThoughtRibbitx2
	default:
		return ThoughtRibbitLoud
	}
}
