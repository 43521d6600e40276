// Package projection builds a local timeline from observed pond snapshots.
// Handles ordering and deduplication of what changed between two snapshots.
// Does not mutate the pond or interact with UI directly.
package projection

import (
	"context"
	"fmt"
	"frog-pond/contract"
	"frog-pond/domain"
	"sync"
)

var _ contract.SnapshotSink = (*Timeline)(nil)

type EntryKind string

const (
	EntryMessage EntryKind = "message"
	EntryFrog    EntryKind = "frog"
	EntrySummon  EntryKind = "summon"
	EntryReset   EntryKind = "reset"
)

type Entry struct {
	Kind   EntryKind
	FrogID domain.FrogID
	Mood   domain.Mood
	Author string
	Text   string
}

func (e Entry) String() string {
	switch e.Kind {
	case EntryMessage:
		return fmt.Sprintf("%s: %s", e.Author, e.Text)
	case EntryFrog:
		if e.Text == "" {
			return fmt.Sprintf("%s is %s", e.FrogID, e.Mood)
		}
		return fmt.Sprintf("%s (%s) %q", e.FrogID, e.Mood, e.Text)
	case EntrySummon:
		return "the Toadfather is here"
	case EntryReset:
		return "ribbit window reset"
	default:
		return string(e.Kind)
	}
}

// Timeline holds the latest snapshot and the entries derived from every change since start.
type Timeline struct {
	mu       sync.Mutex
	latest   *domain.State
	Entries  []Entry
	onChange func(Entry)
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// OnChange registers a callback invoked for each new entry, in order.
func (t *Timeline) OnChange(fn func(Entry)) *Timeline {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
	return t
}

func (t *Timeline) Consume(_ context.Context, snapshot domain.State) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var previous domain.State
	if t.latest != nil {
		previous = *t.latest
	}
	entries := diff(previous, snapshot)
	latest := snapshot.Clone()
	t.latest = &latest
	t.Entries = append(t.Entries, entries...)
	if t.onChange != nil {
		for _, e := range entries {
			t.onChange(e)
		}
	}
	return nil
}

// Latest returns a copy of the last consumed snapshot.
func (t *Timeline) Latest() (domain.State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.latest == nil {
		return domain.State{}, false
	}
	return t.latest.Clone(), true
}

func diff(previous, next domain.State) []Entry {
	var entries []Entry
	for _, m := range next.Messages[min(len(previous.Messages), len(next.Messages)):] {
		entries = append(entries, Entry{Kind: EntryMessage, Author: m.Author, Text: m.Text})
	}
	for _, f := range next.Frogs {
		before, ok := previous.Frog(f.ID)
		if ok && before.Mood == f.Mood && before.Action == f.Action && before.ThoughtText() == f.ThoughtText() {
			continue
		}
		entries = append(entries, Entry{Kind: EntryFrog, FrogID: f.ID, Mood: f.Mood, Text: f.ThoughtText()})
	}
	if next.ToadfatherSummoned && !previous.ToadfatherSummoned {
		entries = append(entries, Entry{Kind: EntrySummon})
	}
	if previous.RibbitCount > 0 && next.RibbitCount == 0 {
		entries = append(entries, Entry{Kind: EntryReset})
	}
	return entries
}
