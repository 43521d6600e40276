package projection

import (
	"context"
	"frog-pond/domain"
	"frog-pond/reaction"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTimeline_Consume_FirstSnapshot(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// When the first snapshot is consumed
	req.NoError(timeline.Consume(context.Background(), domain.NewState(time.Now())))

	// Then the welcome message and every frog appear once
	req.Len(timeline.Entries, 4)
	req.Equal(EntryMessage, timeline.Entries[0].Kind)
	req.Equal(domain.SystemAuthor, timeline.Entries[0].Author)
	req.Equal(domain.WelcomeText, timeline.Entries[0].Text)
	kinds := lo.CountBy(timeline.Entries, func(e Entry) bool { return e.Kind == EntryFrog })
	req.Equal(3, kinds)
}

func TestTimeline_Consume_OnlyChanges(t *testing.T) {
	req := require.New(t)
	var seen []Entry
	timeline := NewTimeline().OnChange(func(e Entry) { seen = append(seen, e) })
	ctx := context.Background()

	state := domain.NewState(time.Now())
	req.NoError(timeline.Consume(ctx, state))
	seen = nil

	// Given frog3 catches a fly and a message is posted
	next := state.Clone()
	next.Frogs[2].Action = domain.ActionCatch
	next.Frogs[2].Mood = domain.MoodExcited
	next.Frogs[2].Thought = lo.ToPtr(reaction.ThoughtNomNom)
	next.Messages = append(next.Messages, domain.NewMessage("Alice", "hello", time.Now()))

	// When it is consumed
	req.NoError(timeline.Consume(ctx, next))

	// Then only the message and frog3 show up
	req.Len(seen, 2)
	req.Equal("Alice: hello", seen[0].String())
	req.Equal(domain.Frog3, seen[1].FrogID)
	req.Equal(`frog3 (excited) "Nom nom!"`, seen[1].String())

	// When the exact same snapshot arrives again, nothing is emitted
	seen = nil
	req.NoError(timeline.Consume(ctx, next))
	req.Empty(seen)
}

func TestTimeline_Consume_SummonAndReset(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	ctx := context.Background()

	state := domain.NewState(time.Now())
	req.NoError(timeline.Consume(ctx, state))

	summoned := state.Clone()
	summoned.RibbitCount = 5
	summoned.ToadfatherSummoned = true
	req.NoError(timeline.Consume(ctx, summoned))
	req.Equal(EntrySummon, timeline.Entries[len(timeline.Entries)-1].Kind)

	req.NoError(timeline.Consume(ctx, reaction.ResetWindow(summoned)))
	req.Equal(EntryReset, timeline.Entries[len(timeline.Entries)-1].Kind)
}

func TestTimeline_Latest(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	_, ok := timeline.Latest()
	req.False(ok)

	state := domain.NewState(time.Now())
	state.RibbitCount = 2
	req.NoError(timeline.Consume(context.Background(), state))

	// Mutating the consumed snapshot does not leak into the projection
	state.Frogs[0].Mood = domain.MoodSleepy

	latest, ok := timeline.Latest()
	req.True(ok)
	req.Equal(2, latest.RibbitCount)
	req.Equal(domain.MoodChill, latest.Frogs[0].Mood)
}
