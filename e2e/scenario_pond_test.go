package e2e

import (
	"frog-pond/domain"
	"frog-pond/internal"
	"frog-pond/reaction"
	"frog-pond/repositories"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type testPondSuite struct {
	BaseHTTPSuite
}

func TestPondSuite(t *testing.T) {
	suite.Run(t, &testPondSuite{})
}

func frog(view internal.PondView, id domain.FrogID) internal.FrogView {
	f, _ := lo.Find(view.Frogs, func(f internal.FrogView) bool { return f.ID == id })
	return f
}

func (s *testPondSuite) TestSummonTheToadfather() {
	user := "e2e-" + uuid.NewString()[:8]

	s.Step("Ribbit until the threshold is reached", func() {
		before := s.Pond()
		s.Require().Len(before.Frogs, 3)
		remaining := max(before.Threshold-before.RibbitCount, 1)
		for range remaining {
			s.Require().Equal(http.StatusSeeOther, s.PostMessage(user, "ribbit"))
		}
	})

	s.Step("Every frog summons the Toadfather", func() {
		view := s.Pond()
		s.Require().True(view.ToadfatherSummoned)
		s.Require().GreaterOrEqual(view.RibbitCount, view.Threshold)
		announcements := lo.CountBy(view.Messages, func(m internal.MessageView) bool {
			return m.Author == domain.SystemAuthor && m.Text == reaction.SummonAnnouncement
		})
		s.Require().GreaterOrEqual(announcements, 1)
	})

	s.Step("A further ribbit adds no announcement", func() {
		count := func(view internal.PondView) int {
			return lo.CountBy(view.Messages, func(m internal.MessageView) bool { return m.Author == domain.SystemAuthor })
		}
		before := count(s.Pond())
		s.Require().Equal(http.StatusSeeOther, s.PostMessage(user, "RIBBIT again"))
		s.Require().Equal(before, count(s.Pond()))
	})
}

func (s *testPondSuite) TestKeywordReactions() {
	user := "e2e-" + uuid.NewString()[:8]

	s.Step("Reality makes frog2 philosophical", func() {
		s.Require().Equal(http.StatusSeeOther, s.PostMessage(user, "what is Reality anyway"))
		frog2 := frog(s.Pond(), domain.Frog2)
		s.Require().Equal(domain.MoodPhilosophical, frog2.Mood)
		s.Require().Equal(domain.ActionCroak, frog2.Action)
		s.Require().Equal(reaction.ThoughtDream, *frog2.Thought)
	})

	s.Step("Hungry excites frog3", func() {
		s.Require().Equal(http.StatusSeeOther, s.PostMessage(user, "I'm hungry"))
		frog3 := frog(s.Pond(), domain.Frog3)
		s.Require().Equal(domain.MoodExcited, frog3.Mood)
		s.Require().Equal(reaction.ThoughtFlies, *frog3.Thought)
	})

	s.Step("Frog2 goes back to idle", func() {
		s.Require().Eventually(func() bool {
			frog2 := frog(s.Pond(), domain.Frog2)
			return frog2.Action == domain.ActionIdle && frog2.Thought == nil
		}, reaction.PhilosophyDelay+2*time.Second, 200*time.Millisecond)
	})
}

func (s *testPondSuite) TestButtons() {
	s.Step("Throw Fly feeds frog3", func() {
		s.Press("/fly")
		frog3 := frog(s.Pond(), domain.Frog3)
		s.Require().Equal(domain.ActionCatch, frog3.Action)
		s.Require().Equal(domain.MoodExcited, frog3.Mood)
		s.Require().Equal(reaction.ThoughtNomNom, *frog3.Thought)
	})

	s.Step("Make Them Croak gives three distinct thoughts", func() {
		s.Press("/croak")
		view := s.Pond()
		thoughts := lo.Map(view.Frogs, func(f internal.FrogView, _ int) string { return *f.Thought })
		s.Require().Equal([]string{reaction.ThoughtRibbit, reaction.ThoughtRibbitx2, reaction.ThoughtRibbitLoud}, thoughts)
	})
}

func (s *testPondSuite) TestBlankMessageIsRejected() {
	before := len(s.Pond().Messages)
	s.Require().Equal(http.StatusBadRequest, s.PostMessage("someone", "   "))
	s.Require().Len(s.Pond().Messages, before)
}

func (s *testPondSuite) TestChatLogIsStored() {
	text := "hello " + uuid.NewString()
	s.Require().Equal(http.StatusSeeOther, s.PostMessage("e2e", text))

	s.Require().Eventually(func() bool {
		page := s.Messages("")
		return lo.ContainsBy(page.Messages, func(m repositories.DiskMessage) bool { return m.Text == text })
	}, 2*time.Second, 100*time.Millisecond)
}
