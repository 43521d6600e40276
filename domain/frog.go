// Package domain contains core concepts of the frog pond.
// This file defines Frog entities and their moods and actions.
// No runtime, network, or UI logic should be added here.
package domain

type FrogID string

const (
	Frog1 FrogID = "frog1"
	Frog2 FrogID = "frog2"
	Frog3 FrogID = "frog3"
)

// Mood is how a frog currently feels. It drives the color filter of the view.
type Mood string

const (
	MoodChill         Mood = "chill" // baseline
	MoodExcited       Mood = "excited"
	MoodSleepy        Mood = "sleepy"
	MoodHungry        Mood = "hungry"
	MoodPhilosophical Mood = "philosophical"
)

// Action is what a frog is currently doing on screen.
type Action string

const (
	ActionIdle             Action = "idle"
	ActionCroak            Action = "croak"
	ActionThrow            Action = "throw"
	ActionCatch            Action = "catch"
	ActionSummonToadfather Action = "summonToadfather"
	ActionWalkOff          Action = "walkOff"
)

type Position struct {
	X int
	Y int
}

// Frog is one of the three characters on the couch.
// Only Mood, Action and Thought ever change.
type Frog struct {
	ID       FrogID
	Mood     Mood
	Action   Action
	Position Position
	Thought  *string // nil when the bubble is hidden
}

// NewFrogs returns the fixed cast in couch order.
func NewFrogs() []Frog {
	return []Frog{
		{ID: Frog1, Mood: MoodChill, Action: ActionIdle, Position: Position{X: 180, Y: 280}},
		{ID: Frog2, Mood: MoodPhilosophical, Action: ActionIdle, Position: Position{X: 280, Y: 290}},
		{ID: Frog3, Mood: MoodHungry, Action: ActionIdle, Position: Position{X: 380, Y: 275}},
	}
}

// ThoughtText returns the thought or an empty string.
func (f Frog) ThoughtText() string {
	if f.Thought == nil {
		return ""
	}
	return *f.Thought
}
