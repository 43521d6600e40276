package reaction

import (
	"frog-pond/errors"
	"sort"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// Trigger is a family of keywords that provokes the same reaction.
type Trigger string

const (
	TriggerRibbit     Trigger = "ribbit"
	TriggerPhilosophy Trigger = "philosophy"
	TriggerFood       Trigger = "food"
	TriggerSleep      Trigger = "sleep"
)

// DefaultKeywords maps each trigger to the words that fire it.
var DefaultKeywords = map[Trigger][]string{
	TriggerRibbit:     {"ribbit"},
	TriggerPhilosophy: {"reality", "consciousness"},
	TriggerFood:       {"food", "hungry"},
	TriggerSleep:      {"sleep", "tired"},
}

// Triggers is the set of triggers found in one message.
type Triggers map[Trigger]struct{}

func (t Triggers) Has(trigger Trigger) bool {
	_, ok := t[trigger]
	return ok
}

// List returns the triggers in a stable order, handy for logs.
func (t Triggers) List() []string {
	res := lo.Map(lo.Keys(t), func(item Trigger, _ int) string { return string(item) })
	sort.Strings(res)
	return res
}

// Detector finds every keyword of a message in a single pass.
type Detector struct {
	matcher  *goahocorasick.Machine
	triggers map[string]Trigger
}

// NewDetector builds the Aho-Corasick automaton over the lower-cased keywords.
// Blank keywords are ignored.
func NewDetector(keywords map[Trigger][]string) (*Detector, error) {
	triggers := make(map[string]Trigger)
	for trigger, words := range keywords {
		for _, word := range words {
			normalized := string(lowerRunes([]rune(word)))
			if normalized == "" {
				continue
			}
			triggers[normalized] = trigger
		}
	}
	if len(triggers) == 0 {
		return nil, errors.ErrEmptyKeywords
	}

	words := lo.Keys(triggers)
	sort.Strings(words)
	patterns := lo.Map(words, func(item string, _ int) []rune { return []rune(item) })

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Detector{matcher: m, triggers: triggers}, nil
}

// Detect reports which triggers appear anywhere in text, ignoring case.
func (d *Detector) Detect(text string) Triggers {
	found := make(Triggers)
	content := lowerRunes([]rune(text))
	if len(content) == 0 {
		return found
	}
	for _, term := range d.matcher.MultiPatternSearch(content, false) {
		if trigger, ok := d.triggers[string(term.Word)]; ok {
			found[trigger] = struct{}{}
		}
	}
	return found
}

func lowerRunes(input []rune) []rune {
	out := make([]rune, len(input))
	for i, r := range input {
		out[i] = unicode.ToLower(r)
	}
	return out
}
