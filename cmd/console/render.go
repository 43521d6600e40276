package main

import (
	"fmt"
	"frog-pond/domain"
	"frog-pond/projection"
	"frog-pond/repositories"
	"io"
	"strconv"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

var moodColors = map[domain.Mood]color.Color{
	domain.MoodChill:         color.FgCyan,
	domain.MoodExcited:       color.FgYellow,
	domain.MoodSleepy:        color.FgGray,
	domain.MoodHungry:        color.FgRed,
	domain.MoodPhilosophical: color.FgMagenta,
}

func colorMood(mood domain.Mood) string {
	c, ok := moodColors[mood]
	if !ok {
		return string(mood)
	}
	return c.Render(string(mood))
}

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// renderPond prints the couch as a table, one frog per row.
func renderPond(w io.Writer, state domain.State, threshold int) {
	table := newTable(w, []string{"Frog", "Mood", "Action", "Thought"})
	for _, f := range state.Frogs {
		table.Append([]string{string(f.ID), colorMood(f.Mood), string(f.Action), f.ThoughtText()})
	}
	table.SetFooter([]string{"", "", "Ribbits", strconv.Itoa(state.RibbitCount) + "/" + strconv.Itoa(threshold)})
	table.Render()
	if state.ToadfatherSummoned {
		fmt.Fprintln(w, color.New(color.BgBlack, color.FgYellow).Render("👑 The Toadfather is here"))
	}
}

func renderHistory(w io.Writer, messages []repositories.DiskMessage) {
	table := newTable(w, []string{"At", "Author", "Text"})
	for _, m := range messages {
		table.Append([]string{m.At.Local().Format("15:04:05"), m.Author, m.Text})
	}
	table.Render()
}

// renderEntry prints one live change of the timeline.
func renderEntry(w io.Writer, e projection.Entry) {
	switch e.Kind {
	case projection.EntryMessage:
		if e.Author == domain.SystemAuthor {
			fmt.Fprintln(w, color.FgYellow.Render(e.String()))
			return
		}
		fmt.Fprintln(w, e.String())
	case projection.EntryFrog:
		fmt.Fprintf(w, "🐸 %s\n", e.String())
	case projection.EntrySummon:
		fmt.Fprintln(w, color.New(color.BgBlack, color.FgYellow).Render("👑 "+e.String()))
	default:
		fmt.Fprintln(w, color.FgGray.Render(e.String()))
	}
}
