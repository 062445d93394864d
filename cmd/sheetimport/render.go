package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// renderTable writes one line per element with its changes and errors,
// followed by the batch summary.
func renderTable[T any](w io.Writer, b *sheetimport.Batch[T], tag language.Tag) error {
	p := message.NewPrinter(tag)
	view := b.View("")

	if len(view.Elements) == 0 {
		if _, err := fmt.Fprintln(w, "(0 rows)"); err != nil {
			return err
		}
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Row", "Status", "Selected", "Changes", "Errors"})
		for _, ev := range view.Elements {
			changes := make([]string, 0, len(ev.Deltas))
			for _, d := range ev.Deltas {
				changes = append(changes, fmt.Sprintf("%s: %q -> %q", d.Field, d.OldValue, d.NewValue))
			}
			selected := ""
			if ev.Selected {
				selected = "x"
			}
			t.AppendRow(table.Row{
				p.Sprintf("%d", ev.Row),
				ev.Status,
				selected,
				strings.Join(changes, "\n"),
				strings.Join(ev.Faults, "\n"),
			})
		}
		t.Render()
	}

	s := view.Summary
	_, err := p.Fprintf(w, "%d rows: %d new, %d modified, %d unmodified, %d faulty, %d selected\n",
		s.Total, s.New, s.Modified, s.Unmodified, s.Faulty, s.Selected)
	return err
}
