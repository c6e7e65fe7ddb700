package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"imgbatch/internal/batch"
)

var statusColors = map[batch.Status]text.Colors{
	batch.StatusSucceeded: {text.FgGreen},
	batch.StatusSkipped:   {text.FgYellow},
	batch.StatusFailed:    {text.FgRed},
}

// renderSummary lays the report out as one row per entry, in table order,
// with the tallies as a footer line.
func renderSummary(report batch.Report, colorize bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Source", "Output", "Status", "Size", "Written", "Detail"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Written", Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	for _, r := range report.Results {
		tw.AppendRow(table.Row{
			r.Entry.Source,
			r.Entry.Destination,
			statusLabel(r.Status, colorize),
			sizeColumn(r),
			bytesColumn(r),
			detailColumn(r),
		})
	}

	s := report.Summary()
	return tw.Render() + "\n" + fmt.Sprintf("%d succeeded · %d skipped · %d failed · %s written",
		s.Succeeded, s.Skipped, s.Failed, humanize.IBytes(uint64(s.Bytes)))
}

func statusLabel(status batch.Status, colorize bool) string {
	label := strings.ToUpper(string(status))
	if colors, ok := statusColors[status]; ok && colorize {
		return colors.Sprint(label)
	}
	return label
}

func sizeColumn(r batch.Result) string {
	if r.Status != batch.StatusSucceeded {
		return ""
	}
	out := fmt.Sprintf("%dx%d", r.OutputSize.X, r.OutputSize.Y)
	if r.Resized {
		return fmt.Sprintf("%dx%d → %s", r.InputSize.X, r.InputSize.Y, out)
	}
	return out
}

func bytesColumn(r batch.Result) string {
	if r.Status != batch.StatusSucceeded {
		return ""
	}
	return humanize.IBytes(uint64(r.Bytes))
}

func detailColumn(r batch.Result) string {
	switch {
	case r.Status == batch.StatusSucceeded:
		return fmt.Sprintf("q%d", r.Entry.Quality)
	case r.Status == batch.StatusFailed && r.Err != nil:
		return r.Err.Error()
	}
	return r.Reason
}

// shouldColorize reports whether w is a terminal.
func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
