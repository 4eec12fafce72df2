package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TextOptions tunes WriteText.
type TextOptions struct {
	// Color switches the tables to a colored style for terminals.
	Color bool
}

var titleCaser = cases.Title(language.Und)

// TypeLabel renders a file type for humans: "AUDIO" becomes "Audio".
func TypeLabel(kind string) string {
	return titleCaser.String(strings.ToLower(kind))
}

// WriteText writes the report as headed tables. Solution and deviation
// sections are omitted for unsolved runs.
func WriteText(w io.Writer, rep Report, opts TextOptions) error {
	var style *table.Style
	if opts.Color {
		colored := table.StyleColoredDark
		style = &colored
	}

	var b strings.Builder
	section := func(title, body string) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(body)
		b.WriteString("\n")
	}

	syncRows := make([][]string, 0)
	for _, sync := range rep.Syncs {
		for i, member := range sync.Members {
			label := ""
			if i == 0 {
				label = sync.Text
			}
			syncRows = append(syncRows, []string{
				label,
				fmt.Sprintf("%.2f", member.Timestamp),
				member.Text,
				member.File,
			})
		}
	}
	if len(syncRows) == 0 {
		section("Syncs", "(none)")
	} else {
		section("Syncs", Table(
			[]string{"Sync", "Timestamp", "Text", "File"},
			syncRows,
			[]Alignment{AlignLeft, AlignRight, AlignLeft, AlignLeft},
			style,
		))
	}

	if len(rep.Ambiguities) > 0 {
		rows := make([][]string, 0, len(rep.Ambiguities))
		for _, amb := range rep.Ambiguities {
			rows = append(rows, []string{amb.Seed, amb.File, amb.Chosen, strings.Join(amb.Candidates, ", ")})
		}
		section("Ambiguous matches", Table(
			[]string{"Sync", "File", "Chosen", "Candidates"},
			rows, nil, style,
		))
	}

	if len(rep.Unassigned) > 0 {
		rows := make([][]string, 0, len(rep.Unassigned))
		for _, member := range rep.Unassigned {
			rows = append(rows, []string{fmt.Sprintf("%.2f", member.Timestamp), member.Text, member.File})
		}
		section("Unassigned tags", Table(
			[]string{"Timestamp", "Text", "File"},
			rows,
			[]Alignment{AlignRight, AlignLeft, AlignLeft},
			style,
		))
	}

	if rep.Solved {
		rows := make([][]string, 0, len(rep.Files))
		for _, file := range rep.Files {
			rows = append(rows, []string{
				fmt.Sprintf("%.3f", file.Offset),
				fmt.Sprintf("%.6f", file.Scale),
				TypeLabel(file.Type),
				file.Name,
			})
		}
		section("Solution", Table(
			[]string{"Offset", "Scale", "Type", "File"},
			rows,
			[]Alignment{AlignRight, AlignRight, AlignLeft, AlignLeft},
			style,
		))

		rows = make([][]string, 0)
		for _, sync := range rep.Syncs {
			for i, member := range sync.Members {
				label := ""
				if i == 0 {
					label = sync.Text
				}
				rows = append(rows, []string{label, member.File, fmt.Sprintf("%.2f", member.Aligned)})
			}
			rows = append(rows,
				[]string{"", "mean", fmt.Sprintf("%.2f", sync.Mean)},
				[]string{"", "dev", fmt.Sprintf("%.2f", sync.Deviation)},
			)
		}
		if len(rows) > 0 {
			section("Deviation", Table(
				[]string{"Sync", "File", "Aligned"},
				rows,
				[]Alignment{AlignLeft, AlignLeft, AlignRight},
				style,
			))
		}
	} else if rep.Error != "" {
		section("Solution", rep.Error)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
