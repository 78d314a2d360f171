package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// renderPlatformTable lays out per-platform backlink counts in rotation
// order, with a total row. Platforms absent from the breakdown (not yet
// posted to, or removed from the rotation) are skipped.
func renderPlatformTable(rotation []string, breakdown map[string]int) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Platform", "Posts"})

	total := 0
	for _, name := range rotation {
		count, ok := breakdown[name]
		if !ok {
			continue
		}
		tw.AppendRow(table.Row{name, strconv.Itoa(count)})
		total += count
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(total)})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	return tw.Render()
}
