package syncer

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type tableResult struct {
	table  string
	rows   int
	status string
}

// renderSummary renders the end-of-run banner.
func renderSummary(results []tableResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"table", "rows", "status"})
	for _, res := range results {
		t.AppendRow(table.Row{res.table, res.rows, res.status})
	}
	t.AppendSeparator()
	t.SetStyle(table.StyleLight)
	t.Style().Format = table.FormatOptions{
		Footer: text.FormatDefault,
		Header: text.FormatDefault,
		Row:    text.FormatDefault,
	}
	t.Style().Options.DrawBorder = false

	return t.Render()
}
