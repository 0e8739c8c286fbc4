package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/BerylCAtieno/yodelstar-api/internal/batch"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderSummary(summary batch.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Footer = text.FormatDefault
	tw.AppendHeader(table.Row{"File", "Status", "Output", "Elapsed", "Error"})

	for _, r := range summary.Results {
		output, errText := "", ""
		if r.Status == batch.StatusOK {
			output = filepath.Base(r.Output)
		}
		if r.Err != nil {
			errText = r.Err.Error()
		}
		tw.AppendRow(table.Row{r.Name, string(r.Status), output, r.Elapsed.Round(time.Millisecond).String(), errText})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(summary.Results)),
		fmt.Sprintf("%d ok / %d failed", summary.Succeeded(), summary.Failed()),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 60},
	})
	return tw.Render()
}
