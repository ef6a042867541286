package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wavscribe/internal/config"
	"wavscribe/internal/language"
	"wavscribe/internal/pipeline"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    72,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func renderRunSummary(run config.Run, result pipeline.Result) string {
	rows := [][]string{
		{"Run key", result.Key},
		{"Language", fmt.Sprintf("%s (%s)", language.DisplayName(run.Lang), language.Locale(run.Lang))},
		{"Speed scale", run.SpeedScale},
		{"Volume", fmt.Sprintf("%s dB", run.Volume)},
		{"Input file", result.InputFile},
		{"Input duration", formatSeconds(result.InputDuration)},
		{"Output audio", result.OutputAudio},
		{"Output duration", formatSeconds(result.OutputDuration)},
		{"Run log", result.RecordPath},
		{"Text", result.Text},
	}
	return renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft})
}

func formatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}
