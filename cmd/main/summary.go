package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/CTAG07/coursegen/pkg/batch"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func printSummary(w io.Writer, s batch.Summary) {
	colorize := shouldColorize(w)

	headers := []string{"ID", "Course", "Directory", "Tier", "State", "Error"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
	rows := make([][]string, 0, len(s.Results))
	for _, r := range s.Results {
		errText := ""
		if r.Err != nil {
			errText = r.Err.Error()
		}
		rows = append(rows, []string{
			strconv.Itoa(r.ID),
			r.Title,
			r.Dir,
			tierLabel(r),
			stateLabel(r.State, colorize),
			errText,
		})
	}

	if len(rows) > 0 {
		_, _ = fmt.Fprintln(w, renderTable(headers, rows, aligns, colorize))
	}
	_, _ = fmt.Fprintf(w, "Run %s: %d emitted, %d failed\n", s.RunID, s.Emitted(), s.Failed())
}

func tierLabel(r batch.Result) string {
	if r.Category != "" {
		return string(r.Tier) + ":" + r.Category
	}
	return string(r.Tier)
}

func stateLabel(state batch.State, colorize bool) string {
	if !colorize {
		return string(state)
	}
	switch state {
	case batch.StateEmitted:
		return text.Colors{text.FgGreen}.Sprint(state)
	case batch.StateFailed:
		return text.Colors{text.FgRed, text.Bold}.Sprint(state)
	default:
		return string(state)
	}
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment, styled bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

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
			} else {
				r[i] = ""
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
			WidthMax:    60,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
