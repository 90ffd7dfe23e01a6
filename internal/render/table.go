package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/olekukonko/tablewriter"

	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/formatter"
	"github.com/mcncl/jsonlens/internal/jsonpath"
	"github.com/mcncl/jsonlens/internal/models"
)

// ResultRow is one display row of a search or query result.
type ResultRow struct {
	Path    string
	Type    string
	Preview string
}

// ResultRows converts results into display rows. Error results show the
// query text as their path and the message as their preview. Previews are
// cut after previewLimit characters.
func ResultRows(results []models.SearchResult, query string, previewLimit int) []ResultRow {
	rows := make([]ResultRow, 0, len(results))
	for _, r := range results {
		if r.IsError() {
			rows = append(rows, ResultRow{Path: query, Type: r.Kind.String(), Preview: r.Value.AsString()})
			continue
		}
		rows = append(rows, ResultRow{
			Path:    jsonpath.DisplayPath(r.Path),
			Type:    r.Kind.String(),
			Preview: formatter.Preview(r.Value, previewLimit),
		})
	}
	return rows
}

// WriteResults writes search or query results as a table.
func WriteResults(w io.Writer, rows []ResultRow) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Path", "Type", "Preview"})
	tbl.SetAutoWrapText(false)
	tbl.SetAutoFormatHeaders(false)
	for _, row := range rows {
		tbl.Append([]string{row.Path, row.Type, row.Preview})
	}
	tbl.Render()
}

// Stats renders document statistics as a bordered table.
func Stats(stats analyzer.Stats) string {
	rows := [][]string{
		{"Nodes", strconv.Itoa(stats.Nodes)},
		{"Max depth", strconv.Itoa(stats.MaxDepth)},
		{"Size", fmt.Sprintf("%d bytes", stats.Bytes)},
		{"Distinct keys", strconv.Itoa(stats.DistinctKeys)},
		{"Largest object", strconv.Itoa(stats.LargestObject)},
		{"Largest array", strconv.Itoa(stats.LargestArray)},
	}
	for _, kind := range []models.Kind{
		models.KindObject, models.KindArray, models.KindString,
		models.KindNumber, models.KindBool, models.KindNull,
	} {
		if n := stats.Kinds[kind]; n > 0 {
			rows = append(rows, []string{kind.String(), strconv.Itoa(n)})
		}
	}
	if names := stats.FormatNames(); len(names) > 0 {
		parts := make([]string, len(names))
		for i, name := range names {
			parts[i] = fmt.Sprintf("%s=%d", name, stats.Formats[name])
		}
		rows = append(rows, []string{"Formats", strings.Join(parts, " ")})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}
