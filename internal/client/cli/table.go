package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/miy4x/shigezane-admin/internal/client/export"
	"github.com/miy4x/shigezane-admin/internal/client/services"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func labels(cols []export.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Label
	}
	return out
}

// renderListing prints the summary columns of every shown record and the
// total/shown counter.
func renderListing(w io.Writer, l services.Listing) error {
	cols := export.SummaryColumns(l.Kind)
	rows, err := export.Rows(l.Records, cols)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		fmt.Fprintln(w, newTable(labels(cols), rows).String())
	}
	fmt.Fprintln(w, gray(fmt.Sprintf("全%d件 / 表示%d件", l.Total, l.Shown)))
	return nil
}

// renderRecord prints every column of one record as label/value pairs.
func renderRecord(w io.Writer, l services.Listing) error {
	cols := export.Columns(l.Kind)
	rows, err := export.Rows(l.Records, cols)
	if err != nil {
		return err
	}
	if len(rows) != 1 {
		return fmt.Errorf("expected one record, got %d", len(rows))
	}
	pairs := make([][]string, len(cols))
	for i, c := range cols {
		pairs[i] = []string{c.Label, rows[0][i]}
	}
	fmt.Fprintln(w, newTable([]string{"項目", "値"}, pairs).String())
	return nil
}

func renderDashboard(w io.Writer, summary []services.KindSummary) {
	rows := make([][]string, len(summary))
	for i, s := range summary {
		rows[i] = []string{
			s.Kind.Label(),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Available),
			strconv.Itoa(s.Closed),
		}
	}
	fmt.Fprintln(w, newTable([]string{"種別", "総数", "募集中", "成約・入居"}, rows).String())
}
