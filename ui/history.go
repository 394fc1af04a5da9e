package ui

import (
	"fmt"
	"io"
	"no-regret/domain"
	"no-regret/i18n"
	"no-regret/services"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

const barUnit = "█"

// RenderHistory draws the weekly activity and the category share as two tables.
func RenderHistory(w io.Writer, t *i18n.Translator, weekly []domain.WeeklyActivity, categories []domain.CategoryShare) {
	fmt.Fprintf(w, "%s · %s\n", t.T("last3mo"), t.T("weeklyActivity"))
	table := newTable(w)
	for _, week := range weekly {
		table.Append([]string{week.Week, strconv.Itoa(week.Count), strings.Repeat(barUnit, week.Count)})
	}
	table.Render()

	fmt.Fprintln(w, t.T("categoryShare"))
	shares := services.Share(categories)
	table = newTable(w)
	for _, c := range categories {
		share := shares[c.Name]
		table.Append([]string{c.Name, fmt.Sprintf("%.0f%%", share), strings.Repeat(barUnit, int(share/5))})
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	return table
}
