package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"

	"github.com/vmsouza/musicctl/internal/formatter"
	"github.com/vmsouza/musicctl/internal/models"
)

func listColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 3},
		{Title: "Title", Width: 28},
		{Title: "Artist", Width: 20},
		{Title: "Launch Date", Width: 16},
		{Title: "Duration", Width: 10},
		{Title: "Views", Width: 12},
		{Title: "Feat", Width: 5},
	}
}

func deletedColumns() []table.Column {
	return append([]table.Column{{Title: "Sel", Width: 4}}, listColumns()...)
}

// recordRow renders the display cells shared by both tables. The first
// cell is the one-based row number within the page; record IDs never
// appear in the listing.
func recordRow(rowIndex int, m models.Music) table.Row {
	views := ""
	if m.ViewsNumber != nil {
		views = formatter.FormatViews(*m.ViewsNumber)
	}
	return table.Row{
		strconv.Itoa(rowIndex + 1),
		m.Title,
		m.Artist,
		formatter.FormatLaunchDate(m.LaunchDate),
		formatter.FormatDuration(m.Duration),
		views,
		formatter.FormatFeat(m.Feat),
	}
}

func listRows(page models.Page) []table.Row {
	rows := make([]table.Row, len(page.Items))
	for i, m := range page.Items {
		rows[i] = recordRow(i, m)
	}
	return rows
}

func deletedRows(page models.Page, selection *models.Selection) []table.Row {
	rows := make([]table.Row, len(page.Items))
	for i, m := range page.Items {
		mark := "[ ]"
		if m.ID != nil && selection.Contains(*m.ID) {
			mark = "[x]"
		}
		rows[i] = append(table.Row{mark}, recordRow(i, m)...)
	}
	return rows
}

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(models.PageSize+1),
	)
	return t
}

// pageStatus renders the pagination footer, e.g. "page 2/3 (11 musics)".
func pageStatus(page models.Page, noun string) string {
	pages := (page.TotalElements + models.PageSize - 1) / models.PageSize
	if pages == 0 {
		pages = 1
	}
	return fmt.Sprintf("page %d/%d (%d %s)", page.Index+1, pages, page.TotalElements, noun)
}
