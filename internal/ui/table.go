package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	maxTitleWidth       = 60
	maxDescriptionWidth = 60
	noDescription       = "No description"
)

// Row pairs a record with the 1-based position shown next to it.
type Row struct {
	Index int
	Todo  model.Todo
}

// Rows numbers todos from 1 in the order given.
func Rows(todos []model.Todo) []Row {
	out := make([]Row, 0, len(todos))
	for i, t := range todos {
		out = append(out, Row{Index: i + 1, Todo: t})
	}
	return out
}

// TodoTable renders the tabular list view.
func TodoTable(rows []Row) string {
	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		desc := r.Todo.Description
		if desc == "" {
			desc = noDescription
		}
		cells = append(cells, []string{
			strconv.Itoa(r.Index),
			current.Box(r.Todo.Completed),
			Truncate(r.Todo.Title, maxTitleWidth),
			Truncate(desc, maxDescriptionWidth),
		})
	}

	return table.New().
		Border(current.Border).
		BorderStyle(lipgloss.NewStyle().Foreground(current.BorderColor)).
		Headers("#", "Status", "Title", "Description").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return current.Title.Padding(0, 1)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			done := rows[row].Todo.Completed
			switch {
			case col == 1 && done:
				return current.Success.Padding(0, 1)
			case col == 1:
				return current.Muted.Padding(0, 1)
			case col == 2 && done:
				return current.Done.Padding(0, 1)
			case col == 3 && (done || rows[row].Todo.Description == ""):
				return current.Muted.Padding(0, 1)
			}
			return base
		}).
		String()
}

// Details renders the single-record view.
func Details(t model.Todo) string {
	desc := t.Description
	if desc == "" {
		desc = "No description provided"
	}
	status := current.Pending.Render(current.SymPending + " pending")
	if t.Completed {
		status = current.Success.Render(current.SymDone + " completed")
	}
	return Panel([]string{
		current.Title.Render("Todo Details"),
		"",
		current.Muted.Render("Title"),
		t.Title,
		"",
		current.Muted.Render("Description"),
		desc,
		"",
		current.Muted.Render("Status"),
		status,
		"",
		current.Muted.Render("ID " + t.ID),
	})
}
