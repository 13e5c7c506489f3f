package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

const (
	maxTitle     = 40
	progressSize = 28
	emptyList    = "No todos found. Create your first todo to get started!"
)

func (a *app) newListCmd() *cobra.Command {
	var completed, pending bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos",
		Args:    argsUsage(0, "todo ls [--completed|--pending]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if completed && pending {
				return usageErr("--completed and --pending cannot be combined", "")
			}
			s, err := a.open()
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, a.listView(s, completed, pending))
			return nil
		},
	}
	cmd.Flags().BoolVar(&completed, "completed", false, "only completed todos")
	cmd.Flags().BoolVar(&pending, "pending", false, "only pending todos")
	return cmd
}

func (a *app) listView(s *store.Store, completed, pending bool) string {
	th := ui.Current()
	done, open := s.Stats()
	lines := []string{
		ui.Panel([]string{
			ui.Header(done, open),
			th.Muted.Render(ui.ProgressBar(done, done+open, progressSize)),
		}),
	}

	all := s.All()
	switch {
	case len(all) == 0:
		lines = append(lines, th.Muted.Render(emptyList))
	case completed:
		lines = append(lines, rowsTable(rowsWhere(all, isDone)))
	case pending:
		lines = append(lines, rowsTable(rowsWhere(all, isPending)))
	case a.cfg.UI.Group:
		lines = append(lines,
			th.Accent.Render("Pending"), rowsTable(rowsWhere(all, isPending)),
			th.Accent.Render("Done"), rowsTable(rowsWhere(all, isDone)),
		)
	default:
		lines = append(lines, rowsTable(ui.Rows(all)))
	}

	lines = append(lines, th.Muted.Render("Tip: add with `todo add \"Buy milk\"`"))
	return strings.Join(lines, "\n")
}

func isDone(t model.Todo) bool    { return t.Completed }
func isPending(t model.Todo) bool { return !t.Completed }

// rowsWhere keeps the positions todos have in the full list so that the
// numbers shown still work as references.
func rowsWhere(todos []model.Todo, keep func(model.Todo) bool) []ui.Row {
	var rows []ui.Row
	for _, r := range ui.Rows(todos) {
		if keep(r.Todo) {
			rows = append(rows, r)
		}
	}
	return rows
}

func rowsTable(rows []ui.Row) string {
	if len(rows) == 0 {
		return ui.Current().Muted.Render("(none)")
	}
	return ui.TodoTable(rows)
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one todo (ref is an index from `todo ls` or an id)",
		Args:  argsUsage(1, "todo show <ref>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			t, ok := s.FindByID(id)
			if !ok {
				a.noMatch(id)
				return nil
			}
			fmt.Fprintln(a.out, ui.Details(t))
			return nil
		},
	}
}

func (a *app) newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show counts of all, completed and pending todos",
		Args:  argsUsage(0, "todo stats"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			done, open := s.Stats()
			th := ui.Current()
			fmt.Fprintln(a.out, ui.Panel([]string{
				th.Title.Render("Stats"),
				fmt.Sprintf("%-10s %d", "All", len(s.All())),
				fmt.Sprintf("%-10s %d", "Completed", len(s.Completed())),
				fmt.Sprintf("%-10s %d", "Pending", len(s.Pending())),
				fmt.Sprintf("%-10s %d", "Total", s.Count()),
				"",
				th.Muted.Render(ui.ProgressBar(done, done+open, progressSize)),
			}))
			return nil
		},
	}
}

// noMatch reports a reference that named no record. It is not an error.
func (a *app) noMatch(id string) {
	ui.Note(a.out, fmt.Sprintf("no todo with id %q, nothing changed", id))
}
