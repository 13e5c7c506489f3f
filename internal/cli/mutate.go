package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/ui"
)

func (a *app) newDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <ref>",
		Short: "Toggle done for a todo",
		Args:  argsUsage(1, "todo done <ref>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if !s.Toggle(id) {
				a.noMatch(id)
				return nil
			}
			t, _ := s.FindByID(id)
			if t.Completed {
				ui.OK(a.out, "completed "+ui.Truncate(t.Title, maxTitle))
			} else {
				ui.OK(a.out, "reopened "+ui.Truncate(t.Title, maxTitle))
			}
			return a.saved(s)
		},
	}
}

func (a *app) newEditCmd() *cobra.Command {
	var (
		title, description string
		completed          bool
	)
	cmd := &cobra.Command{
		Use:   "edit <ref>",
		Short: "Change the title, description or status of a todo",
		Example: `  todo edit 2 --title "Buy oat milk"
  todo edit 3fa8 --description "" --completed`,
		Args: argsUsage(1, "todo edit <ref> [--title t] [--description d] [--completed]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p model.Patch
			if cmd.Flags().Changed("title") {
				if strings.TrimSpace(title) == "" {
					return &schema.ValidationError{Issues: []schema.Issue{{Path: "title", Message: "Title is required"}}}
				}
				p.Title = schema.Str(strings.TrimSpace(title))
			}
			if cmd.Flags().Changed("description") {
				p.Description = schema.Str(strings.TrimSpace(description))
			}
			if cmd.Flags().Changed("completed") {
				p.Completed = &completed
			}
			if p.IsEmpty() {
				return usageErr("nothing to change", "pass --title, --description or --completed")
			}

			s, err := a.open()
			if err != nil {
				return err
			}
			id, err := resolve(s, args[0])
			if err != nil {
				return err
			}
			if !s.Update(id, p) {
				a.noMatch(id)
				return nil
			}
			t, _ := s.FindByID(id)
			ui.OK(a.out, "updated "+ui.Truncate(t.Title, maxTitle))
			return a.saved(s)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description (empty clears it)")
	cmd.Flags().BoolVar(&completed, "completed", false, "mark completed (--completed=false reopens)")
	return cmd
}

func (a *app) newRemoveCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    argsUsage(1, "todo rm <ref> [--yes]"),
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
			if !yes && !a.confirm(fmt.Sprintf("Delete %q? This action cannot be undone. [y/N] ", t.Title)) {
				ui.Note(a.out, "kept")
				return nil
			}
			s.Remove(id)
			ui.OK(a.out, "removed "+ui.Truncate(t.Title, maxTitle))
			return a.saved(s)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

// confirm asks a yes/no question on the input stream. Anything but y or yes,
// including end of input, is a no.
func (a *app) confirm(question string) bool {
	fmt.Fprint(a.out, question)
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(a.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
