package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/ui"
)

func (a *app) newAddCmd() *cobra.Command {
	var (
		description string
		detailed    bool
	)
	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new todo (the title can be multiple words)",
		Example: `  todo add "Buy milk"
  todo add Call the bank -d "ask about the fees"
  todo add --detailed -d "before friday" Renew passport`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open()
			if err != nil {
				return err
			}

			var title, desc *string
			if len(args) > 0 {
				title = schema.Str(strings.Join(args, " "))
			}
			if cmd.Flags().Changed("description") {
				desc = schema.Str(description)
			}

			var t model.Todo
			if detailed {
				t, err = s.AddDetailed(schema.DetailedInput{Title: title, Description: desc})
			} else {
				t, err = s.AddSimple(schema.CreateInput{Title: title, Description: desc})
			}
			if err != nil {
				return err
			}
			ui.OK(a.out, "added "+ui.Truncate(t.Title, maxTitle))
			return a.saved(s)
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "description of the todo")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "require a description")
	return cmd
}
