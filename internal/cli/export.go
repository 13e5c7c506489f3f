package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/model"
)

// exportDoc is the top-level TOML table; TOML has no bare arrays.
type exportDoc struct {
	Todos []model.Todo `toml:"todos"`
}

func (a *app) newExportCmd() *cobra.Command {
	var (
		format             string
		completed, pending bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write todos to stdout as json, yaml or toml",
		Args:  argsUsage(0, "todo export [--format json|yaml|toml] [--completed|--pending]"),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if completed && pending {
				return usageErr("--completed and --pending cannot be combined", "")
			}
			s, err := a.open()
			if err != nil {
				return err
			}
			todos := s.All()
			switch {
			case completed:
				todos = s.Completed()
			case pending:
				todos = s.Pending()
			}
			if todos == nil {
				todos = []model.Todo{}
			}
			return export(a.out, strings.ToLower(format), todos)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or toml")
	cmd.Flags().BoolVar(&completed, "completed", false, "only completed todos")
	cmd.Flags().BoolVar(&pending, "pending", false, "only pending todos")
	return cmd
}

func export(w io.Writer, format string, todos []model.Todo) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(todos); err != nil {
			return fmt.Errorf("export json: %w", err)
		}
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(todos); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("export yaml: %w", err)
		}
	case "toml":
		if err := toml.NewEncoder(w).Encode(exportDoc{Todos: todos}); err != nil {
			return fmt.Errorf("export toml: %w", err)
		}
	default:
		return usageErr(fmt.Sprintf("unknown export format %q", format), "use json, yaml or toml")
	}
	return nil
}
