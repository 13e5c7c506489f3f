// Package cli wires the cobra command tree to the todo store.
//
// Run returns the process exit code: 0 ok, 1 runtime error, 2 usage or
// validation error.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/kv"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Options carry the process streams. Nil fields default to os.Stdin,
// os.Stdout and os.Stderr.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type app struct {
	in       io.Reader
	out, err io.Writer

	cfgFile string
	cfg     *config.Config
	logger  *log.Logger

	slot  kv.Store
	todos *store.Store
}

// Run executes the command line in args and returns the exit code.
func Run(args []string, opt Options) int {
	a := &app{in: opt.Stdin, out: opt.Stdout, err: opt.Stderr}
	if a.in == nil {
		a.in = os.Stdin
	}
	if a.out == nil {
		a.out = os.Stdout
	}
	if a.err == nil {
		a.err = os.Stderr
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.err)

	runErr := root.Execute()
	if err := a.close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("close storage: %w", err)
	}
	return a.report(runErr)
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todo",
		Short:         "todo - a tiny todo tracker for the terminal",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErr("unknown subcommand: "+args[0], "run `todo --help` for the list of subcommands")
			}
			_ = cmd.Help()
			return &exitErr{code: exitUsage}
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErr(err.Error(), "")
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: ./tada.yaml or $XDG_CONFIG_HOME/tada/tada.yaml)")
	pf.String("storage", "", "storage backend: file, bolt, sqlite or memory")
	pf.String("path", "", "storage location (directory for file, database file otherwise)")
	pf.String("theme", "", "color theme: classic, neon or mono")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.Bool("group", false, "group lists by pending/done")

	root.AddCommand(
		a.newAddCmd(),
		a.newListCmd(),
		a.newShowCmd(),
		a.newDoneCmd(),
		a.newEditCmd(),
		a.newRemoveCmd(),
		a.newStatsCmd(),
		a.newExportCmd(),
		a.newBoardCmd(),
		a.newFormCmd(),
	)
	return root
}

// configure loads the configuration and sets up theme and logger. The
// storage itself is opened lazily by the commands that need it.
func (a *app) configure(cmd *cobra.Command) error {
	pf := cmd.Root().PersistentFlags()
	cfg, err := config.Load(a.cfgFile,
		config.Binding{Key: "storage.backend", Flag: pf.Lookup("storage")},
		config.Binding{Key: "storage.path", Flag: pf.Lookup("path")},
		config.Binding{Key: "ui.theme", Flag: pf.Lookup("theme")},
		config.Binding{Key: "log.level", Flag: pf.Lookup("log-level")},
		config.Binding{Key: "ui.group", Flag: pf.Lookup("group")},
	)
	if err != nil {
		return usageErr(err.Error(), "")
	}
	a.cfg = cfg
	ui.SetTheme(cfg.UI.Theme)
	a.logger = logging.New(a.err, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	a.logger.Debug("config loaded", "backend", cfg.Storage.Backend, "path", cfg.Storage.Path, "key", cfg.Storage.Key)
	return nil
}

// open returns the todo store, opening the storage backend on first use.
func (a *app) open() (*store.Store, error) {
	if a.todos != nil {
		return a.todos, nil
	}
	slot, err := kv.Open(kv.Options{Backend: a.cfg.Storage.Backend, Path: a.cfg.Storage.Path})
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.slot = slot
	a.todos = store.New(slot, store.WithKey(a.cfg.Storage.Key), store.WithLogger(a.logger))
	return a.todos, nil
}

func (a *app) close() error {
	if a.slot == nil {
		return nil
	}
	err := a.slot.Close()
	a.slot, a.todos = nil, nil
	return err
}

// watchPath is the file the interactive view watches for outside changes.
// Only the file backend has one.
func (a *app) watchPath() string {
	if a.cfg == nil || a.cfg.Storage.Backend != kv.BackendFile {
		return ""
	}
	dir := a.cfg.Storage.Path
	if dir == "" {
		dir = kv.DefaultPath(kv.BackendFile)
	}
	return kv.FilePath(dir, a.cfg.Storage.Key)
}

// saved turns a failed save of the last mutation into a runtime error. The
// change itself is kept in memory, but a one-shot command exits right after.
func (a *app) saved(s *store.Store) error {
	if err := s.PersistErr(); err != nil {
		return &exitErr{code: exitError, err: fmt.Errorf("change not saved: %w", err)}
	}
	return nil
}

// report prints runErr and maps it to an exit code.
func (a *app) report(runErr error) int {
	if runErr == nil {
		return exitOK
	}

	var ee *exitErr
	if errors.As(runErr, &ee) {
		if ee.err != nil {
			ui.Fail(a.err, ee.err.Error())
		}
		if ee.hint != "" {
			ui.Note(a.err, "Hint: "+ee.hint)
		}
		return ee.code
	}

	if verr, ok := schema.AsValidationError(runErr); ok {
		for _, is := range verr.Issues {
			ui.Fail(a.err, is.Path+": "+is.Message)
		}
		return exitUsage
	}

	ui.Fail(a.err, runErr.Error())
	return exitError
}

// exitErr carries an explicit exit code. A nil err means the message was
// already printed.
type exitErr struct {
	code int
	err  error
	hint string
}

func (e *exitErr) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitErr) Unwrap() error { return e.err }

func usageErr(msg, hint string) error {
	return &exitErr{code: exitUsage, err: errors.New(msg), hint: hint}
}

// argsUsage is cobra.ExactArgs with a usage exit code.
func argsUsage(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usageErr("usage: "+usage, "")
		}
		return nil
	}
}
