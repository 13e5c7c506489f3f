// Package tui holds the bubbletea programs: the todo board and the
// two-section creation form. Every action goes straight to the store, so
// each change is saved as it happens.
package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/kv"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// Options tune the interactive programs.
type Options struct {
	// WatchPath is reloaded into the board whenever it changes on disk.
	// Empty disables watching.
	WatchPath string
	Logger    *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

// ReloadMsg asks the board to re-read the store.
type ReloadMsg struct{}

// RunBoard starts the board on the alternate screen and blocks until the
// user quits.
func RunBoard(s *store.Store, opts Options) error {
	p := tea.NewProgram(NewBoard(s), tea.WithAltScreen())
	if opts.WatchPath != "" {
		w, err := kv.Watch(opts.WatchPath, opts.logger(), func() { p.Send(ReloadMsg{}) })
		if err != nil {
			opts.logger().Warn("not watching for outside changes", "path", opts.WatchPath, "err", err)
		} else {
			defer w.Close()
		}
	}
	_, err := p.Run()
	return err
}

// RunForm starts the creation form and blocks until the user quits.
func RunForm(s *store.Store, opts Options) error {
	opts.logger().Debug("starting form")
	_, err := tea.NewProgram(NewForm(s)).Run()
	return err
}

var (
	keyQuit    = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
	keyToggle  = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	keyAdd     = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	keyEdit    = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	keyDelete  = key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete"))
	keyView    = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details"))
	keySubmit  = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	keyCancel  = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	keyMode    = key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "with description"))
	keyNext    = key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field"))
	keyPrev    = key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field"))
	keyYes     = key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete"))
	keyNo      = key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep"))
	keyAddRow  = key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add row"))
	keyDropRow = key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove row"))
	keyExit    = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit"))
)

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	return ti
}

// dialog frames a modal box the way the board frames itself.
func dialog(lines ...string) string {
	th := ui.Current()
	return lipgloss.NewStyle().
		Border(th.Border).
		BorderForeground(th.BorderColor).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// fieldError renders an inline validation message, or nothing.
func fieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return ui.Current().Error.Render(msg)
}
