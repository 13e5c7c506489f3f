package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

type mode int

const (
	browsing mode = iota
	adding
	editing
	confirming
	viewing
)

// card adapts a todo to bubbles/list.Item.
type card struct{ todo model.Todo }

func (c card) FilterValue() string { return c.todo.Title }

// cardDelegate renders a card as two lines: status and title, then the
// description.
type cardDelegate struct{}

func (cardDelegate) Height() int                         { return 2 }
func (cardDelegate) Spacing() int                        { return 1 }
func (cardDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (cardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	c, ok := item.(card)
	if !ok {
		return
	}
	th := ui.Current()

	box := th.Muted.Render(th.BoxUnchecked)
	title := c.todo.Title
	if c.todo.Completed {
		box = th.Success.Render(th.BoxChecked)
		title = th.Done.Render(title)
	}
	desc := c.todo.Description
	if desc == "" {
		desc = "No description"
	}

	prefix := "  "
	if index == m.Index() {
		prefix = th.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s\n    %s", prefix, box, title, th.Muted.Render(ui.Truncate(desc, 70)))
}

// Board is the interactive card view of the store.
type Board struct {
	store *store.Store
	list  list.Model
	mode  mode

	title, desc textinput.Model
	focus       int
	errs        *schema.ValidationError
	detailed    bool // add demands a description

	target model.Todo // record being edited, deleted or viewed
	status string
}

// NewBoard builds the board over s.
func NewBoard(s *store.Store) Board {
	l := list.New(nil, cardDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = ui.Current().Title
	l.Styles.HelpStyle = ui.Current().Muted
	l.Styles.PaginationStyle = ui.Current().Muted
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keyToggle, keyAdd, keyEdit, keyDelete, keyView}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys
	l.KeyMap.Quit = keyQuit

	b := Board{
		store: s,
		list:  l,
		title: newInput("Title"),
		desc:  newInput("Description (optional)"),
	}
	b.refresh()
	return b
}

// refresh copies the store into the list and keeps the cursor in range.
func (b *Board) refresh() {
	todos := b.store.All()
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, card{todo: t})
	}
	cursor := b.list.Index()
	b.list.SetItems(items)
	if cursor >= len(items) {
		cursor = len(items) - 1
	}
	if cursor >= 0 {
		b.list.Select(cursor)
	}
	done, pending := b.store.Stats()
	b.list.Title = ui.Header(done, pending)
}

func (b *Board) selected() (model.Todo, bool) {
	c, ok := b.list.SelectedItem().(card)
	return c.todo, ok
}

// saved reports the outcome of the last write in the status line.
func (b *Board) saved(msg string) {
	if err := b.store.PersistErr(); err != nil {
		b.status = ui.Current().Error.Render("not saved: " + err.Error())
		return
	}
	b.status = msg
}

func (b Board) Init() tea.Cmd { return nil }

func (b Board) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.list.SetSize(msg.Width-4, msg.Height-6)
		return b, nil
	case ReloadMsg:
		b.store.Reload()
		b.refresh()
		return b, nil
	case tea.KeyMsg:
		switch b.mode {
		case adding, editing:
			return b.updateInputs(msg)
		case confirming:
			return b.updateConfirm(msg)
		case viewing:
			b.mode = browsing
			return b, nil
		}
		return b.updateBrowse(msg)
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b Board) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyQuit):
		return b, tea.Quit
	case key.Matches(msg, keyToggle):
		if t, ok := b.selected(); ok {
			b.store.Toggle(t.ID)
			b.refresh()
			b.saved("toggled")
		}
		return b, nil
	case key.Matches(msg, keyAdd):
		b.mode = adding
		b.errs = nil
		b.setDetailed(false)
		b.title.SetValue("")
		b.desc.SetValue("")
		return b, b.focusField(0)
	case key.Matches(msg, keyEdit):
		t, ok := b.selected()
		if !ok {
			return b, nil
		}
		b.mode = editing
		b.errs = nil
		b.target = t
		b.title.SetValue(t.Title)
		b.title.CursorEnd()
		b.desc.SetValue(t.Description)
		b.desc.CursorEnd()
		return b, b.focusField(0)
	case key.Matches(msg, keyDelete):
		if t, ok := b.selected(); ok {
			b.mode = confirming
			b.target = t
		}
		return b, nil
	case key.Matches(msg, keyView):
		if t, ok := b.selected(); ok {
			b.mode = viewing
			b.target = t
		}
		return b, nil
	}

	var cmd tea.Cmd
	b.list, cmd = b.list.Update(msg)
	return b, cmd
}

func (b Board) updateInputs(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyCancel):
		b.closeInputs()
		return b, nil
	case key.Matches(msg, keyNext), key.Matches(msg, keyPrev):
		return b, b.focusField(1 - b.focus)
	case key.Matches(msg, keyMode) && b.mode == adding:
		b.setDetailed(!b.detailed)
		b.errs = nil
		return b, nil
	case key.Matches(msg, keySubmit):
		if b.mode == adding {
			b.submitAdd()
		} else {
			b.submitEdit()
		}
		return b, nil
	}

	var cmd tea.Cmd
	if b.focus == 0 {
		b.title, cmd = b.title.Update(msg)
	} else {
		b.desc, cmd = b.desc.Update(msg)
	}
	return b, cmd
}

func (b *Board) setDetailed(on bool) {
	b.detailed = on
	if on {
		b.desc.Placeholder = "Description"
	} else {
		b.desc.Placeholder = "Description (optional)"
	}
}

func (b *Board) submitAdd() {
	var (
		t   model.Todo
		err error
	)
	if b.detailed {
		t, err = b.store.AddDetailed(schema.Detailed(b.title.Value(), b.desc.Value()))
	} else {
		t, err = b.store.AddSimple(schema.CreateInput{
			Title:       schema.Str(b.title.Value()),
			Description: schema.Str(b.desc.Value()),
		})
	}
	if err != nil {
		b.errs, _ = schema.AsValidationError(err)
		if b.errs == nil {
			b.status = ui.Current().Error.Render(err.Error())
		}
		return
	}
	b.closeInputs()
	b.refresh()
	b.list.Select(len(b.list.Items()) - 1)
	b.saved("added " + ui.Truncate(t.Title, 40))
}

func (b *Board) submitEdit() {
	title := strings.TrimSpace(b.title.Value())
	if title == "" {
		b.errs = &schema.ValidationError{Issues: []schema.Issue{{Path: "title", Message: "Title is required"}}}
		return
	}
	desc := strings.TrimSpace(b.desc.Value())
	if !b.store.Update(b.target.ID, model.Patch{Title: &title, Description: &desc}) {
		b.status = "that todo is gone"
	} else {
		b.saved("updated " + ui.Truncate(title, 40))
	}
	b.closeInputs()
	b.refresh()
}

func (b *Board) closeInputs() {
	b.mode = browsing
	b.errs = nil
	b.title.Blur()
	b.desc.Blur()
}

func (b *Board) focusField(i int) tea.Cmd {
	b.focus = i
	if i == 0 {
		b.desc.Blur()
		return b.title.Focus()
	}
	b.title.Blur()
	return b.desc.Focus()
}

func (b Board) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keyYes):
		b.store.Remove(b.target.ID)
		b.mode = browsing
		b.refresh()
		b.saved("deleted " + ui.Truncate(b.target.Title, 40))
	case key.Matches(msg, keyNo):
		b.mode = browsing
	}
	return b, nil
}

func (b Board) View() string {
	th := ui.Current()
	var content string

	switch b.mode {
	case adding, editing:
		head, hint := "Add todo", "tab switch field • ctrl+t toggle description • enter save • esc cancel"
		switch {
		case b.mode == editing:
			head, hint = "Edit todo", "tab switch field • enter save • esc cancel"
		case b.detailed:
			head = "Add todo with description"
		}
		content = lipgloss.JoinVertical(lipgloss.Left,
			b.list.View(),
			dialog(
				th.Title.Render(head),
				b.title.View(), fieldError(b.errs.Field("title")),
				b.desc.View(), fieldError(b.errs.Field("description")),
				th.Muted.Render(hint),
			),
		)
	case confirming:
		content = dialog(
			th.Title.Render("Delete todo?"),
			fmt.Sprintf("%q", b.target.Title),
			th.Error.Render("This action cannot be undone."),
			th.Muted.Render("y delete • n keep"),
		)
	case viewing:
		content = lipgloss.JoinVertical(lipgloss.Left,
			ui.Details(b.target),
			th.Muted.Render("any key to go back"),
		)
	default:
		content = b.list.View()
	}

	if b.status != "" {
		content += "\n" + th.Muted.Render(b.status)
	}
	return ui.Panel([]string{content})
}
