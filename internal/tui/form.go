package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/schema"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/ui"
)

// Section names double as the path prefix of their rows' errors.
const (
	SectionSimple   = "todos"
	SectionDetailed = "todosWithDescription"
)

type formRow struct {
	title, desc textinput.Model
}

type section struct {
	name     string
	label    string
	detailed bool
	rows     []formRow
}

func (s *section) newRow() formRow {
	r := formRow{title: newInput("Title")}
	if s.detailed {
		r.desc = newInput("Description")
	}
	return r
}

// fields is the number of inputs per row.
func (s *section) fields() int {
	if s.detailed {
		return 2
	}
	return 1
}

// field addresses one input of the form.
type field struct {
	section, row, input int
}

type formKeys struct{}

func (formKeys) ShortHelp() []key.Binding {
	return []key.Binding{keyNext, keyAddRow, keyDropRow, keySubmit, keyExit}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {keyPrev}}
}

// Form creates several todos at once: plain ones in the first section and
// ones with a required description in the second. Rows left entirely blank
// are skipped; nothing is created while any other row is invalid.
type Form struct {
	store    *store.Store
	sections []*section
	focus    int
	errs     *schema.ValidationError
	status   string
	help     help.Model
}

// NewForm builds an empty form with one row per section.
func NewForm(s *store.Store) Form {
	f := Form{store: s, help: help.New()}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.sections = []*section{
		{name: SectionSimple, label: "TODO LIST"},
		{name: SectionDetailed, label: "TODO LIST with Description", detailed: true},
	}
	for _, s := range f.sections {
		s.rows = []formRow{s.newRow()}
	}
	f.errs = nil
	f.focus = 0
	f.applyFocus()
}

// fieldList flattens the inputs in display order.
func (f *Form) fieldList() []field {
	var out []field
	for si, s := range f.sections {
		for ri := range s.rows {
			for in := 0; in < s.fields(); in++ {
				out = append(out, field{section: si, row: ri, input: in})
			}
		}
	}
	return out
}

func (f *Form) current() field {
	fl := f.fieldList()
	if f.focus >= len(fl) {
		f.focus = len(fl) - 1
	}
	return fl[f.focus]
}

func (f *Form) input(fd field) *textinput.Model {
	r := &f.sections[fd.section].rows[fd.row]
	if fd.input == 1 {
		return &r.desc
	}
	return &r.title
}

func (f *Form) applyFocus() tea.Cmd {
	cur := f.current()
	var cmd tea.Cmd
	for _, fd := range f.fieldList() {
		in := f.input(fd)
		if fd == cur {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return cmd
}

func (f Form) Init() tea.Cmd { return textinput.Blink }

func (f Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateInput(msg)
	}

	switch {
	case key.Matches(km, keyExit):
		return f, tea.Quit
	case key.Matches(km, keyNext):
		f.focus = (f.focus + 1) % len(f.fieldList())
		return f, f.applyFocus()
	case key.Matches(km, keyPrev):
		n := len(f.fieldList())
		f.focus = (f.focus - 1 + n) % n
		return f, f.applyFocus()
	case key.Matches(km, keyAddRow):
		f.addRow()
		return f, f.applyFocus()
	case key.Matches(km, keyDropRow):
		f.dropRow()
		return f, f.applyFocus()
	case key.Matches(km, keySubmit):
		f.submit()
		return f, f.applyFocus()
	}
	return f.updateInput(msg)
}

func (f Form) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	in := f.input(f.current())
	*in, cmd = in.Update(msg)
	return f, cmd
}

// addRow appends a row to the focused section and moves to its title.
func (f *Form) addRow() {
	cur := f.current()
	s := f.sections[cur.section]
	s.rows = append(s.rows, s.newRow())
	f.focusOn(field{section: cur.section, row: len(s.rows) - 1})
}

// dropRow removes the focused row unless it is the last of its section.
func (f *Form) dropRow() {
	cur := f.current()
	s := f.sections[cur.section]
	if len(s.rows) <= 1 {
		f.status = "a section keeps at least one row"
		return
	}
	s.rows = append(s.rows[:cur.row], s.rows[cur.row+1:]...)
	f.errs = nil
	f.focusOn(field{section: cur.section, row: min(cur.row, len(s.rows)-1)})
}

func (f *Form) focusOn(target field) {
	for i, fd := range f.fieldList() {
		if fd == target {
			f.focus = i
			return
		}
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// submit validates every non-blank row and creates them all, or none.
func (f *Form) submit() {
	type entry struct {
		detailed    bool
		title, desc string
	}
	var (
		entries []entry
		issues  []*schema.ValidationError
	)
	for _, s := range f.sections {
		for i, r := range s.rows {
			e := entry{detailed: s.detailed, title: r.title.Value(), desc: r.desc.Value()}
			if blank(e.title) && blank(e.desc) {
				continue
			}
			var err error
			if s.detailed {
				_, err = schema.ParseDetailed(schema.Detailed(e.title, e.desc))
			} else {
				_, err = schema.ParseCreate(schema.Simple(e.title))
			}
			if verr, ok := schema.AsValidationError(err); ok {
				issues = append(issues, verr.Nest(s.name, i))
				continue
			}
			entries = append(entries, e)
		}
	}

	if f.errs = schema.Merge(issues...); f.errs != nil {
		f.status = fmt.Sprintf("%d field(s) need attention", len(f.errs.Issues))
		return
	}
	if len(entries) == 0 {
		f.status = "nothing to add"
		return
	}

	created := 0
	for _, e := range entries {
		var err error
		if e.detailed {
			_, err = f.store.AddDetailed(schema.Detailed(e.title, e.desc))
		} else {
			_, err = f.store.AddSimple(schema.Simple(e.title))
		}
		if err != nil {
			f.status = ui.Current().Error.Render(err.Error())
			return
		}
		created++
	}
	f.reset()
	f.status = fmt.Sprintf("created %d todo(s)", created)
	if err := f.store.PersistErr(); err != nil {
		f.status = ui.Current().Error.Render("not saved: " + err.Error())
	}
}

func (f Form) View() string {
	th := ui.Current()
	var b strings.Builder

	for si, s := range f.sections {
		if si > 0 {
			b.WriteString("\n")
		}
		b.WriteString(th.Title.Render(s.label) + "\n")
		for ri, r := range s.rows {
			path := fmt.Sprintf("%s.%d.", s.name, ri)
			lines := []string{th.Muted.Render(fmt.Sprintf("#%d", ri+1)) + " " + r.title.View()}
			if msg := f.errs.Field(path + "title"); msg != "" {
				lines = append(lines, "   "+fieldError(msg))
			}
			if s.detailed {
				lines = append(lines, "   "+r.desc.View())
				if msg := f.errs.Field(path + "description"); msg != "" {
					lines = append(lines, "   "+fieldError(msg))
				}
			}
			b.WriteString(lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n")
		}
	}

	if f.status != "" {
		b.WriteString("\n" + th.Muted.Render(f.status) + "\n")
	}
	b.WriteString("\n" + f.help.View(formKeys{}))
	return ui.Panel([]string{b.String()})
}
