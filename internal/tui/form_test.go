package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ctrlN = tea.KeyMsg{Type: tea.KeyCtrlN}
	ctrlX = tea.KeyMsg{Type: tea.KeyCtrlX}
)

func TestFormStartsWithOneRowPerSection(t *testing.T) {
	f := NewForm(seeded(t))

	require.Len(t, f.sections, 2)
	assert.Equal(t, SectionSimple, f.sections[0].name)
	assert.Equal(t, SectionDetailed, f.sections[1].name)
	assert.Len(t, f.sections[0].rows, 1)
	assert.Len(t, f.sections[1].rows, 1)
	assert.Equal(t, field{}, f.current())
}

func TestFormAddAndRemoveRows(t *testing.T) {
	f := send(t, NewForm(seeded(t)), ctrlN)
	assert.Len(t, f.sections[0].rows, 2)
	assert.Equal(t, field{section: 0, row: 1}, f.current())

	f = send(t, f, ctrlX)
	assert.Len(t, f.sections[0].rows, 1)

	f = send(t, f, ctrlX)
	assert.Len(t, f.sections[0].rows, 1)
	assert.Equal(t, "a section keeps at least one row", f.status)
}

func TestFormCreatesEveryValidRow(t *testing.T) {
	s := seeded(t)
	f := send(t, NewForm(s),
		runes("Buy milk"), tab,
		runes("Passport"), tab, runes("before friday"),
		enter,
	)

	require.Equal(t, 2, s.Count())
	all := s.All()
	assert.Equal(t, "Buy milk", all[0].Title)
	assert.Equal(t, "", all[0].Description)
	assert.Equal(t, "Passport", all[1].Title)
	assert.Equal(t, "before friday", all[1].Description)

	assert.Nil(t, f.errs)
	assert.Equal(t, "created 2 todo(s)", f.status)
	assert.Equal(t, "", f.sections[1].rows[0].title.Value())
}

func TestFormCreatesNothingWhileARowIsInvalid(t *testing.T) {
	s := seeded(t)
	f := send(t, NewForm(s), runes("Buy milk"), tab, runes("Passport"), enter)

	assert.Equal(t, 0, s.Count())
	require.NotNil(t, f.errs)
	assert.Equal(t, "Description is required", f.errs.Field("todosWithDescription.0.description"))
	assert.Equal(t, "", f.errs.Field("todos.0.title"))
	assert.Contains(t, f.View(), "Description is required")
	assert.Equal(t, "Buy milk", f.sections[0].rows[0].title.Value())
}

func TestFormKeysErrorsByRow(t *testing.T) {
	s := seeded(t)
	// Blank first row in the detailed section, title-only second row.
	f := send(t, NewForm(s), tab, ctrlN, runes("Passport"), enter)

	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "Description is required", f.errs.Field("todosWithDescription.1.description"))
	assert.Equal(t, "", f.errs.Field("todosWithDescription.0.description"))
}

func TestFormSkipsBlankRows(t *testing.T) {
	s := seeded(t)
	f := send(t, NewForm(s), runes("   "), enter)

	assert.Equal(t, 0, s.Count())
	assert.Nil(t, f.errs)
	assert.Equal(t, "nothing to add", f.status)
}
