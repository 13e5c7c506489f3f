package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/tada/internal/model"
)

const validID = "123e4567-e89b-12d3-a456-426614174000"

func TestParseCreate(t *testing.T) {
	tests := []struct {
		name    string
		in      CreateInput
		want    Normalized
		wantErr string
	}{
		{name: "title only", in: Simple("Test Todo"), want: Normalized{Title: "Test Todo"}},
		{name: "title and description", in: Simple("Test Todo", "Test Description"), want: Normalized{Title: "Test Todo", Description: "Test Description"}},
		{name: "trims fields", in: Simple("  Buy milk ", "  2L  "), want: Normalized{Title: "Buy milk", Description: "2L"}},
		{name: "blank description becomes empty", in: Simple("Buy milk", "   "), want: Normalized{Title: "Buy milk"}},
		{name: "empty title", in: Simple(""), wantErr: "Title is required"},
		{name: "whitespace title", in: Simple("   "), wantErr: "Title is required"},
		{name: "missing title", in: CreateInput{}, wantErr: "Title is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCreate(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalid))
				ve, ok := AsValidationError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, ve.Field("title"))
				assert.Len(t, ve.Issues, 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDetailed(t *testing.T) {
	got, err := ParseDetailed(Detailed("Write report", " Q3 summary "))
	require.NoError(t, err)
	assert.Equal(t, Normalized{Title: "Write report", Description: "Q3 summary"}, got)

	for _, desc := range []string{"", "   ", "\t\n"} {
		_, err := ParseDetailed(Detailed("Write report", desc))
		require.Error(t, err, "description %q", desc)
		ve, ok := AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, "Description is required", ve.Field("description"))
		assert.Empty(t, ve.Field("title"))
	}

	_, err = ParseDetailed(DetailedInput{Title: Str("Write report")})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Description is required", ve.Field("description"))
}

func TestParseDetailedReportsEveryField(t *testing.T) {
	_, err := ParseDetailed(DetailedInput{})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []Issue{
		{Path: "title", Message: "Title is required"},
		{Path: "description", Message: "Description is required"},
	}, ve.Issues)
	assert.Equal(t, "title: Title is required; description: Description is required", ve.Error())
}

func TestParseRecord(t *testing.T) {
	ok := model.Todo{ID: validID, Title: "Test Todo", Description: "Test Description", Completed: true}
	got, err := ParseRecord(ok)
	require.NoError(t, err)
	assert.Equal(t, ok, got)

	_, err = ParseRecord(model.Todo{ID: validID, Title: "Test Todo"})
	assert.NoError(t, err, "description is optional and completed defaults to false")

	_, err = ParseRecord(model.Todo{ID: "3FA85F64-5717-4562-B3FC-2C963F66AFA6", Title: "Test Todo"})
	assert.NoError(t, err, "upper-case hex is a well-formed id")

	for _, id := range []string{"invalid-uuid", "{3fa85f64-5717-4562-b3fc-2c963f66afa6}", "3fa85f6457174562b3fc2c963f66afa6"} {
		_, err = ParseRecord(model.Todo{ID: id, Title: "Test Todo"})
		assert.Error(t, err, id)
	}

	_, err = ParseRecord(model.Todo{ID: "invalid-uuid", Title: "Test Todo"})
	ve, isVE := AsValidationError(err)
	require.True(t, isVE)
	assert.Equal(t, "Invalid id", ve.Field("id"))

	_, err = ParseRecord(model.Todo{ID: validID})
	ve, isVE = AsValidationError(err)
	require.True(t, isVE)
	assert.Len(t, ve.Issues, 1)
	assert.Equal(t, "Title is required", ve.Field("title"))
}

func TestCreateOutputFitsRecord(t *testing.T) {
	n, err := ParseCreate(Simple("Test Todo", "Test Description"))
	require.NoError(t, err)
	_, err = ParseRecord(model.Todo{ID: validID, Title: n.Title, Description: n.Description})
	assert.NoError(t, err)

	n, err = ParseDetailed(Detailed("Test Todo", "Test Description"))
	require.NoError(t, err)
	_, err = ParseRecord(model.Todo{ID: validID, Title: n.Title, Description: n.Description})
	assert.NoError(t, err)
}

func TestValidateRecords(t *testing.T) {
	other := "9b2d6f3e-1c4a-4b8e-9f7a-2d3c4b5a6e7f"
	assert.NoError(t, ValidateRecords(nil))
	assert.NoError(t, ValidateRecords([]model.Todo{{ID: validID, Title: "a"}, {ID: other, Title: "b"}}))

	err := ValidateRecords([]model.Todo{
		{ID: validID, Title: "a"},
		{ID: validID, Title: "b"},
		{ID: other, Title: "  "},
	})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Duplicate id", ve.Field("todos.1.id"))
	assert.Equal(t, "Title is required", ve.Field("todos.2.title"))
}

func TestNest(t *testing.T) {
	ve := &ValidationError{Issues: []Issue{{Path: "title", Message: "Title is required"}}}
	n := ve.Nest("todosWithDescription", 3)
	assert.Equal(t, "Title is required", n.Field("todosWithDescription.3.title"))
	assert.Empty(t, n.Field("title"))
	assert.Equal(t, "Title is required", ve.Field("title"), "Nest must not modify the receiver")
}
