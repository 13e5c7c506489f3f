// Package schema validates and normalizes todo input shapes.
//
// Three shapes are recognized:
//
//   - CreateInput: title required, description optional (defaults to "").
//   - DetailedInput: title and description both required.
//   - stored records: a well-formed UUID id, a non-blank title and a
//     completion flag defaulting to false.
//
// Every check is pure: a candidate goes in, and either a normalized value or
// a *ValidationError keyed by field path comes out. Whitespace-only strings
// count as empty.
package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	msgTitleRequired       = "Title is required"
	msgDescriptionRequired = "Description is required"
	msgInvalidID           = "Invalid id"
	msgDuplicateID         = "Duplicate id"
)

// CreateInput is the simple creation shape. Nil means the field was not supplied.
type CreateInput struct {
	Title       *string `json:"title" validate:"required,notblank"`
	Description *string `json:"description"`
}

// DetailedInput is the creation shape that also demands a description.
type DetailedInput struct {
	Title       *string `json:"title" validate:"required,notblank"`
	Description *string `json:"description" validate:"required,notblank"`
}

// Normalized is an accepted creation input: trimmed, with defaults filled in.
type Normalized struct {
	Title       string
	Description string
}

// record mirrors model.Todo with the constraints of the stored shape.
type record struct {
	ID          string `json:"id" validate:"required,id"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Str is a small helper for building inputs from plain strings.
func Str(s string) *string { return &s }

// Simple builds a CreateInput from a title and an optional description.
func Simple(title string, description ...string) CreateInput {
	in := CreateInput{Title: Str(title)}
	if len(description) > 0 {
		in.Description = Str(description[0])
	}
	return in
}

// Detailed builds a DetailedInput from plain strings.
func Detailed(title, description string) DetailedInput {
	return DetailedInput{Title: Str(title), Description: Str(description)}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("schema: register notblank: %v", err))
	}
	if err := v.RegisterValidation("id", wellFormedID); err != nil {
		panic(fmt.Sprintf("schema: register id: %v", err))
	}
	return v
}

// wellFormedID accepts a canonical 8-4-4-4-12 UUID in either letter case.
// validator's own uuid rule rejects upper-case hex.
func wellFormedID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return false
	}
	return strings.TrimSpace(f.String()) != ""
}

// ParseCreate validates the simple creation shape.
func ParseCreate(in CreateInput) (Normalized, error) {
	if err := check(in); err != nil {
		return Normalized{}, err
	}
	out := Normalized{Title: strings.TrimSpace(*in.Title)}
	if in.Description != nil {
		out.Description = strings.TrimSpace(*in.Description)
	}
	return out, nil
}

// ParseDetailed validates the detailed creation shape.
func ParseDetailed(in DetailedInput) (Normalized, error) {
	if err := check(in); err != nil {
		return Normalized{}, err
	}
	return Normalized{
		Title:       strings.TrimSpace(*in.Title),
		Description: strings.TrimSpace(*in.Description),
	}, nil
}

// ParseRecord validates a stored record. Loaded state goes through here.
func ParseRecord(t model.Todo) (model.Todo, error) {
	if err := check(record(t)); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

// ValidateRecords checks every record and the uniqueness of ids across them.
// Issue paths are keyed by position, e.g. "todos.2.id".
func ValidateRecords(todos []model.Todo) error {
	if _, bad := splitRecords(todos); bad != nil {
		return bad
	}
	return nil
}

// splitRecords separates valid records from rejected ones. The first
// occurrence of an id wins; later copies are rejected as duplicates.
func splitRecords(todos []model.Todo) ([]model.Todo, *ValidationError) {
	kept := make([]model.Todo, 0, len(todos))
	seen := make(map[string]struct{}, len(todos))
	var bad []*ValidationError
	for i, t := range todos {
		if _, err := ParseRecord(t); err != nil {
			if ve, ok := AsValidationError(err); ok {
				bad = append(bad, ve.Nest("todos", i))
			}
			continue
		}
		if _, dup := seen[t.ID]; dup {
			ve := &ValidationError{Issues: []Issue{{Path: "id", Message: msgDuplicateID}}}
			bad = append(bad, ve.Nest("todos", i))
			continue
		}
		seen[t.ID] = struct{}{}
		kept = append(kept, t)
	}
	return kept, Merge(bad...)
}

func check(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("schema: %w", err)
	}
	out := &ValidationError{Issues: make([]Issue, 0, len(verrs))}
	for _, fe := range verrs {
		out.Issues = append(out.Issues, Issue{Path: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "title":
		return msgTitleRequired
	case "description":
		return msgDescriptionRequired
	case "id":
		return msgInvalidID
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}
