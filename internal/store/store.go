// Package store holds the ordered todo collection and mirrors it into a
// kv.Store slot after every mutation.
//
// Creation goes through the schema package and fails loudly on invalid input.
// Update, Remove and Toggle on an unknown id are silent no-ops. Saving is a
// side effect of a mutation: a failed save is logged and kept in PersistErr,
// but the in-memory change stands.
//
// A Store is not safe for concurrent use; callers serialize access (the CLI
// and the bubbletea update loop both run on a single goroutine).
package store

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/kv"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/schema"
)

// DefaultKey is the slot the collection is saved under.
const DefaultKey = "todo-storage"

// ErrInvalidInput matches every creation failure caused by validation.
var ErrInvalidInput = schema.ErrInvalid

// ErrIDConflict is returned when the id generator keeps producing ids that
// are already taken.
var ErrIDConflict = errors.New("could not allocate a unique id")

const maxIDAttempts = 3

// IDGenerator hands out identifiers for new records.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator produces random (v4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

type Store struct {
	slot   kv.Store
	key    string
	ids    IDGenerator
	logger *log.Logger

	todos      []model.Todo
	persistErr error
}

// New builds a store over slot and loads whatever was saved there.
// A nil slot keeps the collection in memory only.
func New(slot kv.Store, opts ...Option) *Store {
	if slot == nil {
		slot = kv.NewMemoryStore()
	}
	s := &Store{
		slot:   slot,
		key:    DefaultKey,
		ids:    UUIDGenerator{},
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.todos = s.load()
	return s
}

// Key returns the slot key the store saves under.
func (s *Store) Key() string { return s.key }

// Reload replaces the collection with what is currently saved.
func (s *Store) Reload() {
	s.todos = s.load()
}

// PersistErr returns the error of the most recent save, or nil if it worked.
func (s *Store) PersistErr() error { return s.persistErr }

// AddSimple validates in against the simple creation shape and appends a
// new pending record.
func (s *Store) AddSimple(in schema.CreateInput) (model.Todo, error) {
	n, err := schema.ParseCreate(in)
	if err != nil {
		return model.Todo{}, fmt.Errorf("add todo: %w", err)
	}
	t, err := s.insert(n)
	if err != nil {
		return model.Todo{}, fmt.Errorf("add todo: %w", err)
	}
	return t, nil
}

// AddDetailed is AddSimple with a required description.
func (s *Store) AddDetailed(in schema.DetailedInput) (model.Todo, error) {
	n, err := schema.ParseDetailed(in)
	if err != nil {
		return model.Todo{}, fmt.Errorf("add todo with description: %w", err)
	}
	t, err := s.insert(n)
	if err != nil {
		return model.Todo{}, fmt.Errorf("add todo with description: %w", err)
	}
	return t, nil
}

func (s *Store) insert(n schema.Normalized) (model.Todo, error) {
	id := ""
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		candidate := s.ids.NewID()
		if s.index(candidate) < 0 {
			id = candidate
			break
		}
	}
	if id == "" {
		return model.Todo{}, ErrIDConflict
	}
	t := model.Todo{ID: id, Title: n.Title, Description: n.Description}
	s.todos = append(s.todos, t)
	s.persist()
	return t, nil
}

// Update merges p into the record with id. It reports whether a record
// matched; an unknown id changes nothing. Strings are trimmed like on
// creation, and a blank title in p is ignored so that no stored record ever
// has an empty title.
func (s *Store) Update(id string, p model.Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			s.logger.Debug("ignoring blank title in update", "id", id)
			p.Title = nil
		} else {
			p.Title = &title
		}
	}
	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		p.Description = &desc
	}
	s.todos[i] = p.Apply(s.todos[i])
	s.persist()
	return true
}

// Remove deletes the record with id, if any.
func (s *Store) Remove(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos = slices.Delete(s.todos, i, i+1)
	s.persist()
	return true
}

// Toggle flips the completion flag of the record with id, if any.
func (s *Store) Toggle(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.todos[i].Completed = !s.todos[i].Completed
	s.persist()
	return true
}

// FindByID returns the record with id and whether it exists.
func (s *Store) FindByID(id string) (model.Todo, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Todo{}, false
	}
	return s.todos[i], true
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.todos, func(t model.Todo) bool { return t.ID == id })
}
