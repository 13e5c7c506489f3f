package store

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/tada/internal/kv"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/schema"
)

// load reads the slot. Anything unreadable degrades to an empty collection.
func (s *Store) load() []model.Todo {
	raw, err := s.slot.Get(s.key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("load failed, starting empty", "key", s.key, "err", err)
		}
		return []model.Todo{}
	}
	todos, rejected, err := schema.DecodeSnapshot(raw)
	if err != nil {
		s.logger.Warn("stored data is malformed, starting empty", "key", s.key, "err", err)
		return []model.Todo{}
	}
	if rejected != nil {
		s.logger.Warn("dropped invalid records", "key", s.key, "issues", len(rejected.Issues), "err", rejected)
	}
	return todos
}

// persist writes the whole collection. The outcome never touches s.todos.
func (s *Store) persist() {
	raw, err := schema.EncodeSnapshot(s.todos)
	if err == nil {
		err = s.slot.Put(s.key, raw)
	}
	if err != nil {
		s.persistErr = fmt.Errorf("save %s: %w", s.key, err)
		s.logger.Error("save failed", "key", s.key, "err", err)
		return
	}
	s.persistErr = nil
}
