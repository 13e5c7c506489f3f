package store

import "github.com/idilsaglam/tada/internal/model"

// All returns every record in insertion order. The slice is a copy.
func (s *Store) All() []model.Todo {
	out := make([]model.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Completed returns the records with Completed set.
func (s *Store) Completed() []model.Todo {
	return s.filter(true)
}

// Pending returns the records still to do.
func (s *Store) Pending() []model.Todo {
	return s.filter(false)
}

// Count is the total number of records.
func (s *Store) Count() int { return len(s.todos) }

// Stats returns the done and pending counts in one pass.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

func (s *Store) filter(completed bool) []model.Todo {
	out := make([]model.Todo, 0, len(s.todos))
	for _, t := range s.todos {
		if t.Completed == completed {
			out = append(out, t)
		}
	}
	return out
}
