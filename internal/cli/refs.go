package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/tada/internal/store"
)

// minPrefix is the shortest id prefix accepted as a reference.
const minPrefix = 4

// resolve turns a reference typed by the user into a record id. A number is
// the 1-based position shown by `todo ls`; anything else is a full id or a
// unique id prefix. An id that matches nothing is returned as is so that the
// store can treat it as the no-op it is.
func resolve(s *store.Store, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", usageErr("empty reference", "pass an index from `todo ls` or an id")
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > s.Count() {
			return "", usageErr(
				fmt.Sprintf("index out of range: have %d, got %d", s.Count(), n),
				"run `todo ls` to see valid indexes",
			)
		}
		return s.All()[n-1].ID, nil
	}

	if _, ok := s.FindByID(ref); ok {
		return ref, nil
	}
	if len(ref) < minPrefix {
		return ref, nil
	}

	var matches []string
	for _, t := range s.All() {
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t.ID)
		}
	}
	switch len(matches) {
	case 0:
		return ref, nil
	case 1:
		return matches[0], nil
	}
	return "", usageErr(
		fmt.Sprintf("ambiguous id prefix %q matches %d todos", ref, len(matches)),
		"type more characters of the id",
	)
}
