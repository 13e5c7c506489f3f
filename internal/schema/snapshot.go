package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
)

// SnapshotVersion is written into every persisted blob.
const SnapshotVersion = 0

// Snapshot is the persisted layout: {"state":{"todos":[...]},"version":0}.
type Snapshot struct {
	State   SnapshotState `json:"state"`
	Version int           `json:"version"`
}

// SnapshotState holds the ordered collection.
type SnapshotState struct {
	Todos []model.Todo `json:"todos"`
}

const snapshotSchemaURL = "todo-storage.schema.json"

// Structure only; per-record rules live in ParseRecord.
const snapshotSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["state"],
  "properties": {
    "version": {"type": "integer", "minimum": 0},
    "state": {
      "type": "object",
      "required": ["todos"],
      "properties": {
        "todos": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "id": {"type": "string"},
              "title": {"type": "string"},
              "description": {"type": "string"},
              "completed": {"type": "boolean"}
            }
          }
        }
      }
    }
  }
}`

var (
	snapshotOnce     sync.Once
	snapshotCompiled *jsonschema.Schema
	snapshotErr      error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
			snapshotErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		snapshotCompiled, snapshotErr = c.Compile(snapshotSchemaURL)
	})
	return snapshotCompiled, snapshotErr
}

// CheckSnapshot validates the structure of a raw persisted blob.
func CheckSnapshot(raw []byte) error {
	sch, err := compiledSnapshotSchema()
	if err != nil {
		return fmt.Errorf("compile snapshot schema: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("snapshot schema: %w", err)
	}
	return nil
}

// EncodeSnapshot serializes the collection in the persisted layout.
func EncodeSnapshot(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}
	b, err := json.Marshal(Snapshot{State: SnapshotState{Todos: todos}, Version: SnapshotVersion})
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// DecodeSnapshot checks and decodes a persisted blob. Records that fail the
// stored shape (bad id, blank title, repeated id) are returned as rejected
// instead of failing the whole snapshot.
func DecodeSnapshot(raw []byte) (kept []model.Todo, rejected *ValidationError, err error) {
	if err := CheckSnapshot(raw); err != nil {
		return nil, nil, err
	}
	var ss Snapshot
	if err := json.Unmarshal(raw, &ss); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal: %w", err)
	}
	kept, rejected = splitRecords(ss.State.Todos)
	return kept, rejected, nil
}
