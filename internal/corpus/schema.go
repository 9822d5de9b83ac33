package corpus

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

// RecordSchema describes a single question record as the quiz app reads it.
var RecordSchema = &Schema{
	Name: "question-record",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":   map[string]any{"type": "integer", "minimum": 0},
			"text": map[string]any{"type": "string", "minLength": 1},
			"choices": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 5,
				"maxItems": 5,
			},
			"correct": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "integer", "minimum": 0, "maximum": 4},
				"minItems":    1,
				"uniqueItems": true,
			},
			"type":        map[string]any{"type": "string", "enum": []any{"single", "multiple"}},
			"difficulty":  map[string]any{"type": "string", "enum": []any{"easy", "normal", "hard"}},
			"year":        map[string]any{"type": "integer"},
			"isMorning":   map[string]any{"type": "boolean"},
			"field":       map[string]any{"type": "string", "minLength": 1},
			"explanation": map[string]any{"type": "string"},
		},
		"required": []any{
			"id", "text", "choices", "correct", "type",
			"difficulty", "year", "isMorning", "field", "explanation",
		},
		"additionalProperties": false,
	},
}

// FileSchema is the minimal shape a persisted corpus must have to be
// merged: an array of objects carrying an integer id.
var FileSchema = &Schema{
	Name: "question-corpus",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"id"},
			"properties": map[string]any{
				"id": map[string]any{"type": "integer"},
			},
		},
	},
}

// SchemaError reports a document that does not satisfy a schema. Index is
// the corpus position of the offending record, or -1 for the whole file.
type SchemaError struct {
	Schema string
	Index  int
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("schema %q: %v", e.Schema, e.Err)
	}
	return fmt.Sprintf("schema %q: record %d: %v", e.Schema, e.Index, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateJSON checks raw JSON against schema.
func validateJSON(schema *Schema, raw []byte, index int) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &SchemaError{Schema: schema.Name, Index: index, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return &SchemaError{Schema: schema.Name, Index: index, Err: err}
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(url, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
