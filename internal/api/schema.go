package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema that a response body must satisfy.
type Schema struct {
	Name       string
	Definition map[string]any
}

var (
	wordSchema = &Schema{
		Name: "word",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"id", "english", "uzbek"},
			"properties": map[string]any{
				"id":      map[string]any{"type": []any{"integer", "string"}},
				"english": map[string]any{"type": "string"},
				"uzbek":   map[string]any{"type": "string"},
			},
		},
	}

	wordPageSchema = &Schema{
		Name: "word_page",
		Definition: map[string]any{
			"oneOf": []any{
				map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
				map[string]any{
					"type":     "object",
					"required": []any{"results"},
					"properties": map[string]any{
						"results": map[string]any{"type": "array", "items": map[string]any{"type": "object"}},
						"count":   map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
	}

	startSchema = &Schema{
		Name: "test_start",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"session_id"},
			"properties": map[string]any{
				"session_id":      map[string]any{"type": []any{"integer", "string"}},
				"total_questions": map[string]any{"type": "integer", "minimum": 0},
				"total_words":     map[string]any{"type": "integer", "minimum": 0},
			},
		},
	}

	// question and next share one shape: either finished, or a prompt.
	questionSchema = &Schema{
		Name: "test_question",
		Definition: map[string]any{
			"type": "object",
			"oneOf": []any{
				map[string]any{
					"required":   []any{"finished"},
					"properties": map[string]any{"finished": map[string]any{"const": true}},
				},
				map[string]any{
					"required": []any{"question"},
					"properties": map[string]any{
						"finished": map[string]any{"const": false},
						"question": map[string]any{"type": "string"},
						"progress": map[string]any{"type": "integer", "minimum": 0},
						"total":    map[string]any{"type": "integer", "minimum": 0},
					},
				},
			},
		},
	}

	answerSchema = &Schema{
		Name: "test_answer",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"correct"},
			"properties": map[string]any{
				"correct":  map[string]any{"type": "boolean"},
				"expected": map[string]any{"type": "string"},
				"finished": map[string]any{"type": "boolean"},
				"progress": map[string]any{"type": "integer", "minimum": 0},
				"total":    map[string]any{"type": "integer", "minimum": 0},
			},
		},
	}

	finishSchema = &Schema{
		Name: "test_finish",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"correct", "wrong", "percentage"},
			"properties": map[string]any{
				"total_questions": map[string]any{"type": "integer", "minimum": 0},
				"correct":         map[string]any{"type": "integer", "minimum": 0},
				"wrong":           map[string]any{"type": "integer", "minimum": 0},
				"percentage":      map[string]any{"type": "number"},
				"mistakes": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"prompt", "expected"},
						"properties": map[string]any{
							"prompt":   map[string]any{"type": "string"},
							"expected": map[string]any{"type": "string"},
							"provided": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}

	authSchema = &Schema{
		Name: "auth",
		Definition: map[string]any{
			"type":     "object",
			"required": []any{"access", "user"},
			"properties": map[string]any{
				"access":  map[string]any{"type": "string", "minLength": 1},
				"refresh": map[string]any{"type": "string"},
				"user":    map[string]any{"type": "object"},
			},
		},
	}
)

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateBody checks raw against schema. A nil schema always passes.
func validateBody(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}

	compiled, err := compiledSchema(schema)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}

func compiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a decoded JSON value, so round-trip the definition.
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
