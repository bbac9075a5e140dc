package template

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/invoice-extractor/internal/common"
)

// BuildDocumentSchema returns a JSON-Schema (draft 2020-12 subset) for the
// template document format as a generic map. We compile it once and use it to
// reject malformed documents before any typed construction happens.
func BuildDocumentSchema() map[string]any {
	fieldDef := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"pattern": map[string]any{"type": "string", "minLength": 1},
			"group":   map[string]any{"type": "integer", "minimum": 0},
			"transform": map[string]any{
				"type": "string",
				"enum": []string{"text", "currency", "number", "date"},
			},
			"required": map[string]any{"type": "boolean"},
		},
		"required": []string{"pattern"},
	}

	templateDef := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
			"keywords": map[string]any{
				"oneOf": []any{
					map[string]any{"type": "string"},
					map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
			},
			"fields": map[string]any{
				"type":                 "object",
				"additionalProperties": fieldDef,
			},
		},
		"required": []string{"fields"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"templates": map[string]any{
				"type":  "array",
				"items": templateDef,
			},
		},
	}
}

// validateDocument validates JSON bytes against the document schema.
// Violations are surfaced as ErrMalformedTemplate.
func validateDocument(data []byte) error {
	b, err := json.Marshal(BuildDocumentSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("templates.schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("templates.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("parse template document: %w: %w", common.ErrMalformedTemplate, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("template document does not match schema: %w: %w", common.ErrMalformedTemplate, err)
	}
	return nil
}
