package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog file format major version this build reads.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for catalog files of another major version.
var ErrUnsupportedVersion = errors.New("unsupported catalog version")

// document is the on-disk catalog format.
type document struct {
	Version   string     `json:"version"`
	Topics    []Topic    `json:"topics"`
	Questions []Question `json:"questions"`
}

// documentSchema is the JSON schema every catalog file must satisfy before
// it is decoded.
var documentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"version": map[string]any{
			"type":    "string",
			"pattern": `^v[0-9]+\.[0-9]+\.[0-9]+$`,
		},
		"topics": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":          map[string]any{"type": "string", "minLength": 1},
					"name":        map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
				},
				"required": []any{"id", "name"},
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"topic":      map[string]any{"type": "string", "minLength": 1},
					"difficulty": map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
					"text":       map[string]any{"type": "string", "minLength": 1},
					"ideal_points": map[string]any{
						"type":     "array",
						"minItems": 1,
						"items":    map[string]any{"type": "string"},
					},
					"hints": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
				},
				"required": []any{"id", "topic", "difficulty", "text", "ideal_points"},
			},
		},
	},
	"required": []any{"version", "questions"},
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a plain JSON value, so round-trip the Go literal.
	b, err := json.Marshal(documentSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "schema://question-catalog.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// Load reads a catalog file. Files ending in .yaml or .yml are parsed as
// YAML, anything else as JSON.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}

	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a JSON catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %q (want %s.x.y)", ErrUnsupportedVersion, doc.Version, SupportedMajor)
	}

	for i := range doc.Questions {
		doc.Questions[i].Topic = NormalizeTopic(doc.Questions[i].Topic)
	}
	return New(doc.Topics, doc.Questions)
}

// yamlToJSON converts a YAML document to JSON so that both formats go
// through the same schema check.
func yamlToJSON(raw []byte) ([]byte, error) {
	var v any
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
