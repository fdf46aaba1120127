package match

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Input is a candidate and a job read from one document.
type Input struct {
	Candidate Candidate `json:"candidate" yaml:"candidate"`
	Job       Job       `json:"job" yaml:"job"`
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var inputSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"candidate": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":             map[string]any{"type": "string"},
				"skills":           stringList,
				"experience_years": map[string]any{"type": "number", "minimum": 0},
			},
		},
		"job": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"title":            map[string]any{"type": "string"},
				"company":          map[string]any{"type": "string"},
				"required_skills":  stringList,
				"preferred_skills": stringList,
				"interview_topics": stringList,
				"experience_required": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"min": map[string]any{"type": "number", "minimum": 0},
						"max": map[string]any{"type": "number", "minimum": 0},
					},
				},
			},
		},
	},
	"required": []any{"candidate", "job"},
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(inputSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var def any
	if err := json.Unmarshal(b, &def); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	const url = "schema://fit-input.json"
	if err := c.AddResource(url, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(url)
})

// LoadFile reads an Input from a JSON or YAML file (by extension).
func LoadFile(path string) (Input, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("read fit input: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		var v any
		if err := yaml.Unmarshal(raw, &v); err != nil {
			return Input{}, fmt.Errorf("parse fit input %s: %w", path, err)
		}
		if raw, err = json.Marshal(v); err != nil {
			return Input{}, fmt.Errorf("parse fit input %s: %w", path, err)
		}
	}
	in, err := Parse(raw)
	if err != nil {
		return Input{}, fmt.Errorf("load fit input %s: %w", path, err)
	}
	return in, nil
}

// Parse validates and decodes a JSON Input document.
func Parse(raw []byte) (Input, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Input{}, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := compileSchema()
	if err != nil {
		return Input{}, fmt.Errorf("compile fit schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return Input{}, fmt.Errorf("schema validation failed: %w", err)
	}

	var in Input
	if err := json.Unmarshal(raw, &in); err != nil {
		return Input{}, fmt.Errorf("decode fit input: %w", err)
	}
	return in, nil
}
