package grading

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// FallbackScore is the neutral score used when grading fails.
const FallbackScore = 5.0

// Result is a grader's verdict on one answer. Scores are on the 0-10 scale.
type Result struct {
	AccuracyScore     float64 `json:"accuracy_score"`
	CompletenessScore float64 `json:"completeness_score"`
	ClarityScore      float64 `json:"clarity_score"`
	OverallScore      float64 `json:"overall_score"`
	Feedback          string  `json:"feedback"`
	KeyGap            string  `json:"key_gap,omitempty"`
}

// ErrInvalidResult indicates grader output that does not conform to the
// result schema.
type ErrInvalidResult struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResult) Error() string {
	return fmt.Sprintf("invalid grading result: %v", e.Err)
}

func (e *ErrInvalidResult) Unwrap() error { return e.Err }

// resultSchema requires feedback plus either an overall score or all three
// sub-scores.
var resultSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"accuracy_score":     map[string]any{"type": "number"},
		"completeness_score": map[string]any{"type": "number"},
		"clarity_score":      map[string]any{"type": "number"},
		"overall_score":      map[string]any{"type": "number"},
		"feedback":           map[string]any{"type": "string"},
		"key_gap":            map[string]any{"type": "string"},
	},
	"required": []any{"feedback"},
	"anyOf": []any{
		map[string]any{"required": []any{"overall_score"}},
		map[string]any{"required": []any{"accuracy_score", "completeness_score", "clarity_score"}},
	},
}

var compileResultSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	defBytes, err := json.Marshal(resultSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://grading-result.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// ParseResult validates and decodes grader output. Markdown code fences
// around the JSON are ignored. A missing overall score is computed from the
// sub-scores with the default rubric, and every score is clamped to [0, 10].
// Returns *ErrInvalidResult on failure.
func ParseResult(raw []byte) (Result, error) {
	content := stripFences(raw)

	var parsed any
	if err := json.Unmarshal(content, &parsed); err != nil {
		return Result{}, &ErrInvalidResult{Content: content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := compileResultSchema()
	if err != nil {
		return Result{}, &ErrInvalidResult{Content: content, Err: fmt.Errorf("compile schema: %w", err)}
	}
	if err := schema.Validate(parsed); err != nil {
		return Result{}, &ErrInvalidResult{Content: content, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var res Result
	if err := json.Unmarshal(content, &res); err != nil {
		return Result{}, &ErrInvalidResult{Content: content, Err: err}
	}

	res.AccuracyScore = clamp(res.AccuracyScore)
	res.CompletenessScore = clamp(res.CompletenessScore)
	res.ClarityScore = clamp(res.ClarityScore)
	if _, ok := parsed.(map[string]any)["overall_score"]; !ok {
		res.OverallScore = DefaultRubric().Overall(res.AccuracyScore, res.CompletenessScore, res.ClarityScore)
	}
	res.OverallScore = clamp(res.OverallScore)
	return res, nil
}

// Fallback is the neutral result used when the grader cannot be reached or
// returns something unusable.
func Fallback(err error) Result {
	return Result{
		AccuracyScore: FallbackScore,
		OverallScore:  FallbackScore,
		Feedback:      fmt.Sprintf("Grading error: %v. Good effort though.", err),
		KeyGap:        "Unknown",
	}
}

func stripFences(raw []byte) []byte {
	s := bytes.ReplaceAll(raw, []byte("```json"), nil)
	s = bytes.ReplaceAll(s, []byte("```"), nil)
	return bytes.TrimSpace(s)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 10:
		return 10
	}
	return v
}
