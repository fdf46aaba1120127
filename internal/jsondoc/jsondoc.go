// Package jsondoc keeps unknown members of JSON objects across a decode and
// re-encode through typed structs.
package jsondoc

import (
	"encoding/json"
	"fmt"
)

// Extra holds the members of a JSON object that a type does not declare.
type Extra map[string]json.RawMessage

// Leftover decodes data as a JSON object and returns the members whose keys
// are not in known. It returns nil when there are none.
func Leftover(data []byte, known ...string) (Extra, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// Merge encodes v, which must encode to a JSON object, and adds the members
// of extra that v does not already write.
func Merge(v any, extra Extra) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("merge extra fields: %w", err)
	}
	for k, raw := range extra {
		if _, ok := doc[k]; !ok {
			doc[k] = raw
		}
	}
	return json.Marshal(doc)
}
