package catalog

import (
	"fmt"
	"strings"
)

// validate performs all structural checks on a question set.
// Returns a combined error describing all problems found, or nil if valid.
func validate(topics []Topic, questions []Question) error {
	var errs []string

	topicSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		switch {
		case t.ID == "":
			errs = append(errs, "topic with empty ID")
		case topicSet[t.ID]:
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		case NormalizeTopic(t.ID) != t.ID:
			errs = append(errs, fmt.Sprintf("topic ID %q is not normalized (want %q)", t.ID, NormalizeTopic(t.ID)))
		}
		topicSet[t.ID] = true
	}

	idSet := make(map[string]bool, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			errs = append(errs, "question with empty ID")
			continue
		}
		if idSet[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		idSet[q.ID] = true

		prefix := fmt.Sprintf("question %q", q.ID)
		if !topicSet[q.Topic] {
			errs = append(errs, fmt.Sprintf("%s references undeclared topic %q", prefix, q.Topic))
		}
		if !q.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown difficulty %q", prefix, q.Difficulty))
		}
		if strings.TrimSpace(q.Text) == "" {
			errs = append(errs, fmt.Sprintf("%s: empty text", prefix))
		}
		if len(q.IdealPoints) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no ideal points", prefix))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("question catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
