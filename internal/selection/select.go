package selection

import (
	"fmt"
	"time"

	"github.com/abhisek/mockmentor/internal/analytics"
	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/mastery"
)

// Request describes what to select.
type Request struct {
	Mode  Mode
	Topic string
	Count int
}

// Select applies the optional topic filter, narrows the candidates for the
// mode and then draws req.Count questions (at least one) with
// SelectInterleaved.
//
// An empty catalog returns ErrNoQuestions and a topic that matches nothing
// returns ErrNoMatch. Mode narrowing never fails: when the narrowed set is
// empty the full candidate set is used.
func (s *Selector) Select(questions []catalog.Question, records map[string]mastery.Record, req Request, now time.Time) ([]catalog.Question, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	if req.Topic != "" {
		topic := catalog.NormalizeTopic(req.Topic)
		questions = filter(questions, func(q catalog.Question) bool { return q.Topic == topic })
		if len(questions) == 0 {
			return nil, fmt.Errorf("%w: topic %q", ErrNoMatch, topic)
		}
	}

	mode := req.Mode
	if mode == "" {
		mode = ModeBalanced
	}
	switch mode {
	case ModeReview:
		questions = narrow(questions, func(q catalog.Question) bool { return records[q.ID].IsDue(now) })
	case ModeFocus:
		if anySeen(questions, records) {
			weak := analytics.WeakTopics(questions, records, 1, now)
			if len(weak) > 0 {
				topic := weak[0].Topic
				questions = narrow(questions, func(q catalog.Question) bool { return q.Topic == topic })
			}
		}
	case ModeExplore:
		questions = narrow(questions, func(q catalog.Question) bool { return !records[q.ID].Seen() })
	case ModeBalanced:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	count := max(req.Count, 1)
	chosen := s.SelectInterleaved(questions, records, count, now)
	if len(chosen) == 0 {
		return nil, ErrNoQuestions
	}
	return chosen, nil
}

// Next selects a single question.
func (s *Selector) Next(questions []catalog.Question, records map[string]mastery.Record, mode Mode, topic string, now time.Time) (catalog.Question, error) {
	qs, err := s.Select(questions, records, Request{Mode: mode, Topic: topic, Count: 1}, now)
	if err != nil {
		return catalog.Question{}, err
	}
	return qs[0], nil
}

func anySeen(questions []catalog.Question, records map[string]mastery.Record) bool {
	for _, q := range questions {
		if records[q.ID].Seen() {
			return true
		}
	}
	return false
}

func filter(questions []catalog.Question, keep func(catalog.Question) bool) []catalog.Question {
	var out []catalog.Question
	for _, q := range questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// narrow is filter with a fallback to the input when nothing matches.
func narrow(questions []catalog.Question, keep func(catalog.Question) bool) []catalog.Question {
	if out := filter(questions, keep); len(out) > 0 {
		return out
	}
	return questions
}
