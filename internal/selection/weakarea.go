package selection

import (
	"fmt"

	"github.com/abhisek/mockmentor/internal/catalog"
)

// defaultWeakArea matches profile.DefaultWeakArea.
const defaultWeakArea = 0.5

// SelectByWeakAreas is the non-adaptive selector. It draws one unseen
// question matching the optional topic and difficulty, weighting each by
// 1 - strength + 0.1 of its topic so weaker topics come up more often.
//
// When nothing matches and a topic was given, ErrNoMatch is returned.
// Otherwise an exhausted pool falls back to the whole question set.
func (s *Selector) SelectByWeakAreas(questions []catalog.Question, weakAreas map[string]float64, seen map[string]bool, topic string, difficulty catalog.Difficulty) (catalog.Question, error) {
	if len(questions) == 0 {
		return catalog.Question{}, ErrNoQuestions
	}
	if topic != "" {
		topic = catalog.NormalizeTopic(topic)
	}

	cands := filter(questions, func(q catalog.Question) bool {
		if seen[q.ID] {
			return false
		}
		if topic != "" && q.Topic != topic {
			return false
		}
		return difficulty == "" || q.Difficulty == difficulty
	})
	if len(cands) == 0 {
		if topic != "" {
			return catalog.Question{}, fmt.Errorf("%w: no unseen questions left for topic %q", ErrNoMatch, topic)
		}
		cands = questions
	}

	weighted := make([]candidate, len(cands))
	for i, q := range cands {
		strength, ok := weakAreas[q.Topic]
		if !ok {
			strength = defaultWeakArea
		}
		weighted[i] = candidate{q: q, weight: max(1-strength+weightFloor, 0)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return weighted[s.draw(weighted)].q, nil
}
