// Package selection picks interview questions with weighted, topic-interleaved
// random sampling.
package selection

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/mockmentor/internal/catalog"
	"github.com/abhisek/mockmentor/internal/mastery"
	"github.com/abhisek/mockmentor/internal/spacedrep"
)

// DefaultRecentWindow is how many recently chosen topics are avoided.
const DefaultRecentWindow = 2

// maxRecentWindow caps the avoided-topic window.
const maxRecentWindow = 2

// unfilteredPoolSize is the pool size at or below which topic interleaving
// is no longer enforced.
const unfilteredPoolSize = 3

// Pool weights.
const (
	weightUnseen = 1.0
	weightNotDue = 0.1
	weightFloor  = 0.1
)

// Selector draws questions using an injected random source. It is safe for
// concurrent use.
type Selector struct {
	// RecentWindow is how many of the last chosen topics to avoid. Values
	// above 2 are treated as 2; zero disables interleaving.
	RecentWindow int

	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Selector drawing from rng. A nil rng uses a randomly seeded
// source.
func New(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{RecentWindow: DefaultRecentWindow, rng: rng}
}

// NewSeeded returns a Selector with a reproducible source. Seed 0 means a
// random seed.
func NewSeeded(seed uint64) *Selector {
	if seed == 0 {
		return New(nil)
	}
	return New(rand.New(rand.NewPCG(seed, seed)))
}

type candidate struct {
	q      catalog.Question
	weight float64
}

// dueWeight favors weaker questions: (5 - level)/5 + 0.1.
func dueWeight(level int) float64 {
	return float64(spacedrep.MaxLevel-level)/float64(spacedrep.MaxLevel) + weightFloor
}

// weigh splits questions into due, unseen and not-yet-due pools and returns
// them concatenated in that order.
func weigh(questions []catalog.Question, records map[string]mastery.Record, now time.Time) []candidate {
	var due, unseen, notDue []candidate
	for _, q := range questions {
		r := records[q.ID]
		switch {
		case !r.Seen():
			unseen = append(unseen, candidate{q, weightUnseen})
		case r.IsDue(now):
			due = append(due, candidate{q, dueWeight(r.Level())})
		default:
			notDue = append(notDue, candidate{q, weightNotDue})
		}
	}
	out := make([]candidate, 0, len(questions))
	out = append(out, due...)
	out = append(out, unseen...)
	return append(out, notDue...)
}

// SelectInterleaved returns up to count distinct questions. Each draw is
// weighted random over the remaining pool, skipping topics among the last
// chosen ones while more than three candidates remain. The result is
// shorter than count when the pool runs out.
func (s *Selector) SelectInterleaved(questions []catalog.Question, records map[string]mastery.Record, count int, now time.Time) []catalog.Question {
	pool := weigh(questions, records, now)
	window := min(max(s.RecentWindow, 0), maxRecentWindow)

	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		chosen []catalog.Question
		recent []string
	)
	for len(chosen) < count && len(pool) > 0 {
		avoid := recent[max(0, len(recent)-window):]
		available := pool
		if len(pool) > unfilteredPoolSize && len(avoid) > 0 {
			available = withoutTopics(pool, avoid)
			if len(available) == 0 {
				available = pool
			}
		}

		pick := available[s.draw(available)]
		chosen = append(chosen, pick.q)
		recent = append(recent, pick.q.Topic)
		pool = removeID(pool, pick.q.ID)
	}
	return chosen
}

// draw returns the index of a weighted random candidate: r is uniform in
// [0, total) and the first candidate whose cumulative weight reaches r wins.
// Callers must hold s.mu.
func (s *Selector) draw(cands []candidate) int {
	var total float64
	for _, c := range cands {
		total += c.weight
	}
	if total <= 0 {
		return s.rng.IntN(len(cands))
	}

	r := s.rng.Float64() * total
	var cum float64
	for i, c := range cands {
		cum += c.weight
		if cum >= r {
			return i
		}
	}
	// Rounding can leave r just above the final sum.
	return len(cands) - 1
}

func withoutTopics(pool []candidate, topics []string) []candidate {
	var out []candidate
	for _, c := range pool {
		skip := false
		for _, t := range topics {
			if c.q.Topic == t {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, c)
		}
	}
	return out
}

func removeID(pool []candidate, id string) []candidate {
	out := make([]candidate, 0, len(pool))
	for _, c := range pool {
		if c.q.ID != id {
			out = append(out, c)
		}
	}
	return out
}
