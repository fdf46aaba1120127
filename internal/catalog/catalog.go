package catalog

import (
	"errors"
	"fmt"
	"slices"
	"sort"
)

// ErrQuestionNotFound is returned when a question ID is not in the catalog.
var ErrQuestionNotFound = errors.New("question not found")

// Catalog is an immutable, indexed set of questions.
type Catalog struct {
	questions []Question
	byID      map[string]int
	byTopic   map[string][]int
	topics    []Topic
	topicByID map[string]Topic
}

// New validates and indexes a question set. Topics may be nil, in which case
// they are derived from the questions with the topic ID as display name.
// Questions keep their input order.
func New(topics []Topic, questions []Question) (*Catalog, error) {
	if len(topics) == 0 {
		topics = deriveTopics(questions)
	}
	if err := validate(topics, questions); err != nil {
		return nil, err
	}

	c := &Catalog{
		questions: slices.Clone(questions),
		byID:      make(map[string]int, len(questions)),
		byTopic:   make(map[string][]int),
		topics:    slices.Clone(topics),
		topicByID: make(map[string]Topic, len(topics)),
	}
	for i, q := range c.questions {
		c.byID[q.ID] = i
		c.byTopic[q.Topic] = append(c.byTopic[q.Topic], i)
	}
	sort.Slice(c.topics, func(i, j int) bool { return c.topics[i].ID < c.topics[j].ID })
	for _, t := range c.topics {
		c.topicByID[t.ID] = t
	}
	return c, nil
}

func deriveTopics(questions []Question) []Topic {
	seen := make(map[string]bool)
	var topics []Topic
	for _, q := range questions {
		if q.Topic == "" || seen[q.Topic] {
			continue
		}
		seen[q.Topic] = true
		topics = append(topics, Topic{ID: q.Topic, Name: q.Topic})
	}
	return topics
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// All returns every question in catalog order.
func (c *Catalog) All() []Question {
	return slices.Clone(c.questions)
}

// Get returns the question with the given ID.
func (c *Catalog) Get(id string) (Question, error) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrQuestionNotFound, id)
	}
	return c.questions[i], nil
}

// ByTopic returns the questions for a topic in catalog order. The topic is
// normalized first, so aliases work.
func (c *Catalog) ByTopic(topic string) []Question {
	idx := c.byTopic[NormalizeTopic(topic)]
	out := make([]Question, 0, len(idx))
	for _, i := range idx {
		out = append(out, c.questions[i])
	}
	return out
}

// Filter returns questions matching an optional topic and difficulty.
// Empty arguments match everything.
func (c *Catalog) Filter(topic string, difficulty Difficulty) []Question {
	src := c.questions
	if topic != "" {
		src = c.ByTopic(topic)
	}
	var out []Question
	for _, q := range src {
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Topics returns the IDs of topics that have at least one question,
// sorted alphabetically.
func (c *Catalog) Topics() []string {
	ids := make([]string, 0, len(c.byTopic))
	for id := range c.byTopic {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Topic returns the metadata for a topic ID.
func (c *Catalog) Topic(id string) (Topic, bool) {
	t, ok := c.topicByID[NormalizeTopic(id)]
	return t, ok
}

// TopicSummaries returns every declared topic with its question count,
// sorted by topic ID.
func (c *Catalog) TopicSummaries() []TopicSummary {
	out := make([]TopicSummary, 0, len(c.topics))
	for _, t := range c.topics {
		out = append(out, TopicSummary{Topic: t, Count: len(c.byTopic[t.ID])})
	}
	return out
}

// TopicsOf returns the distinct topics present in questions, sorted
// alphabetically.
func TopicsOf(questions []Question) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range questions {
		if !seen[q.Topic] {
			seen[q.Topic] = true
			ids = append(ids, q.Topic)
		}
	}
	sort.Strings(ids)
	return ids
}
