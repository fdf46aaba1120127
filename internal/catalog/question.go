package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty is the rated difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ErrUnknownDifficulty is returned when a difficulty name is not recognized.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// AllDifficulties returns the difficulties in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty parses a difficulty name, ignoring case and surrounding
// whitespace. The empty string parses to the empty Difficulty (no filter).
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if d == "" || d.Valid() {
		return d, nil
	}
	return "", fmt.Errorf("%w %q (want %s)", ErrUnknownDifficulty, s, difficultyList())
}

// difficultyList joins AllDifficulties for messages: "easy, medium or hard".
func difficultyList() string {
	all := AllDifficulties()
	names := make([]string, len(all))
	for i, d := range all {
		names[i] = string(d)
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// Question is a single interview question. Questions are defined when the
// catalog is built and never change afterwards; callers must treat the
// slices as read-only.
type Question struct {
	ID          string     `json:"id" yaml:"id"`
	Topic       string     `json:"topic" yaml:"topic"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Text        string     `json:"text" yaml:"text"`
	IdealPoints []string   `json:"ideal_points" yaml:"ideal_points"`
	Hints       []string   `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Topic describes a question topic.
type Topic struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TopicSummary is a topic together with how many questions it holds.
type TopicSummary struct {
	Topic
	Count int `json:"count"`
}
