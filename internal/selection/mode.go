package selection

import (
	"errors"
	"fmt"
	"strings"
)

// Mode narrows the candidate set before interleaved selection.
type Mode string

const (
	// ModeReview restricts to questions that are due.
	ModeReview Mode = "review"
	// ModeFocus restricts to the weakest topic.
	ModeFocus Mode = "focus"
	// ModeExplore restricts to questions never answered.
	ModeExplore Mode = "explore"
	// ModeBalanced applies no restriction.
	ModeBalanced Mode = "balanced"
)

// Selection errors.
var (
	ErrNoQuestions = errors.New("no questions available")
	ErrNoMatch     = errors.New("no questions available for criteria")
	ErrUnknownMode = errors.New("unknown selection mode")
)

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModeBalanced, ModeReview, ModeFocus, ModeExplore}
}

// ParseMode parses a mode name. The empty string means balanced.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case "":
		return ModeBalanced, nil
	case ModeReview, ModeFocus, ModeExplore, ModeBalanced:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) String() string { return string(m) }
