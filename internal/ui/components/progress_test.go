package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBar_Width(t *testing.T) {
	tests := []struct {
		name string
		bar  ProgressBar
	}{
		{"no label", NewProgressBar("", 0.5, false, 20)},
		{"label", NewProgressBar("sql", 0.5, false, 30)},
		{"label and percent", NewProgressBar("sql", 1, true, 40)},
		{"padded label", ProgressBar{Label: "sql", LabelWidth: 12, Percent: 0.25, ShowPercent: true, Width: 40}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lipgloss.Width(tt.bar.View()); got != tt.bar.Width {
				t.Errorf("width = %d, want %d", got, tt.bar.Width)
			}
		})
	}
}

func TestProgressBar_Fill(t *testing.T) {
	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{-0.3, 0},
		{1.7, 10},
	}
	for _, tt := range tests {
		view := NewProgressBar("", tt.percent, false, 10).View()
		if got := strings.Count(view, filledCell); got != tt.filled {
			t.Errorf("percent %v: filled = %d, want %d", tt.percent, got, tt.filled)
		}
	}
}

func TestProgressBar_MinimumWidth(t *testing.T) {
	view := NewProgressBar("a very long label", 0, false, 5).View()
	if got := strings.Count(view, emptyCell); got != minBarWidth {
		t.Errorf("empty cells = %d, want %d", got, minBarWidth)
	}
}

func TestProgressBar_Percent(t *testing.T) {
	view := NewProgressBar("", 0.42, true, 30).View()
	if !strings.Contains(view, "42%") {
		t.Errorf("view %q missing percentage", view)
	}
}
