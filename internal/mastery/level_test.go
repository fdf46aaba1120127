package mastery

import "testing"

func TestComputeLevel_NeverAttempted(t *testing.T) {
	tests := []Record{
		{},
		{avgConfidence: 3},
		{correctCount: 4, avgConfidence: 3, level: 5},
	}
	for i, r := range tests {
		if got := ComputeLevel(r); got != 0 {
			t.Errorf("case %d: ComputeLevel() = %d, want 0", i, got)
		}
	}
}

func TestComputeLevel_Thresholds(t *testing.T) {
	tests := []struct {
		name       string
		attempts   int
		correct    int
		confidence float64
		want       int
	}{
		// combined = 0.6 + 0.4*0.75 = 0.9
		{"0.9 with 3 attempts", 3, 3, 2.25, 5},
		{"0.9 with 2 attempts", 2, 2, 2.25, 4},
		{"0.9 with 1 attempt", 1, 1, 2.25, 3},
		// combined = 0.6 + 0.4*0.5 = 0.8
		{"0.8 with 2 attempts", 2, 2, 1.5, 4},
		{"0.8 with 1 attempt", 1, 1, 1.5, 3},
		{"0.8 with 5 attempts", 5, 5, 1.5, 4},
		// combined = 0.3 + 0.4 = 0.7
		{"0.7", 2, 1, 3, 3},
		// combined = 0.3 + 0.2 = 0.5
		{"0.5", 2, 1, 1.5, 2},
		// combined = 0 + 0.4*0.75 = 0.3
		{"0.3", 4, 0, 2.25, 1},
		{"just below 0.3", 4, 0, 2.2, 0},
		{"just below 0.5", 2, 1, 1.45, 1},
		{"just below 0.7", 2, 1, 2.9, 2},
		{"just below 0.8", 2, 2, 1.45, 3},
		{"just below 0.9", 3, 3, 2.2, 4},
		{"perfect", 10, 10, 3, 5},
		{"nothing right, no confidence", 3, 0, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{attempts: tt.attempts, correctCount: tt.correct, avgConfidence: tt.confidence}
			if got := ComputeLevel(r); got != tt.want {
				t.Errorf("ComputeLevel(%d/%d, conf %.2f) = %d, want %d",
					tt.correct, tt.attempts, tt.confidence, got, tt.want)
			}
		})
	}
}

func TestComputeLevel_Deterministic(t *testing.T) {
	r := Record{attempts: 7, correctCount: 5, avgConfidence: 2.4}
	first := ComputeLevel(r)
	for i := 0; i < 100; i++ {
		if got := ComputeLevel(r); got != first {
			t.Fatalf("ComputeLevel() changed between calls: %d then %d", first, got)
		}
	}
}

func TestComputeLevel_IgnoresCachedLevel(t *testing.T) {
	r := Record{attempts: 1, correctCount: 0, avgConfidence: 1, level: 5}
	if got := ComputeLevel(r); got != 0 {
		t.Errorf("ComputeLevel() = %d, want 0", got)
	}
}

func TestLevelName(t *testing.T) {
	tests := map[int]string{
		0:  "New",
		3:  "Confident",
		5:  "Expert",
		6:  "Unknown",
		-1: "Unknown",
	}
	for level, want := range tests {
		if got := LevelName(level); got != want {
			t.Errorf("LevelName(%d) = %q, want %q", level, got, want)
		}
	}
}
