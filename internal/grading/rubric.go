// Package grading defines the answer rubric and the boundary to an external
// grader: building its prompt and validating what it returns.
package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/mockmentor/internal/catalog"
)

// Criterion is one weighted rubric dimension.
type Criterion struct {
	Name        string            `json:"name"`
	Weight      float64           `json:"weight"`
	Description string            `json:"description"`
	Levels      map[string]string `json:"levels"`
}

// Rubric is the set of criteria an answer is graded on. Weights sum to 1.
type Rubric struct {
	Accuracy     Criterion `json:"accuracy"`
	Completeness Criterion `json:"completeness"`
	Clarity      Criterion `json:"clarity"`
}

// DefaultRubric returns the standard interview rubric.
func DefaultRubric() Rubric {
	return Rubric{
		Accuracy: Criterion{
			Name:        "Accuracy",
			Weight:      0.5,
			Description: "Is the technical information factually correct? Does the code or query run?",
			Levels: map[string]string{
				"high":   "Completely correct, handles edge cases.",
				"medium": "Mostly correct, minor syntax or logic errors.",
				"low":    "Fundamentally incorrect approach.",
			},
		},
		Completeness: Criterion{
			Name:        "Completeness",
			Weight:      0.3,
			Description: "Did the candidate address all parts of the question and explain the why?",
			Levels: map[string]string{
				"high":   "Comprehensive answer, includes trade-offs and reasoning.",
				"medium": "Answers the main point but misses nuance or alternative approaches.",
				"low":    "Very brief or missing key components.",
			},
		},
		Clarity: Criterion{
			Name:        "Clarity",
			Weight:      0.2,
			Description: "Is the explanation easy to follow?",
			Levels: map[string]string{
				"high":   "Clear, structured, professional communication.",
				"medium": "Understandable but unstructured or rambling.",
				"low":    "Confusing or difficult to parse.",
			},
		},
	}
}

// Criteria returns the criteria in prompt order.
func (r Rubric) Criteria() []Criterion {
	return []Criterion{r.Accuracy, r.Completeness, r.Clarity}
}

// Overall combines the three sub-scores with the rubric weights.
func (r Rubric) Overall(accuracy, completeness, clarity float64) float64 {
	return accuracy*r.Accuracy.Weight + completeness*r.Completeness.Weight + clarity*r.Clarity.Weight
}

// BuildPrompt renders the grading instructions for an external grader.
func BuildPrompt(q catalog.Question, answer string, r Rubric) string {
	var b strings.Builder
	b.WriteString("You are an expert interviewer. Grade this answer.\n\n")
	fmt.Fprintf(&b, "Question: %s\n", q.Text)
	fmt.Fprintf(&b, "Ideal Answer Points: %s\n\n", strings.Join(q.IdealPoints, ", "))
	fmt.Fprintf(&b, "User Answer: %s\n\n", answer)
	b.WriteString("Rubric:\n")
	for _, c := range r.Criteria() {
		fmt.Fprintf(&b, "- %s (Weight %.1f): %s\n", c.Name, c.Weight, c.Description)
	}
	b.WriteString(`
Return JSON only:
{
  "accuracy_score": (0-10),
  "completeness_score": (0-10),
  "clarity_score": (0-10),
  "overall_score": (0-10),
  "feedback": "string",
  "key_gap": "string"
}
`)
	return b.String()
}
