// Package match scores how well a candidate fits a job from already
// extracted skill lists and years of experience.
package match

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Score weights of the overall fit.
const (
	requiredWeight   = 0.6
	preferredWeight  = 0.2
	experienceWeight = 0.2
)

// Limits on the lists a Result carries.
const (
	maxStrengths     = 5
	maxGaps          = 5
	maxJobTopics     = 5
	maxMissingFocus  = 3
	overqualifiedPct = 90
)

// DefaultMaxYears is the experience ceiling when a job does not state one.
const DefaultMaxYears = 99

// Experience statuses.
const (
	StatusIdeal          = "ideal"
	StatusOverqualified  = "overqualified"
	StatusUnderqualified = "underqualified"
)

// Candidate is a parsed resume.
type Candidate struct {
	Name            string   `json:"name" yaml:"name"`
	Skills          []string `json:"skills" yaml:"skills"`
	ExperienceYears float64  `json:"experience_years" yaml:"experience_years"`
}

// YearsRange is the experience a job asks for. A nil Max means
// DefaultMaxYears.
type YearsRange struct {
	Min float64  `json:"min" yaml:"min"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty"`
}

func (r YearsRange) max() float64 {
	if r.Max == nil {
		return DefaultMaxYears
	}
	return *r.Max
}

// Job is a parsed job description.
type Job struct {
	Title              string     `json:"title" yaml:"title"`
	Company            string     `json:"company,omitempty" yaml:"company,omitempty"`
	RequiredSkills     []string   `json:"required_skills" yaml:"required_skills"`
	PreferredSkills    []string   `json:"preferred_skills" yaml:"preferred_skills"`
	ExperienceRequired YearsRange `json:"experience_required" yaml:"experience_required"`
	InterviewTopics    []string   `json:"interview_topics" yaml:"interview_topics"`
}

// SkillMatch compares a candidate's skills with a job's skill lists.
type SkillMatch struct {
	RequiredPct      float64  `json:"required_match_pct"`
	PreferredPct     float64  `json:"preferred_match_pct"`
	MatchedRequired  []string `json:"matched_required"`
	MatchedPreferred []string `json:"matched_preferred"`
	MissingRequired  []string `json:"missing_required"`
	MissingPreferred []string `json:"missing_preferred"`
}

// ExperienceMatch compares years of experience with a job's range.
type ExperienceMatch struct {
	MatchPct float64 `json:"match_pct"`
	Status   string  `json:"status"`
	Gap      string  `json:"gap,omitempty"`
}

// Result is the full fit analysis.
type Result struct {
	CandidateName  string          `json:"resume_name"`
	JobTitle       string          `json:"job_title"`
	Company        string          `json:"company,omitempty"`
	OverallScore   float64         `json:"overall_score"`
	Skills         SkillMatch      `json:"skill_match"`
	Experience     ExperienceMatch `json:"experience_match"`
	Strengths      []string        `json:"strengths"`
	Gaps           []string        `json:"gaps"`
	FocusAreas     []string        `json:"interview_focus_areas"`
	Recommendation string          `json:"recommendation"`
}

// MatchSkills splits the job's required and preferred skills into matched and
// missing. Comparison ignores case and surrounding space; a job skill matches
// when it equals a candidate skill or appears inside one. An empty job list
// counts as a full match.
func MatchSkills(candidate, required, preferred []string) SkillMatch {
	have := normalizeAll(candidate)

	var m SkillMatch
	var nReq, nPref int
	m.MatchedRequired, m.MissingRequired, nReq = splitSkills(have, required)
	m.MatchedPreferred, m.MissingPreferred, nPref = splitSkills(have, preferred)
	m.RequiredPct = percent(len(m.MatchedRequired), nReq)
	m.PreferredPct = percent(len(m.MatchedPreferred), nPref)
	return m
}

// splitSkills returns the wanted skills found in have, the ones missing, and
// how many distinct skills were wanted. Wanted skills keep their original
// spelling and first-seen order.
func splitSkills(have, wanted []string) (matched, missing []string, n int) {
	matched, missing = []string{}, []string{}
	seen := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		key := normalize(w)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if hasSkill(have, key) {
			matched = append(matched, w)
		} else {
			missing = append(missing, w)
		}
	}
	return matched, missing, len(seen)
}

func hasSkill(have []string, key string) bool {
	for _, h := range have {
		if strings.Contains(h, key) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeAll(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if n := normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func percent(n, total int) float64 {
	if total == 0 {
		return 100
	}
	return round1(float64(n) / float64(total) * 100)
}

// MatchExperience rates years of experience against a job's range.
func MatchExperience(years float64, want YearsRange) ExperienceMatch {
	hi := want.max()
	switch {
	case years >= want.Min && years <= hi:
		return ExperienceMatch{MatchPct: 100, Status: StatusIdeal}
	case years > hi:
		return ExperienceMatch{
			MatchPct: overqualifiedPct,
			Status:   StatusOverqualified,
			Gap:      formatYears(years-hi) + " years over",
		}
	}
	var pct float64
	if want.Min > 0 {
		pct = round1(years / want.Min * 100)
	}
	return ExperienceMatch{
		MatchPct: pct,
		Status:   StatusUnderqualified,
		Gap:      formatYears(want.Min-years) + " years short",
	}
}

// Analyze computes the overall fit of a candidate for a job.
func Analyze(c Candidate, j Job) Result {
	skills := MatchSkills(c.Skills, j.RequiredSkills, j.PreferredSkills)
	exp := MatchExperience(c.ExperienceYears, j.ExperienceRequired)

	overall := skills.RequiredPct*requiredWeight +
		skills.PreferredPct*preferredWeight +
		exp.MatchPct*experienceWeight

	r := Result{
		CandidateName:  orDefault(c.Name, "Candidate"),
		JobTitle:       orDefault(j.Title, "Position"),
		Company:        j.Company,
		OverallScore:   round1(overall),
		Skills:         skills,
		Experience:     exp,
		Strengths:      head(skills.MatchedRequired, maxStrengths),
		Gaps:           head(skills.MissingRequired, maxGaps),
		Recommendation: Recommend(overall),
	}
	r.FocusAreas = focusAreas(head(j.InterviewTopics, maxJobTopics), head(skills.MissingRequired, maxMissingFocus))
	return r
}

// Recommend maps an overall score (0-100) to advice.
func Recommend(overall float64) string {
	switch {
	case overall >= 80:
		return "Strong match! Focus on demonstrating depth in your strengths."
	case overall >= 60:
		return "Good match with some gaps. Prepare to address missing skills."
	case overall >= 40:
		return "Moderate match. Focus heavily on transferable skills."
	}
	return "Consider upskilling in key areas before applying."
}

// focusAreas joins the lists, dropping repeats and keeping first-seen order.
func focusAreas(lists ...[]string) []string {
	out := []string{}
	for _, l := range lists {
		for _, s := range l {
			if !slices.Contains(out, s) {
				out = append(out, s)
			}
		}
	}
	return out
}

func head(s []string, n int) []string {
	return slices.Clone(s[:min(n, len(s))])
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatYears(v float64) string {
	return strconv.FormatFloat(round1(v), 'f', -1, 64)
}
