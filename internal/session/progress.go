package session

// Progress is how far an interview has got.
type Progress struct {
	Current    int     `json:"current"`
	Total      int     `json:"total"`
	Answered   int     `json:"answered"`
	Percentage float64 `json:"percentage"`
}

// Progress reports the 1-based number of the current question, the number of
// questions, replies recorded so far (follow-ups included) and the share of
// questions already finished.
func (s *Session) Progress() Progress {
	p := Progress{
		Current:  s.Index + 1,
		Total:    len(s.Questions),
		Answered: len(s.Answers),
	}
	if p.Total > 0 {
		p.Percentage = float64(s.Index) / float64(p.Total) * 100
	}
	return p
}
