package profile

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/mockmentor/internal/jsondoc"
	"github.com/abhisek/mockmentor/internal/mastery"
)

// Known top-level keys of the persisted profile document.
const (
	keyWeakAreas     = "weak_areas"
	keyHistory       = "history"
	keyQuestionsSeen = "questions_seen"
	keyMastery       = "question_mastery"
	keySessionStats  = "session_stats"
)

// MarshalJSON writes the profile document, including any unknown top-level
// fields read earlier.
func (p Profile) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(p.extra)+5)
	for k, v := range p.extra {
		doc[k] = v
	}

	weak := p.WeakAreas
	if weak == nil {
		weak = map[string]float64{}
	}
	history := p.History
	if history == nil {
		history = []HistoryEntry{}
	}
	seen := p.QuestionsSeen
	if seen == nil {
		seen = []string{}
	}
	records := p.Mastery
	if records == nil {
		records = map[string]mastery.Record{}
	}

	doc[keyWeakAreas] = weak
	doc[keyHistory] = history
	doc[keyQuestionsSeen] = seen
	doc[keyMastery] = records
	doc[keySessionStats] = p.SessionStats
	return json.Marshal(doc)
}

// UnmarshalJSON reads a profile document. Missing sections get defaults and
// unknown top-level fields are kept verbatim.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode profile: %w", err)
	}

	out := New()
	fields := []struct {
		key string
		dst any
	}{
		{keyWeakAreas, &out.WeakAreas},
		{keyHistory, &out.History},
		{keyQuestionsSeen, &out.QuestionsSeen},
		{keyMastery, &out.Mastery},
		{keySessionStats, &out.SessionStats},
	}
	for _, f := range fields {
		v, ok := raw[f.key]
		if !ok || string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("decode profile %s: %w", f.key, err)
		}
	}
	for _, f := range fields {
		delete(raw, f.key)
	}

	if out.WeakAreas == nil {
		out.WeakAreas = make(map[string]float64)
	}
	if out.Mastery == nil {
		out.Mastery = make(map[string]mastery.Record)
	}
	if len(raw) > 0 {
		out.extra = raw
	}
	*p = *out
	return nil
}

// historyEntryJSON and sessionStatsJSON drop the methods below so the
// declared fields can be encoded with the default rules.
type (
	historyEntryJSON HistoryEntry
	sessionStatsJSON SessionStats
)

var (
	historyEntryKeys = []string{"question_id", "score", "topic", "date"}
	sessionStatsKeys = []string{"total_time_seconds", "sessions_count"}
)

// MarshalJSON writes the entry with any unknown fields it was read with.
func (h HistoryEntry) MarshalJSON() ([]byte, error) {
	return jsondoc.Merge(historyEntryJSON(h), h.extra)
}

// UnmarshalJSON reads an entry and keeps fields it does not declare.
func (h *HistoryEntry) UnmarshalJSON(data []byte) error {
	var w historyEntryJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	extra, err := jsondoc.Leftover(data, historyEntryKeys...)
	if err != nil {
		return err
	}
	w.extra = extra
	*h = HistoryEntry(w)
	return nil
}

// MarshalJSON writes the counters with any unknown fields they were read with.
func (s SessionStats) MarshalJSON() ([]byte, error) {
	return jsondoc.Merge(sessionStatsJSON(s), s.extra)
}

// UnmarshalJSON reads the counters and keeps fields it does not declare.
func (s *SessionStats) UnmarshalJSON(data []byte) error {
	var w sessionStatsJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	extra, err := jsondoc.Leftover(data, sessionStatsKeys...)
	if err != nil {
		return err
	}
	w.extra = extra
	*s = SessionStats(w)
	return nil
}
