package models

import "unicode/utf8"

// JournalEntry is a free-form diary record. Entries with IsTemplate set live
// in the parallel template collection and are excluded from sync.
type JournalEntry struct {
	Base[int64]
	Content    string `json:"content"`
	Length     int    `json:"length"`
	IsTemplate bool   `json:"is_template,omitempty"`
}

// RecalcLength refreshes the derived Length field from Content.
func (e *JournalEntry) RecalcLength() {
	e.Length = utf8.RuneCountInString(e.Content)
}

// MoodCheckin records a mood level plus the emotions felt at the time.
type MoodCheckin struct {
	Base[int64]
	MoodLevel int      `json:"mood_level"`
	Emotions  []string `json:"emotions"`
	Note      string   `json:"note,omitempty"`
}

// StartDayEntry captures the morning planning ritual.
type StartDayEntry struct {
	Base[int64]
	Goals []string `json:"goals"`
	Focus string   `json:"focus,omitempty"`
}

// EveningReflection captures the end-of-day review. Reflections use opaque
// string identifiers rather than the chronological numeric scheme.
type EveningReflection struct {
	Base[string]
	WentWell     string `json:"went_well"`
	CouldImprove string `json:"could_improve"`
	Note         string `json:"note,omitempty"`
}
