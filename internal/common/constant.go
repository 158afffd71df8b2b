package common

// KeyPrefix namespaces every Daybook key inside the shared persistent medium.
// Other tooling depends on the exact prefix; do not change it without a
// storage migration.
const KeyPrefix = "daybook:"

// Collection keys. One key per entity type (a pair for template-bearing
// entities). Each holds a single JSON array of records.
const (
	KeyJournalEntries     = "journal_entries"
	KeyJournalTemplates   = "journal_templates"
	KeyMoodCheckins       = "mood_checkins"
	KeyMoodOfflineQueue   = "mood_offline_queue"
	KeyStartDayEntries    = "start_day_entries"
	KeyEveningReflections = "evening_reflections"
)
