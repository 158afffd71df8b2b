package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
)

// SizeEntry describes one key in a SizeReport.
type SizeEntry struct {
	Key   string
	Bytes int
	// Preview holds a display form of the value: decrypted and pretty-printed
	// where possible, raw text otherwise.
	Preview string
}

// SizeReport summarizes how much space each key occupies.
type SizeReport struct {
	TotalBytes int
	Entries    []SizeEntry
}

// SizeReport walks the namespace and reports per-key byte sizes sorted
// descending. It is a diagnostic operation for inspection tooling; business
// logic never depends on it.
func (s *Store) SizeReport(ctx context.Context) (*SizeReport, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, err
	}

	report := &SizeReport{}
	for _, key := range keys {
		raw, ok, err := s.medium.Read(ctx, s.prefix+key)
		if err != nil || !ok {
			continue
		}
		report.TotalBytes += len(raw)
		report.Entries = append(report.Entries, SizeEntry{
			Key:     key,
			Bytes:   len(raw),
			Preview: s.preview(raw),
		})
	}

	sort.SliceStable(report.Entries, func(i, j int) bool {
		return report.Entries[i].Bytes > report.Entries[j].Bytes
	})
	return report, nil
}

// preview renders a stored value for display: decrypt if marked, then indent
// as JSON, falling back to the raw text at each step.
func (s *Store) preview(raw string) string {
	text := raw
	if strings.HasPrefix(raw, encMarker) {
		decrypted, err := s.codec.Decrypt(strings.TrimPrefix(raw, encMarker))
		if err != nil {
			return raw
		}
		text = decrypted
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(text), "", "  "); err != nil {
		return text
	}
	return pretty.String()
}
