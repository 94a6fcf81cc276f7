package catalog

import (
	"sort"
	"time"
)

// Session groups records believed to belong to one working period.
// Records are kept in capture-time ascending order and are contiguous
// in the global time ordering.
type Session struct {
	Records []*Record
	Name    string
}

// Add appends a record to the session.
func (s *Session) Add(r *Record) {
	s.Records = append(s.Records, r)
}

// Count returns the number of records in the session.
func (s *Session) Count() int {
	return len(s.Records)
}

// Start returns the capture time of the earliest record.
func (s *Session) Start() time.Time {
	if len(s.Records) == 0 {
		return time.Time{}
	}
	return s.Records[0].CapturedAt
}

// End returns the capture time of the latest record.
func (s *Session) End() time.Time {
	if len(s.Records) == 0 {
		return time.Time{}
	}
	return s.Records[len(s.Records)-1].CapturedAt
}

// Keywords returns the union of all member keyword sets, deduplicated,
// in first-seen order.
func (s *Session) Keywords() []string {
	seen := make(map[string]struct{})
	var union []string
	for _, r := range s.Records {
		for _, kw := range r.Keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			union = append(union, kw)
		}
	}
	return union
}

// SortRecords restores capture-time ascending order, e.g. after two
// sessions were combined.
func (s *Session) SortRecords() {
	sort.SliceStable(s.Records, func(i, j int) bool {
		return s.Records[i].CapturedAt.Before(s.Records[j].CapturedAt)
	})
}
