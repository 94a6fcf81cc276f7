// Package cluster groups time-sorted screenshot records into session
// candidates using a gap threshold and a hard day-boundary rule.
package cluster

import (
	"time"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

// CutoffHour is the fixed day boundary, 04:00 UTC. A session never
// spans records on opposite sides of it, regardless of how small the
// gap between them is.
const CutoffHour = 4

// ByTime walks records (sorted ascending by capture time) and starts a
// new session whenever the gap to the previous record exceeds gap, or
// a 04:00 UTC boundary lies between the two. Equal timestamps always
// share a session. Every input record appears in exactly one session.
func ByTime(records []*catalog.Record, gap time.Duration) []*catalog.Session {
	if len(records) == 0 {
		return nil
	}

	var sessions []*catalog.Session
	current := &catalog.Session{}
	current.Add(records[0])

	for _, r := range records[1:] {
		prev := current.Records[current.Count()-1]
		if r.CapturedAt.Sub(prev.CapturedAt) > gap || CrossesCutoff(prev.CapturedAt, r.CapturedAt) {
			sessions = append(sessions, current)
			current = &catalog.Session{}
		}
		current.Add(r)
	}

	return append(sessions, current)
}

// CrossesCutoff reports whether a 04:00 UTC boundary lies between a
// and b. A record captured exactly at 04:00 belongs to the new day.
func CrossesCutoff(a, b time.Time) bool {
	if b.Before(a) {
		a, b = b, a
	}
	return !nextCutoff(a).After(b)
}

// nextCutoff returns the first 04:00 UTC boundary strictly after t.
func nextCutoff(t time.Time) time.Time {
	u := t.UTC()
	boundary := time.Date(u.Year(), u.Month(), u.Day(), CutoffHour, 0, 0, 0, time.UTC)
	if !boundary.After(u) {
		boundary = boundary.Add(24 * time.Hour)
	}
	return boundary
}
