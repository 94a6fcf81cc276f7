// Package merger combines adjacent sessions whose keyword sets are
// sufficiently similar, subject to gap and day-boundary constraints.
package merger

import (
	"context"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
	"github.com/felixgeelhaar/shotsort/internal/cluster"
	"github.com/felixgeelhaar/shotsort/internal/keywords"
	"github.com/felixgeelhaar/shotsort/internal/namer"
)

// Config bounds the merge pass.
type Config struct {
	// Threshold is the minimum Jaccard similarity, inclusive, in [0, 1].
	Threshold float64
	// MaxGap is the largest allowed gap between the first session's end
	// and the second's start.
	MaxGap time.Duration
}

// DefaultMaxGap bounds merges to sessions within the same stretch of
// work.
const DefaultMaxGap = 4 * time.Hour

// Merge performs one left-to-right pass over the named, ordered
// session list, combining every adjacent eligible pair. A freshly
// merged session is compared against the next session in the same
// pass, so merging is transitive. Combined sessions are renamed via
// the namer's keyword path; when that yields nothing the caller's
// FillDefaults pass applies the timestamp name.
func Merge(ctx context.Context, sessions []*catalog.Session, cfg Config, n *namer.Namer) []*catalog.Session {
	if len(sessions) < 2 {
		return sessions
	}

	out := []*catalog.Session{sessions[0]}
	for _, next := range sessions[1:] {
		current := out[len(out)-1]
		if !eligible(current, next, cfg) {
			out = append(out, next)
			continue
		}
		out[len(out)-1] = combine(ctx, current, next, n)
	}
	return out
}

// eligible applies the three merge constraints in cheap-first order.
func eligible(a, b *catalog.Session, cfg Config) bool {
	if b.Start().Sub(a.End()) > cfg.MaxGap {
		return false
	}
	if cluster.CrossesCutoff(a.End(), b.Start()) {
		return false
	}
	return keywords.Jaccard(a.Keywords(), b.Keywords()) >= cfg.Threshold
}

func combine(ctx context.Context, a, b *catalog.Session, n *namer.Namer) *catalog.Session {
	merged := &catalog.Session{
		Records: append(append([]*catalog.Record{}, a.Records...), b.Records...),
	}
	merged.SortRecords()
	if n != nil {
		merged.Name = n.KeywordName(ctx, merged)
	}
	return merged
}
