package similarity

import (
	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

// Refine splits each session at every boundary where the perceptual
// distance between adjacent members exceeds threshold. Records without
// a signature never force a split. The result covers the input members
// exactly once, order preserved.
func Refine(sessions []*catalog.Session, threshold int) []*catalog.Session {
	var refined []*catalog.Session
	for _, s := range sessions {
		refined = append(refined, splitSession(s, threshold)...)
	}
	return refined
}

func splitSession(s *catalog.Session, threshold int) []*catalog.Session {
	if s.Count() <= 1 {
		return []*catalog.Session{s}
	}

	var parts []*catalog.Session
	current := &catalog.Session{}
	current.Add(s.Records[0])

	for i := 1; i < len(s.Records); i++ {
		prev, cur := s.Records[i-1], s.Records[i]
		if diverges(prev, cur, threshold) {
			parts = append(parts, current)
			current = &catalog.Session{}
		}
		current.Add(cur)
	}

	return append(parts, current)
}

// diverges reports whether two adjacent records look visually distinct.
// Unknown distance (missing hash, incomparable hashes) keeps them
// together.
func diverges(a, b *catalog.Record, threshold int) bool {
	if a.Hash == nil || b.Hash == nil {
		return false
	}
	distance, err := a.Hash.Distance(b.Hash)
	if err != nil {
		return false
	}
	return distance > threshold
}
