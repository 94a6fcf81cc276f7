package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/djherbis/times"
)

// DefaultPatterns matches the file names screenshot tools commonly
// produce. Patterns are matched case-insensitively against the base
// name.
var DefaultPatterns = []string{"*.png", "*.jpg", "*.jpeg"}

// Scan reads dir (non-recursive) and returns one record per matching
// image file, sorted by capture time ascending. Entries whose metadata
// cannot be read are skipped; warn, if non-nil, is invoked once per
// skipped entry.
func Scan(dir string, patterns []string, warn func(path string, err error)) ([]*Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read target directory: %w", err)
	}

	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	var records []*Record
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if !matchesAny(patterns, e.Name()) {
			continue
		}

		path := filepath.Join(dir, e.Name())
		info, err := e.Info()
		if err != nil {
			if warn != nil {
				warn(path, err)
			}
			continue
		}

		records = append(records, &Record{
			Path:       path,
			CapturedAt: captureTime(info),
			Size:       info.Size(),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CapturedAt.Before(records[j].CapturedAt)
	})

	return records, nil
}

func matchesAny(patterns []string, name string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		if ok, err := doublestar.Match(strings.ToLower(p), lower); err == nil && ok {
			return true
		}
	}
	return false
}

// captureTime prefers the filesystem birth time where the platform
// exposes one and falls back to the modification time.
func captureTime(info os.FileInfo) time.Time {
	ts := times.Get(info)
	if ts.HasBirthTime() {
		return ts.BirthTime()
	}
	return info.ModTime()
}
