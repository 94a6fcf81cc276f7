package catalog

import (
	"path/filepath"
	"time"

	"github.com/corona10/goimagehash"
)

// Record represents a discovered screenshot file. Identity is the
// filesystem path. Hash, Text and Keywords start empty and are filled
// in by later enrichment passes.
type Record struct {
	Path       string
	CapturedAt time.Time
	Size       int64

	Hash     *goimagehash.ImageHash
	Text     string
	Keywords []string
}

// DisplayName returns the base file name for preview output.
func (r *Record) DisplayName() string {
	return filepath.Base(r.Path)
}

// TimeString formats the capture time for display.
func (r *Record) TimeString() string {
	return r.CapturedAt.Format("15:04:05")
}
