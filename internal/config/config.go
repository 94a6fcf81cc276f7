// Package config captures the CLI flags and defaults as one immutable
// options value passed through the pipeline, instead of ambient global
// state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Options is the full run configuration. Built once at the CLI
// boundary, validated, then treated as read-only.
type Options struct {
	TargetDir string
	Patterns  []string

	SessionGap time.Duration

	EnableSimilarity    bool
	SimilarityThreshold int

	SmartNames bool
	Provider   string
	Model      string

	EnableMerge    bool
	MergeThreshold float64
	MergeMaxGap    time.Duration

	DryRun      bool
	AutoConfirm bool
	Verbose     bool
	CI          bool
	Interactive bool

	Workers int
}

// Default returns the documented defaults. TargetDir falls back to the
// platform desktop folder.
func Default() Options {
	return Options{
		TargetDir:           DesktopDir(),
		SessionGap:          15 * time.Minute,
		SimilarityThreshold: 10,
		Provider:            "ollama",
		MergeThreshold:      0.5,
		MergeMaxGap:         4 * time.Hour,
		Workers:             4,
	}
}

// DesktopDir returns the user's desktop folder, or the working
// directory when no home is known.
func DesktopDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Desktop")
}

// Validate fails fast on configuration errors, before any file is
// touched.
func (o Options) Validate() error {
	info, err := os.Stat(o.TargetDir)
	if err != nil {
		return fmt.Errorf("target directory %s: %w", o.TargetDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %s is not a directory", o.TargetDir)
	}

	if o.SessionGap <= 0 {
		return fmt.Errorf("session gap must be positive, got %s", o.SessionGap)
	}
	if o.SimilarityThreshold < 0 {
		return fmt.Errorf("similarity threshold must be non-negative, got %d", o.SimilarityThreshold)
	}
	if o.MergeThreshold < 0 || o.MergeThreshold > 1 {
		return fmt.Errorf("merge threshold must be in [0, 1], got %g", o.MergeThreshold)
	}
	if o.MergeMaxGap <= 0 {
		return fmt.Errorf("merge gap must be positive, got %s", o.MergeMaxGap)
	}
	if o.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", o.Workers)
	}

	return nil
}
