package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileOptions mirrors Options for file loading. Durations are strings
// so "15m" works in both YAML and JSON.
type fileOptions struct {
	TargetDir string   `json:"target_dir" yaml:"target_dir"`
	Patterns  []string `json:"patterns" yaml:"patterns"`

	SessionGap string `json:"session_gap" yaml:"session_gap"`

	EnableSimilarity    *bool `json:"enable_similarity" yaml:"enable_similarity"`
	SimilarityThreshold *int  `json:"similarity_threshold" yaml:"similarity_threshold"`

	SmartNames *bool  `json:"smart_names" yaml:"smart_names"`
	Provider   string `json:"provider" yaml:"provider"`
	Model      string `json:"model" yaml:"model"`

	EnableMerge    *bool    `json:"enable_merge" yaml:"enable_merge"`
	MergeThreshold *float64 `json:"merge_threshold" yaml:"merge_threshold"`
	MergeMaxGap    string   `json:"merge_max_gap" yaml:"merge_max_gap"`

	Workers *int `json:"workers" yaml:"workers"`
}

// LoadFile overlays a YAML or JSON config file on top of base. Fields
// absent from the file keep their base values.
func LoadFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileOptions
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("failed to unmarshal JSON config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return base, fmt.Errorf("failed to unmarshal YAML config: %w", err)
		}
	default:
		return base, fmt.Errorf("unsupported config format: %s (use .json or .yaml)", ext)
	}

	out := base
	if f.TargetDir != "" {
		out.TargetDir = f.TargetDir
	}
	if len(f.Patterns) > 0 {
		out.Patterns = f.Patterns
	}
	if f.SessionGap != "" {
		d, err := time.ParseDuration(f.SessionGap)
		if err != nil {
			return base, fmt.Errorf("invalid session_gap: %w", err)
		}
		out.SessionGap = d
	}
	if f.EnableSimilarity != nil {
		out.EnableSimilarity = *f.EnableSimilarity
	}
	if f.SimilarityThreshold != nil {
		out.SimilarityThreshold = *f.SimilarityThreshold
	}
	if f.SmartNames != nil {
		out.SmartNames = *f.SmartNames
	}
	if f.Provider != "" {
		out.Provider = f.Provider
	}
	if f.Model != "" {
		out.Model = f.Model
	}
	if f.EnableMerge != nil {
		out.EnableMerge = *f.EnableMerge
	}
	if f.MergeThreshold != nil {
		out.MergeThreshold = *f.MergeThreshold
	}
	if f.MergeMaxGap != "" {
		d, err := time.ParseDuration(f.MergeMaxGap)
		if err != nil {
			return base, fmt.Errorf("invalid merge_max_gap: %w", err)
		}
		out.MergeMaxGap = d
	}
	if f.Workers != nil {
		out.Workers = *f.Workers
	}

	return out, nil
}
