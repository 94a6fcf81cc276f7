package e2e

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/shotsort/internal/config"
	"github.com/felixgeelhaar/shotsort/internal/executor"
	"github.com/felixgeelhaar/shotsort/internal/namer"
	"github.com/felixgeelhaar/shotsort/internal/observe"
	"github.com/felixgeelhaar/shotsort/internal/ocr"
	"github.com/felixgeelhaar/shotsort/internal/pipeline"
	"github.com/felixgeelhaar/shotsort/internal/provider"
)

func writeShot(t *testing.T, dir, name string, at time.Time) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("img"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatal(err)
	}
}

// Full organize flow in-process: discover, cluster, OCR, name, merge,
// move. Exercises everything except the cobra layer.
func TestE2E_OrganizeDesktop(t *testing.T) {
	desktop := t.TempDir()
	day := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)

	writeShot(t, desktop, "shot1.png", day.Add(14*time.Hour+30*time.Minute+15*time.Second))
	writeShot(t, desktop, "shot2.png", day.Add(14*time.Hour+32*time.Minute))
	writeShot(t, desktop, "shot3.png", day.Add(14*time.Hour+35*time.Minute))
	writeShot(t, desktop, "later1.png", day.Add(18*time.Hour))
	writeShot(t, desktop, "later2.png", day.Add(18*time.Hour+3*time.Minute))
	writeShot(t, desktop, "stray.png", day.Add(22*time.Hour))
	writeShot(t, desktop, "notes.txt", day.Add(14*time.Hour))

	opts := config.Default()
	opts.TargetDir = desktop
	opts.SmartNames = true
	opts.Workers = 2

	obs := observe.New(&bytes.Buffer{}, false)
	defer obs.Close()

	engine := &ocr.Stub{Texts: map[string]string{
		"shot1.png": "webgpu performance dashboard",
		"shot2.png": "webgpu performance charts",
		"shot3.png": "webgpu performance flamegraph",
	}}
	n := namer.New(
		namer.WithProvider(&provider.StubProvider{Result: "webgpu-perf"}),
		namer.WithWarn(obs.Warn),
	)

	plan, err := pipeline.New(opts, obs, n, engine, nil).BuildPlan(context.Background())
	if err != nil {
		t.Fatalf("BuildPlan failed: %v", err)
	}

	if len(plan.Sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(plan.Sessions))
	}
	if plan.Sessions[0].Name != "2025-06-19_143015_webgpu-perf" {
		t.Errorf("First session name = %q", plan.Sessions[0].Name)
	}
	if plan.Sessions[1].Name != "2025-06-19_180000_session_2" {
		t.Errorf("Second session name = %q", plan.Sessions[1].Name)
	}
	if len(plan.Uncategorized) != 1 {
		t.Fatalf("Expected 1 uncategorized, got %d", len(plan.Uncategorized))
	}

	res := executor.New(false, "e2e", nil).Execute(plan)
	if res.Failed() {
		t.Fatalf("Execution failed: %v", res.Errors)
	}
	if res.Moved != 6 {
		t.Errorf("Moved %d files, want 6", res.Moved)
	}

	for _, rel := range []string{
		"2025-06-19_143015_webgpu-perf/shot1.png",
		"2025-06-19_143015_webgpu-perf/shot2.png",
		"2025-06-19_143015_webgpu-perf/shot3.png",
		"2025-06-19_180000_session_2/later1.png",
		"2025-06-19_180000_session_2/later2.png",
		"uncategorized/stray.png",
	} {
		if _, err := os.Stat(filepath.Join(desktop, rel)); err != nil {
			t.Errorf("Expected %s after organize: %v", rel, err)
		}
	}

	// Non-screenshot files stay put.
	if _, err := os.Stat(filepath.Join(desktop, "notes.txt")); err != nil {
		t.Errorf("notes.txt should be untouched: %v", err)
	}
}

// Binary-level smoke test: build shotsort and dry-run it over a
// scratch desktop.
func TestE2E_BinaryDryRun(t *testing.T) {
	rootDir, _ := filepath.Abs("../../")
	binPath := filepath.Join(t.TempDir(), "shotsort_e2e")

	buildCmd := exec.Command("go", "build", "-o", binPath, "github.com/felixgeelhaar/shotsort/cmd/shotsort")
	buildCmd.Dir = rootDir
	if out, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build shotsort: %v\n%s", err, out)
	}

	home := t.TempDir()
	desktop := t.TempDir()
	day := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)
	writeShot(t, desktop, "a.png", day.Add(10*time.Hour))
	writeShot(t, desktop, "b.png", day.Add(10*time.Hour+2*time.Minute))

	cmd := exec.Command(binPath, "run", desktop, "--dry-run")
	cmd.Env = append(os.Environ(), "HOME="+home)
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("shotsort run failed: %v\n%s", err, out)
	}

	if !strings.Contains(string(out), "2025-06-19_100000_session_1") {
		t.Errorf("Expected planned session folder in output:\n%s", out)
	}
	if !strings.Contains(string(out), "Dry run") {
		t.Errorf("Expected dry-run summary in output:\n%s", out)
	}

	// Dry run leaves the desktop untouched.
	entries, err := os.ReadDir(desktop)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("Desktop changed during dry run: %d entries", len(entries))
	}
}
