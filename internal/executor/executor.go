// Package executor turns an organization plan into filesystem moves:
// conflict-safe, move-only, continue-on-error. Dry-run walks the exact
// same plan without touching the filesystem.
package executor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/shotsort/internal/catalog"
)

// UncategorizedFolder receives records that had no temporal neighbors.
const UncategorizedFolder = "uncategorized"

// MoveLogger records completed moves for auditability. The sqlite
// store satisfies this.
type MoveLogger interface {
	LogMove(runID, session, source, dest string) error
}

// Move is one planned or completed file move.
type Move struct {
	Session string
	Source  string
	Dest    string
}

// MoveError is a per-file failure. The run continues past it.
type MoveError struct {
	Source string
	Dest   string
	Err    error
}

func (e MoveError) Error() string {
	return fmt.Sprintf("move %s -> %s: %v", e.Source, e.Dest, e.Err)
}

// Result aggregates one plan execution.
type Result struct {
	Planned []Move
	Moved   int
	Errors  []MoveError
}

// Failed reports whether any move failed; the process exit status
// reflects it after all moves were attempted.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// Executor carries out organization plans.
type Executor struct {
	dryRun bool
	runID  string
	log    MoveLogger // may be nil
}

func New(dryRun bool, runID string, log MoveLogger) *Executor {
	return &Executor{dryRun: dryRun, runID: runID, log: log}
}

// Execute moves every session member into a folder named after its
// session under the plan root, and every uncategorized record into the
// fixed uncategorized folder. A failure on one file is recorded and
// the remaining files are still processed. In dry-run mode the
// traversal is identical but no filesystem mutation occurs.
func (e *Executor) Execute(plan *catalog.Plan) *Result {
	res := &Result{}
	claimed := make(map[string]bool)

	for _, s := range plan.Sessions {
		e.moveAll(plan.Root, s.Name, s.Records, claimed, res)
	}
	if len(plan.Uncategorized) > 0 {
		e.moveAll(plan.Root, UncategorizedFolder, plan.Uncategorized, claimed, res)
	}

	return res
}

func (e *Executor) moveAll(root, session string, records []*catalog.Record, claimed map[string]bool, res *Result) {
	dir, err := e.sessionDir(root, session, claimed)
	if err != nil {
		for _, r := range records {
			res.Errors = append(res.Errors, MoveError{Source: r.Path, Dest: filepath.Join(root, session), Err: err})
		}
		return
	}

	for _, r := range records {
		e.moveFile(r.Path, dir, session, claimed, res)
	}
}

// sessionDir picks the destination folder for a session. An existing
// directory with the session's name is reused; anything else occupying
// the name pushes the folder to a numeric-suffix variant rather than
// overwriting.
func (e *Executor) sessionDir(root, name string, claimed map[string]bool) (string, error) {
	base := filepath.Join(root, name)
	for i := 0; ; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s_%d", base, i)
		}

		info, err := os.Stat(candidate)
		switch {
		case os.IsNotExist(err):
			if claimed[candidate] {
				continue
			}
			claimed[candidate] = true
			if e.dryRun {
				return candidate, nil
			}
			if mkErr := os.MkdirAll(candidate, 0750); mkErr != nil {
				return "", fmt.Errorf("failed to create session folder: %w", mkErr)
			}
			return candidate, nil
		case err != nil:
			return "", fmt.Errorf("failed to stat session folder: %w", err)
		case info.IsDir():
			claimed[candidate] = true
			return candidate, nil
		}
		// A non-directory holds the name; try the next suffix.
	}
}

func (e *Executor) moveFile(src, dir, session string, claimed map[string]bool, res *Result) {
	dest := uniqueDest(dir, filepath.Base(src), claimed)
	claimed[dest] = true
	res.Planned = append(res.Planned, Move{Session: session, Source: src, Dest: dest})

	if e.dryRun {
		return
	}

	if err := rename(src, dest); err != nil {
		res.Errors = append(res.Errors, MoveError{Source: src, Dest: dest, Err: err})
		return
	}
	res.Moved++

	if e.log != nil {
		// Audit only; a logging failure never fails the move.
		_ = e.log.LogMove(e.runID, session, src, dest)
	}
}

// uniqueDest returns the first destination path not already occupied
// on disk or claimed earlier in this run.
func uniqueDest(dir, name string, claimed map[string]bool) string {
	dest := filepath.Join(dir, name)
	if available(dest, claimed) {
		return dest
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		dest = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, i, ext))
		if available(dest, claimed) {
			return dest
		}
	}
}

func available(dest string, claimed map[string]bool) bool {
	if claimed[dest] {
		return false
	}
	_, err := os.Stat(dest)
	return os.IsNotExist(err)
}

// rename moves a file, falling back to copy+delete for cross-device
// moves.
func rename(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}
	if err := copyFile(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) // #nosec G304
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest) // #nosec G304
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
