// Package progress persists which files a run has already handled, so an
// interrupted batch can resume without redoing work.
package progress

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"time"
)

// Outcome is the recorded result for one file.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

type entry struct {
	Outcome     Outcome `json:"outcome"`
	Fingerprint string  `json:"fingerprint"`
	Output      string  `json:"output,omitempty"`
	Error       string  `json:"error,omitempty"`
	Timestamp   string  `json:"timestamp"`
}

type ledgerData struct {
	Files   map[string]*entry `json:"files"`
	Updated string            `json:"updated"`
}

// Ledger tracks per-file outcomes across runs. A file counts as done only if
// it succeeded and its fingerprint (size + mtime) still matches, so edited
// inputs get reprocessed.
type Ledger struct {
	path    string
	entries map[string]*entry
}

// Open loads a ledger from path, starting fresh if the file does not exist.
// An empty path keeps the ledger in memory only.
func Open(path string) *Ledger {
	l := &Ledger{
		path:    path,
		entries: make(map[string]*entry),
	}
	if path == "" {
		return l
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return l
	}
	var ld ledgerData
	if err := json.Unmarshal(data, &ld); err != nil {
		return l
	}
	if ld.Files != nil {
		l.entries = ld.Files
	}
	return l
}

// Done reports whether a file already succeeded and is unchanged since.
func (l *Ledger) Done(filePath string) bool {
	e, ok := l.entries[filePath]
	if !ok || e.Outcome != OutcomeSuccess {
		return false
	}
	return e.Fingerprint == fingerprint(filePath)
}

// MarkSuccess records a successful file and its output path.
func (l *Ledger) MarkSuccess(filePath, outputPath string) {
	l.entries[filePath] = &entry{
		Outcome:     OutcomeSuccess,
		Fingerprint: fingerprint(filePath),
		Output:      outputPath,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	l.flush()
}

// MarkFailure records a failed file with its error message.
func (l *Ledger) MarkFailure(filePath, errMsg string) {
	l.entries[filePath] = &entry{
		Outcome:     OutcomeFailure,
		Fingerprint: fingerprint(filePath),
		Error:       errMsg,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	l.flush()
}

// ClearFailures drops failed entries so they are retried, returning how many
// were cleared.
func (l *Ledger) ClearFailures() int {
	cleared := 0
	for path, e := range l.entries {
		if e.Outcome == OutcomeFailure {
			delete(l.entries, path)
			cleared++
		}
	}
	if cleared > 0 {
		l.flush()
	}
	return cleared
}

func (l *Ledger) flush() {
	if l.path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(ledgerData{
		Files:   l.entries,
		Updated: time.Now().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(l.path, data, 0o644)
}

// fingerprint hashes a file's size and mtime; enough to notice edits without
// reading content.
func fingerprint(filePath string) string {
	info, err := os.Stat(filePath)
	if err != nil {
		return ""
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%d_%d", info.Size(), info.ModTime().Unix())
	return fmt.Sprintf("%x", h.Sum64())
}
