package progress

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLedgerMarkAndDone(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.dcm", "data")

	l := Open(filepath.Join(dir, ".progress.json"))
	if l.Done(input) {
		t.Error("fresh ledger reports file as done")
	}

	l.MarkSuccess(input, filepath.Join(dir, "out", "scan.dcm"))
	if !l.Done(input) {
		t.Error("successful file not reported as done")
	}

	l.MarkFailure(input, "boom")
	if l.Done(input) {
		t.Error("failed file reported as done")
	}
}

func TestLedgerPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.dcm", "data")
	path := filepath.Join(dir, ".progress.json")

	Open(path).MarkSuccess(input, "out/scan.dcm")

	if !Open(path).Done(input) {
		t.Error("success did not survive reopen")
	}
}

func TestLedgerFingerprintInvalidation(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.dcm", "data")

	l := Open(filepath.Join(dir, ".progress.json"))
	l.MarkSuccess(input, "out/scan.dcm")

	// Grow the file and push its mtime forward; either alone invalidates.
	if err := os.WriteFile(input, []byte("new content"), 0o644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(input, future, future); err != nil {
		t.Fatal(err)
	}

	if l.Done(input) {
		t.Error("edited file still reported as done")
	}
}

func TestLedgerClearFailures(t *testing.T) {
	dir := t.TempDir()
	good := writeInput(t, dir, "good.dcm", "data")
	bad := writeInput(t, dir, "bad.dcm", "data")

	l := Open(filepath.Join(dir, ".progress.json"))
	l.MarkSuccess(good, "out/good.dcm")
	l.MarkFailure(bad, "unparsable")

	if cleared := l.ClearFailures(); cleared != 1 {
		t.Errorf("ClearFailures = %d, want 1", cleared)
	}
	if !l.Done(good) {
		t.Error("success was cleared along with failures")
	}
	if cleared := l.ClearFailures(); cleared != 0 {
		t.Errorf("second ClearFailures = %d, want 0", cleared)
	}
}

func TestLedgerInMemory(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.dcm", "data")

	l := Open("")
	l.MarkSuccess(input, "out/scan.dcm")
	if !l.Done(input) {
		t.Error("in-memory ledger does not track outcomes")
	}
}
