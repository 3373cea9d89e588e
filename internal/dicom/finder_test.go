package dicom

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

// dicomMagic builds a minimal preamble: 128 zero bytes then "DICM".
func dicomMagic() []byte {
	data := make([]byte, 132)
	copy(data[128:], "DICM")
	return data
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.dcm"), []byte("x"))
	writeFile(t, filepath.Join(dir, "a.DCM"), []byte("x"))
	writeFile(t, filepath.Join(dir, "c.dicom"), []byte("x"))
	writeFile(t, filepath.Join(dir, "notes.txt"), []byte("x"))

	files, err := FindFiles(dir, false)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("found %d files, want 3: %v", len(files), files)
	}
	// Sorted order.
	if filepath.Base(files[0]) != "a.DCM" || filepath.Base(files[1]) != "b.dcm" {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestFindFilesByMagicBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "IM000001"), dicomMagic())
	writeFile(t, filepath.Join(dir, "IM000002"), []byte("no preamble here"))
	writeFile(t, filepath.Join(dir, "short"), []byte("tiny"))

	files, err := FindFiles(dir, false)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "IM000001" {
		t.Errorf("files = %v, want only IM000001", files)
	}
}

func TestFindFilesRecursion(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.dcm"), []byte("x"))
	writeFile(t, filepath.Join(dir, "series1", "nested.dcm"), []byte("x"))

	flat, err := FindFiles(dir, false)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(flat) != 1 || filepath.Base(flat[0]) != "top.dcm" {
		t.Errorf("non-recursive files = %v", flat)
	}

	deep, err := FindFiles(dir, true)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(deep) != 2 {
		t.Errorf("recursive files = %v, want 2", deep)
	}
}

func TestFindFilesSkips(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.dcm"), []byte("x"))
	writeFile(t, filepath.Join(dir, "anonymized", "done.dcm"), []byte("x"))
	writeFile(t, filepath.Join(dir, ".git", "blob.dcm"), []byte("x"))
	writeFile(t, filepath.Join(dir, "DICOMDIR"), dicomMagic())
	writeFile(t, filepath.Join(dir, ".hidden.dcm"), []byte("x"))

	files, err := FindFiles(dir, true)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "keep.dcm" {
		t.Errorf("files = %v, want only keep.dcm", files)
	}
}

func TestFindFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scan.dcm")
	writeFile(t, path, []byte("x"))

	files, err := FindFiles(path, false)
	if err != nil {
		t.Fatalf("FindFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != path {
		t.Errorf("files = %v, want the file itself", files)
	}
}
