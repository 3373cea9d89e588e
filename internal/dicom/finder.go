package dicom

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// dicomExtensions are common DICOM file extensions.
var dicomExtensions = map[string]bool{
	".dcm":   true,
	".dicom": true,
}

// skippedDirs are directory names never descended into.
var skippedDirs = map[string]bool{
	".git":        true,
	"__pycache__": true,
	"anonymized":  true,
}

// FindFiles finds DICOM files under a path, by extension or by DICM magic
// bytes for extensionless files. Results are sorted for deterministic
// processing order.
func FindFiles(inputPath string, recursive bool) ([]string, error) {
	var files []string

	walkFn := func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files we can't access
		}

		if info.IsDir() {
			if skippedDirs[info.Name()] {
				return filepath.SkipDir
			}
			if !recursive && path != inputPath {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Name() == "DICOMDIR" || strings.HasPrefix(info.Name(), ".") {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if dicomExtensions[ext] || (ext == "" && hasMagicBytes(path)) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.Walk(inputPath, walkFn); err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// hasMagicBytes checks for "DICM" at byte offset 128.
func hasMagicBytes(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 132)
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}
	return string(header[128:132]) == "DICM"
}
