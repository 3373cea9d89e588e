package identity

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// mapperData is the persisted mapping file.
type mapperData struct {
	Entries map[string]string `json:"entries"` // identity key -> anon id
	Counter int               `json:"counter"`
	Updated string            `json:"updated"`
}

// Mapper hands out anonymous IDs keyed by salted identity hash, with a
// PatientID fallback when name/DOB are placeholders. The mapping file is
// shared state across runs and modalities, so it is guarded with a file lock
// against concurrent runs pointed at the same mapping.
type Mapper struct {
	path    string
	salt    string
	lock    *flock.Flock
	entries map[string]string
	counter int
}

// NewMapper creates a mapper persisting to path. An empty path keeps the
// mapping in memory only.
func NewMapper(path, salt string) *Mapper {
	m := &Mapper{
		path:    path,
		salt:    salt,
		entries: make(map[string]string),
	}
	if path != "" {
		m.lock = flock.New(path + ".lock")
	}
	return m
}

// AnonID returns the anonymous ID for a patient, assigning a new one on
// first sight. Matching prefers the salted name+DOB identity; placeholder
// identities fall back to the PatientID, and a patient with neither gets a
// fresh ID every time.
func (m *Mapper) AnonID(patientID, name, dob string) (string, error) {
	if m.lock != nil {
		if err := m.lock.Lock(); err != nil {
			return "", fmt.Errorf("could not lock mapping file: %w", err)
		}
		defer m.lock.Unlock()
	}

	if err := m.load(); err != nil {
		return "", err
	}

	var key string
	switch {
	case UsableIdentity(name, dob):
		key = Hash(name, dob, m.salt)
	case strings.TrimSpace(patientID) != "":
		key = "pid:" + strings.TrimSpace(patientID)
	}

	if key != "" {
		if id, ok := m.entries[key]; ok {
			return id, nil
		}
	}

	m.counter++
	id := fmt.Sprintf("ANON-%06d", m.counter)
	if key != "" {
		m.entries[key] = id
	}
	return id, m.save()
}

// Count returns the number of mapped identities.
func (m *Mapper) Count() int {
	seen := make(map[string]bool)
	for _, id := range m.entries {
		seen[id] = true
	}
	return len(seen)
}

func (m *Mapper) load() error {
	if m.path == "" {
		return nil
	}

	data, err := os.ReadFile(m.path)
	if err != nil {
		return nil // First run, start fresh
	}

	var md mapperData
	if err := json.Unmarshal(data, &md); err != nil {
		return fmt.Errorf("could not read mapping file %s: %w", m.path, err)
	}
	if md.Entries != nil {
		m.entries = md.Entries
	}
	if md.Counter > m.counter {
		m.counter = md.Counter
	}
	return nil
}

func (m *Mapper) save() error {
	if m.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("could not create mapping directory: %w", err)
	}

	data, err := json.MarshalIndent(mapperData{
		Entries: m.entries,
		Counter: m.counter,
		Updated: time.Now().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("could not save mapping file: %w", err)
	}
	return nil
}
