package dicom

import "testing"

func TestSnapshotOrderAndOverwrite(t *testing.T) {
	s := NewSnapshot()
	s.Put("PatientName", "John Smith")
	s.Put("PatientID", "12345")
	s.Put("InstitutionName", "General Hospital")
	s.Put("PatientName", "Jane Doe") // overwrite keeps position

	keys := s.Keys()
	want := []string{"PatientName", "PatientID", "InstitutionName"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %q, want %q", i, keys[i], want[i])
		}
	}

	if v, ok := s.Get("PatientName"); !ok || v != "Jane Doe" {
		t.Errorf("Get(PatientName) = %q, %v", v, ok)
	}
	if s.Len() != 3 {
		t.Errorf("Len = %d, want 3", s.Len())
	}
}

func TestSnapshotGetCaseInsensitive(t *testing.T) {
	s := NewSnapshot()
	s.Put("PatientName", "John Smith")

	if v, ok := s.Get("patientname"); !ok || v != "John Smith" {
		t.Errorf("case-insensitive Get = %q, %v", v, ok)
	}
	if _, ok := s.Get("StudyDate"); ok {
		t.Error("Get found an absent key")
	}
}

func TestSnapshotKeysIsACopy(t *testing.T) {
	s := NewSnapshot()
	s.Put("PatientName", "John Smith")

	keys := s.Keys()
	keys[0] = "mutated"
	if got := s.Keys()[0]; got != "PatientName" {
		t.Errorf("internal key order mutated through Keys(): %q", got)
	}
}

func TestSnapshotEmptyValue(t *testing.T) {
	s := NewSnapshot()
	s.Put("PatientName", "")

	// An empty value is still a present key; absence and emptiness differ.
	if v, ok := s.Get("PatientName"); !ok || v != "" {
		t.Errorf("Get = %q, %v, want present empty", v, ok)
	}
}
