package dicom

import (
	"fmt"
	"strings"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// Snapshot is an immutable ordered key/value view of a dataset, taken at a
// point in time. Keys are the decoder's field names ("PatientName") for tags
// the dictionary knows, canonical 8-hex-digit tags otherwise. A before and an
// after snapshot are always distinct instances, so they can be compared
// without worrying about in-place mutation.
type Snapshot struct {
	keys   []string
	values map[string]string
}

// NewSnapshot creates an empty snapshot. Populate it with Put before handing
// it to consumers.
func NewSnapshot() *Snapshot {
	return &Snapshot{values: make(map[string]string)}
}

// Put records a key/value pair, preserving insertion order. Re-putting an
// existing key overwrites its value without changing its position.
func (s *Snapshot) Put(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Keys returns the keys in insertion order.
func (s *Snapshot) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Get returns the value for a key. It tries the exact key first, then a
// case-insensitive match, and returns ("", false) when neither is present.
func (s *Snapshot) Get(key string) (string, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	for k, v := range s.values {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}

// Len returns the number of keys.
func (s *Snapshot) Len() int {
	return len(s.keys)
}

// Snapshot captures the current dataset as an ordered key/value view.
// Pixel data and the file meta group are excluded; they are compared as
// byte streams, not as audit fields.
func (f *File) Snapshot() *Snapshot {
	snap := NewSnapshot()
	for _, elem := range f.Data.Elements {
		if elem.Tag == tag.PixelData || elem.Tag.Group == 0x0002 {
			continue
		}
		snap.Put(keyForTag(elem.Tag), elementString(elem))
	}
	return snap
}

// keyForTag returns the decoder's field name for a tag when the dictionary
// knows it, otherwise the canonical 8-hex-digit form.
func keyForTag(t tag.Tag) string {
	if info, err := tag.Find(t); err == nil && info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("%04X%04X", t.Group, t.Element)
}
