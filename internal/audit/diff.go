// Package audit produces the change trail for an anonymization run: which
// tags changed, and which identifying values existed before the run.
package audit

import (
	"dicom-deid/internal/dicom"
	"dicom-deid/internal/tagmeta"
)

// Change records one tag whose value differs between the original and the
// anonymized dataset.
type Change struct {
	FileName      string `json:"fileName"`
	Tag           string `json:"tag"` // display form "(gggg,eeee)"
	TagName       string `json:"tagName"`
	OriginalValue string `json:"originalValue"`
	NewValue      string `json:"newValue"`
}

// Diff compares the before and after snapshots field by field and returns
// one Change per key whose normalized value differs. The key union keeps
// insertion order: the original's keys first, then keys only the anonymized
// side has. Unchanged keys never appear.
func Diff(original, anonymized *dicom.Snapshot, fileName string) []Change {
	keys := original.Keys()
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		seen[k] = true
	}
	for _, k := range anonymized.Keys() {
		if !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	var changes []Change
	for _, key := range keys {
		before := normalizedValue(original, key)
		after := normalizedValue(anonymized, key)
		if before == after {
			continue
		}

		canonical := tagmeta.ResolveCanonicalTag(key)
		changes = append(changes, Change{
			FileName:      fileName,
			Tag:           tagmeta.DisplayTag(canonical),
			TagName:       tagmeta.DisplayName(canonical, key),
			OriginalValue: before,
			NewValue:      after,
		})
	}
	return changes
}

// normalizedValue extracts the audit value for a key: absent keys are the
// empty string, present values go through the text-repair heuristic.
func normalizedValue(snap *dicom.Snapshot, key string) string {
	v, ok := snap.Get(key)
	if !ok {
		return ""
	}
	repaired, _ := RepairText(v)
	return repaired
}
