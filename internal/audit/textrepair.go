package audit

import "unicode/utf8"

// RepairText recovers DICOM string fields that were UTF-8 on the wire but
// got decoded as Latin-1 somewhere upstream. If the string contains runes in
// the 0x80-0xFF range (and none above, which would mean it was decoded
// correctly), each rune is re-expanded to its original byte and the byte
// sequence is re-decoded as UTF-8. The returned bool reports whether the
// repair was applied.
//
// This is an accepted heuristic, not a guarantee: a genuinely Latin-1 string
// whose bytes happen to form valid UTF-8 will be mis-repaired. It never
// fails; on any doubt the original text is kept.
func RepairText(s string) (string, bool) {
	suspect := false
	for _, r := range s {
		if r > 0xFF {
			return s, false
		}
		if r >= 0x80 {
			suspect = true
		}
	}
	if !suspect {
		return s, false
	}

	raw := make([]byte, 0, len(s))
	for _, r := range s {
		raw = append(raw, byte(r))
	}
	if !utf8.Valid(raw) {
		return s, false
	}
	return string(raw), true
}
