// Package tagmeta maps between the three spellings a DICOM tag shows up as:
// the canonical 8-hex-digit form ("00100010"), the decoder's field name
// ("PatientName"), and the human-readable display name ("Patient Name").
package tagmeta

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/suyashkumar/dicom/pkg/tag"
)

// UnknownTag is the sentinel canonical tag returned for keys that cannot be
// resolved. Callers can always proceed with it; it never maps to a real tag.
const UnknownTag = "00000000"

var canonicalRe = regexp.MustCompile(`^[0-9A-Fa-f]{8}$`)

// ResolveCanonicalTag resolves any key (canonical hex, decoder field name,
// or something else entirely) to an 8-hex-digit uppercase canonical tag.
// It never fails: unresolvable keys return UnknownTag.
func ResolveCanonicalTag(key string) string {
	if canonicalRe.MatchString(key) {
		return strings.ToUpper(key)
	}
	if canonical, ok := aliasTags[key]; ok {
		return canonical
	}
	if info, err := tag.FindByName(key); err == nil {
		return CanonicalFromTag(info.Tag)
	}
	return UnknownTag
}

// CanonicalFromTag formats a parsed tag in canonical 8-hex-digit form.
func CanonicalFromTag(t tag.Tag) string {
	return fmt.Sprintf("%04X%04X", t.Group, t.Element)
}

// ParseCanonical converts a canonical 8-hex-digit tag back to the decoder's
// tag type.
func ParseCanonical(canonical string) (tag.Tag, bool) {
	if !canonicalRe.MatchString(canonical) {
		return tag.Tag{}, false
	}
	group, _ := strconv.ParseUint(canonical[:4], 16, 16)
	element, _ := strconv.ParseUint(canonical[4:], 16, 16)
	return tag.Tag{Group: uint16(group), Element: uint16(element)}, true
}

// DisplayTag formats a canonical tag as "(gggg,eeee)".
func DisplayTag(canonical string) string {
	if len(canonical) != 8 {
		canonical = UnknownTag
	}
	return "(" + strings.ToLower(canonical[:4]) + "," + strings.ToLower(canonical[4:]) + ")"
}

// DisplayName returns a human-readable name for a tag. It consults the
// hand-maintained table first, then the decoder's dictionary, and finally
// falls back to a readable-ized version of the alias the caller saw the tag
// under. Unknown tags get a name rather than an error; the audit trail must
// always be able to label a change.
func DisplayName(canonical, alias string) string {
	if name, ok := canonicalNames[canonical]; ok {
		return name
	}
	if t, ok := ParseCanonical(canonical); ok && canonical != UnknownTag {
		if info, err := tag.Find(t); err == nil && info.Name != "" {
			return Readable(info.Name)
		}
	}
	return Readable(alias)
}

// AliasFor returns the decoder's field name for a canonical tag, or "" when
// the dictionary does not know the tag.
func AliasFor(canonical string) string {
	t, ok := ParseCanonical(canonical)
	if !ok {
		return ""
	}
	if info, err := tag.Find(t); err == nil {
		return info.Name
	}
	return ""
}

// Readable converts a CamelCase field name to a display form: a space is
// inserted before each capital and the first letter is capitalized.
// "patientName" becomes "Patient Name".
func Readable(alias string) string {
	if alias == "" {
		return ""
	}

	var b strings.Builder
	for i, r := range alias {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
