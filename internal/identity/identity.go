// Package identity assigns stable anonymous identities to patients, so the
// same patient keeps the same pseudonym across files, batches, and runs.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var nonAlphaRe = regexp.MustCompile(`[^A-Z\s]`)

// NormalizeName canonicalizes a patient name for matching. "SMITH^JOHN",
// "John Smith" and "smith, john" all normalize to the same string.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	name = strings.ToUpper(name)
	name = strings.ReplaceAll(name, "^", " ")
	name = strings.ReplaceAll(name, ",", " ")
	name = nonAlphaRe.ReplaceAllString(name, "")

	parts := strings.Fields(name)
	sort.Strings(parts)
	return strings.Join(parts, "")
}

// Hash derives a salted identity key from a normalized name and DOB.
func Hash(name, dob, salt string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s", NormalizeName(name), strings.TrimSpace(dob), salt)))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:12])
}

// placeholderNames are values that mean "no real name recorded".
var placeholderNames = map[string]bool{
	"":          true,
	"unknown":   true,
	"noname":    true,
	"anonymous": true,
	"test":      true,
	"patient":   true,
}

// placeholderDOBs are values that mean "no real birth date recorded".
var placeholderDOBs = map[string]bool{
	"":         true,
	"00000000": true,
	"11111111": true,
	"19000101": true,
	"99999999": true,
}

// UsableIdentity reports whether name and DOB are real values rather than
// placeholders, i.e. whether they can key a patient identity.
func UsableIdentity(name, dob string) bool {
	n := strings.ToLower(NormalizeName(name))
	dob = strings.TrimSpace(dob)

	if placeholderNames[n] || len(n) < 3 {
		return false
	}
	if placeholderDOBs[dob] || len(dob) != 8 {
		return false
	}
	return true
}
