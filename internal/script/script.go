// Package script parses and executes declarative de-identification scripts.
//
// A script is a sequence of directives, one per line:
//
//	(0010,0010) := "ANONYMOUS"   assign a value
//	- (0008,0080)                remove the element
//	// comment
//
// The orchestrator treats scripts as opaque strings; only Normalize and
// Substitute look inside before the engine parses them.
package script

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// OpKind distinguishes the two directive forms.
type OpKind int

const (
	OpAssign OpKind = iota
	OpRemove
)

// Op is one parsed directive.
type Op struct {
	Kind  OpKind
	Group uint16
	Elem  uint16
	Value string // assign only
}

var (
	assignRe = regexp.MustCompile(`^\(\s*([0-9A-Fa-f]{4})\s*,\s*([0-9A-Fa-f]{4})\s*\)\s*:=\s*"(.*)"$`)
	removeRe = regexp.MustCompile(`^-\s*\(\s*([0-9A-Fa-f]{4})\s*,\s*([0-9A-Fa-f]{4})\s*\)$`)
)

// parseOps parses a script into its directive list. Blank lines and //
// comments are skipped; anything else that doesn't match a directive form is
// a syntax error carrying the line number.
func parseOps(script string) ([]Op, error) {
	var ops []Op
	for i, line := range strings.Split(script, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		if m := assignRe.FindStringSubmatch(line); m != nil {
			ops = append(ops, Op{
				Kind:  OpAssign,
				Group: parseHex16(m[1]),
				Elem:  parseHex16(m[2]),
				Value: m[3],
			})
			continue
		}
		if m := removeRe.FindStringSubmatch(line); m != nil {
			ops = append(ops, Op{
				Kind:  OpRemove,
				Group: parseHex16(m[1]),
				Elem:  parseHex16(m[2]),
			})
			continue
		}

		return nil, fmt.Errorf("line %d: invalid directive: %q", i+1, line)
	}
	return ops, nil
}

// parseHex16 converts a 4-hex-digit group/element half. The regexps above
// guarantee the input parses.
func parseHex16(s string) uint16 {
	v, _ := strconv.ParseUint(s, 16, 16)
	return uint16(v)
}

// Normalize unifies line endings (CRLF and bare CR become LF) and rewrites
// the one known comment-format issue: scripts exported from tools that
// comment with "#" get those lines rewritten to "//" so the parser accepts
// them.
func Normalize(script string) string {
	script = strings.ReplaceAll(script, "\r\n", "\n")
	script = strings.ReplaceAll(script, "\r", "\n")

	lines := strings.Split(script, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "#") {
			indent := line[:len(line)-len(trimmed)]
			lines[i] = indent + "//" + strings.TrimPrefix(trimmed, "#")
		}
	}
	return strings.Join(lines, "\n")
}

// The two placeholder assignment lines that Substitute recognizes. The
// replacement is literal: a script that spells these lines any other way is
// left untouched, and that is not an error.
const (
	PlaceholderNameLine = `(0010,0010) := "ANONYMOUS"`
	PlaceholderIDLine   = `(0010,0020) := "ANON_ID"`
)

// Substitute injects a patient name and/or ID into a script by literal
// replacement of the known placeholder lines. Empty parameters leave the
// corresponding placeholder alone.
func Substitute(script, patientName, patientID string) string {
	if patientName != "" {
		script = strings.ReplaceAll(script, PlaceholderNameLine,
			fmt.Sprintf(`(0010,0010) := %q`, patientName))
	}
	if patientID != "" {
		script = strings.ReplaceAll(script, PlaceholderIDLine,
			fmt.Sprintf(`(0010,0020) := %q`, patientID))
	}
	return script
}

// WithIdentityPlaceholders appends the placeholder assignment lines to a
// script that lacks them, so Substitute has something to rewrite. Used by
// callers that want per-patient pseudonymization on top of a scrub-only
// script.
func WithIdentityPlaceholders(script string) string {
	var extra []string
	if !strings.Contains(script, PlaceholderNameLine) {
		extra = append(extra, PlaceholderNameLine)
	}
	if !strings.Contains(script, PlaceholderIDLine) {
		extra = append(extra, PlaceholderIDLine)
	}
	if len(extra) == 0 {
		return script
	}
	return strings.TrimRight(script, "\n") + "\n" + strings.Join(extra, "\n") + "\n"
}
