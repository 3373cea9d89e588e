package tagmeta

import (
	"regexp"
	"testing"
)

var canonicalShape = regexp.MustCompile(`^[0-9A-F]{8}$`)

func TestResolveCanonicalTag(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"canonical passthrough", "00100010", "00100010"},
		{"canonical lowercased", "0008103e", "0008103E"},
		{"dictionary alias", "PatientName", "00100010"},
		{"dictionary alias institution", "InstitutionName", "00080080"},
		{"hand table alias", "OtherPatientIDs", "00101000"},
		{"unknown alias", "DefinitelyNotATag", "00000000"},
		{"empty", "", "00000000"},
		{"garbage", "!!??", "00000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCanonicalTag(tt.key)
			if got != tt.expected {
				t.Errorf("ResolveCanonicalTag(%q) = %q, want %q", tt.key, got, tt.expected)
			}
			if !canonicalShape.MatchString(got) {
				t.Errorf("ResolveCanonicalTag(%q) = %q, not 8 uppercase hex digits", tt.key, got)
			}
		})
	}
}

func TestDisplayTag(t *testing.T) {
	tests := []struct {
		canonical string
		expected  string
	}{
		{"00100010", "(0010,0010)"},
		{"0008103E", "(0008,103e)"},
		{"00000000", "(0000,0000)"},
		{"bogus", "(0000,0000)"},
	}

	for _, tt := range tests {
		if got := DisplayTag(tt.canonical); got != tt.expected {
			t.Errorf("DisplayTag(%q) = %q, want %q", tt.canonical, got, tt.expected)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name      string
		canonical string
		alias     string
		expected  string
	}{
		{"hand table", "00100010", "PatientName", "Patient's Name"},
		{"hand table institution", "00080080", "InstitutionName", "Institution Name"},
		{"readable fallback", "00000000", "someVendorField", "Some Vendor Field"},
		{"readable fallback single word", "00000000", "mystery", "Mystery"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.canonical, tt.alias); got != tt.expected {
				t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.canonical, tt.alias, got, tt.expected)
			}
		})
	}
}

func TestReadable(t *testing.T) {
	tests := []struct {
		alias    string
		expected string
	}{
		{"PatientName", "Patient Name"},
		{"patientName", "Patient Name"},
		{"name", "Name"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Readable(tt.alias); got != tt.expected {
			t.Errorf("Readable(%q) = %q, want %q", tt.alias, got, tt.expected)
		}
	}
}

func TestParseCanonicalRoundTrip(t *testing.T) {
	tg, ok := ParseCanonical("00080080")
	if !ok {
		t.Fatal("ParseCanonical(00080080) failed")
	}
	if tg.Group != 0x0008 || tg.Element != 0x0080 {
		t.Errorf("ParseCanonical = (%04x,%04x), want (0008,0080)", tg.Group, tg.Element)
	}
	if got := CanonicalFromTag(tg); got != "00080080" {
		t.Errorf("CanonicalFromTag = %q, want 00080080", got)
	}

	if _, ok := ParseCanonical("xyz"); ok {
		t.Error("ParseCanonical accepted a non-canonical string")
	}
}
