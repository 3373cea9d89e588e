package audit

import "testing"

func TestRepairText(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		expected    string
		wantApplied bool
	}{
		{"plain ascii untouched", "John Smith", "John Smith", false},
		{"empty untouched", "", "", false},
		// "José" encoded as UTF-8 then mis-decoded as Latin-1.
		{"mojibake repaired", "JosÃ©", "José", true},
		{"mojibake name repaired", "MÃ¼ller", "Müller", true},
		// Already correctly decoded: contains a rune above 0xFF, so the
		// heuristic must not fire.
		{"correct utf8 untouched", "日本語", "日本語", false},
		{"correct accents untouched", "Müller日本", "Müller日本", false},
		// High bytes that don't form valid UTF-8: kept as-is.
		{"invalid sequence kept", "abcÿdef", "abcÿdef", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, applied := RepairText(tt.in)
			if got != tt.expected {
				t.Errorf("RepairText(%q) = %q, want %q", tt.in, got, tt.expected)
			}
			if applied != tt.wantApplied {
				t.Errorf("RepairText(%q) applied = %v, want %v", tt.in, applied, tt.wantApplied)
			}
		})
	}
}
