package moderation

import "testing"

// TestNormalize verifies transliteration, case folding, separator
// stripping and run collapsing.
func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain word", "hello", "hello"},
		{"uppercase", "HeLLo", "hello"},
		{"spaces stripped", "h e l l o", "hello"},
		{"punctuation stripped", "h.e,l-l!o", "hello"},
		{"underscores stripped", "h_e_l_l_o", "hello"},
		{"accents transliterated", "héllo wörld", "helloworld"},
		{"triple run collapsed", "heeello", "hello"},
		{"long run collapsed", "loooooool", "lol"},
		{"double kept", "hello", "hello"},
		{"digits kept", "abc123", "abc123"},
		{"mixed evasion", "H é_L-l o!!", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestNormalizeDeterministic ensures repeated calls agree (pure function).
func TestNormalizeDeterministic(t *testing.T) {
	input := "SóMe_Wëird   téxtttt!!"
	first := Normalize(input)
	for i := 0; i < 5; i++ {
		if got := Normalize(input); got != first {
			t.Fatalf("Normalize is not deterministic: %q vs %q", got, first)
		}
	}
}
