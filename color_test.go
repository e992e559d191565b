package draft

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGB
		ok    bool
	}{
		{"long hex", "#FF8000", RGB{255, 128, 0}, true},
		{"lowercase hex", "#ff8000", RGB{255, 128, 0}, true},
		{"short hex", "#F80", RGB{255, 136, 0}, true},
		{"named color", "red", RGB{255, 0, 0}, true},
		{"named color mixed case", "SteelBlue", RGB{70, 130, 180}, true},
		{"unknown name", "notacolor", RGB{}, false},
		{"bad hex", "#GGHHII", RGB{}, false},
		{"empty", "", RGB{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColor(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, %v, want %+v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{255, 128, 0}).Hex(); got != "#FF8000" {
		t.Errorf("Hex = %q, want #FF8000", got)
	}
	if got := (RGB{}).Hex(); got != "#000000" {
		t.Errorf("Hex = %q, want #000000", got)
	}
}

func TestHexRoundTrip(t *testing.T) {
	orig := RGB{12, 200, 99}
	got, ok := ParseColor(orig.Hex())
	if !ok || got != orig {
		t.Errorf("round trip = %+v, %v", got, ok)
	}
}
