package phone

import "testing"

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"international safaricom", "+254712345678", true},
		{"local safaricom", "0712345678", true},
		{"local 011 range", "0112345678", true},
		{"no plus country code", "254712345678", true},
		{"spaces and dashes", "+254 712-345-678", true},
		{"too short", "12345", false},
		{"empty", "", false},
		{"local too short", "071234567", false},
		{"local too long", "07123456789", false},
		{"landline prefix", "0201234567", false},
		{"wrong country code", "+255712345678", false},
		{"letters", "07abc45678", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.input); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already international", "+254712345678", "+254712345678"},
		{"local to international", "0712345678", "+254712345678"},
		{"bare country code", "254712345678", "+254712345678"},
		{"formatted", "+254 (712) 345 678", "+254712345678"},
		{"011 range", "0112345678", "+254112345678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeEquivalence(t *testing.T) {
	// Local and international forms of the same number must normalize
	// identically.
	if Normalize("0712345678") != Normalize("+254712345678") {
		t.Error("local and international forms should normalize to the same value")
	}
}
