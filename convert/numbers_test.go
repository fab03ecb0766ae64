package convert

import "testing"

func TestRoundFloat64(t *testing.T) {
	tests := []struct {
		number   float64
		decimals int
		expected float64
	}{
		{0.123456789, 5, 0.12346},
		{0.1234549, 5, 0.12345},
		{142.53 / 1000, 5, 0.14253},
		{0.1, 6, 0.1},
		{0, 2, 0},
	}

	for _, tt := range tests {
		if got := RoundFloat64(tt.number, tt.decimals); got != tt.expected {
			t.Errorf("RoundFloat64(%v, %d) expected %v, got %v", tt.number, tt.decimals, tt.expected, got)
		}
	}
}

func TestParseCommaFloat(t *testing.T) {
	got, err := ParseCommaFloat("142,53")
	if err != nil {
		t.Fatalf("ParseCommaFloat() unexpected error: %v", err)
	}
	if got != 142.53 {
		t.Errorf("ParseCommaFloat() expected 142.53, got %v", got)
	}

	if _, err := ParseCommaFloat("no-number"); err == nil {
		t.Errorf("ParseCommaFloat() expected error for non-numeric input")
	}
}
