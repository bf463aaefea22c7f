package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "$0"},
		{4, "$4"},
		{996, "$996"},
		{1004, "$1.004"},
		{1234567, "$1.234.567"},
		{10274729, "$10.274.729"},
		{-1234, "-$1.234"},
	}

	for _, tt := range tests {
		if got := Currency(tt.amount); got != tt.expected {
			t.Errorf("Currency(%d) = %s, expected %s", tt.amount, got, tt.expected)
		}
	}
}

func TestRate(t *testing.T) {
	tests := map[float64]string{
		12:    "12%",
		10.5:  "10.5%",
		0:     "0%",
		11.25: "11.25%",
	}
	for in, expected := range tests {
		if got := Rate(in); got != expected {
			t.Errorf("Rate(%v) = %s, expected %s", in, got, expected)
		}
	}
}

func TestDays(t *testing.T) {
	if got := Days(30); got != "30 días" {
		t.Errorf("Days(30) = %s, expected 30 días", got)
	}
}
