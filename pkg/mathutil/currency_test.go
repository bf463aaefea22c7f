package mathutil

import (
	"math"
	"testing"
)

func TestRoundUnit(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected int64
	}{
		{"Round up at midpoint", 2.5, 3},
		{"Round down below midpoint", 2.49, 2},
		{"No rounding needed", 7, 7},
		{"Large number", 287373.4472, 287373},
		{"Negative midpoint rounds toward positive", -2.5, -2},
		{"Negative below midpoint", -2.51, -3},
		{"Zero", 0, 0},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 0},
		{"Negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundUnit(tt.input)
			if result != tt.expected {
				t.Errorf("RoundUnit(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(10, 11, 1) {
		t.Errorf("expected 10 and 11 to be within tolerance 1")
	}
	if WithinTolerance(10, 11.5, 1) {
		t.Errorf("expected 10 and 11.5 to be outside tolerance 1")
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(1000, 4); math.Abs(got-40) > 1e-9 {
		t.Errorf("ApplyPercentage(1000, 4) = %v, expected 40", got)
	}
	if got := ApplyPercentage(1000, 0); got != 0 {
		t.Errorf("ApplyPercentage(1000, 0) = %v, expected 0", got)
	}
}

func TestPeriodicRateCompoundsBack(t *testing.T) {
	daily := PeriodicRate(12, 360)
	annual := CompoundGrowth(daily, 360)
	if math.Abs(annual-0.12) > 1e-12 {
		t.Errorf("compounding the daily rate over 360 days = %v, expected 0.12", annual)
	}
}

func TestCompoundGrowthZeroPeriods(t *testing.T) {
	if got := CompoundGrowth(0.01, 0); got != 0 {
		t.Errorf("CompoundGrowth(0.01, 0) = %v, expected 0", got)
	}
}
