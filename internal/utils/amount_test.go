package utils

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *float64
	}{
		{name: "thousands suffix", input: "250k", want: f(250000)},
		{name: "millions suffix", input: "1.2m", want: f(1200000)},
		{name: "mill suffix", input: "2mill", want: f(2000000)},
		{name: "uppercase suffix", input: "800K", want: f(800000)},
		{name: "bare number", input: "500000", want: f(500000)},
		{name: "comma separated", input: "1,250,000", want: f(1250000)},
		{name: "internal spaces", input: "1 200 000", want: f(1200000)},
		{name: "decimal", input: "2.5", want: f(2.5)},
		{name: "not numeric", input: "abc", want: nil},
		{name: "suffix only", input: "k", want: nil},
		{name: "negative rejected", input: "-300k", want: nil},
		{name: "empty", input: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("ParseAmount(%q) = %v, want nil", tt.input, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParseAmount(%q) = nil, want %v", tt.input, *tt.want)
			}
			if *got != *tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestAcresToSquareFeet(t *testing.T) {
	if got := AcresToSquareFeet(1); got != 43560 {
		t.Errorf("AcresToSquareFeet(1) = %v, want 43560", got)
	}
	if got := AcresToSquareFeet(2); got != 87120 {
		t.Errorf("AcresToSquareFeet(2) = %v, want 87120", got)
	}
	if got := AcresToSquareFeet(0.5); got != 21780 {
		t.Errorf("AcresToSquareFeet(0.5) = %v, want 21780", got)
	}
}

func f(v float64) *float64 {
	return &v
}
