package utils

import (
	"math"
	"testing"
)

func TestFormatINR(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 0, want: "₹0"},
		{input: 999, want: "₹999"},
		{input: 1000, want: "₹1,000"},
		{input: 100000, want: "₹1,00,000"},
		{input: 1200000, want: "₹12,00,000"},
		{input: 2323390.76, want: "₹23,23,390.76"},
		{input: 12500000, want: "₹1,25,00,000"},
		{input: 9375.5, want: "₹9,375.50"},
		{input: -50000, want: "-₹50,000"},
		{input: -0.004, want: "₹0"},
		{input: -0.005, want: "-₹0.01"},
		{input: math.Inf(1), want: "₹+Inf"},
		{input: 1e19, want: "₹1,00,00,00,00,00,00,00,00,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatINR(tt.input); got != tt.want {
				t.Errorf("FormatINR(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIndianLabel(t *testing.T) {
	tests := []struct {
		input float64
		want  string
	}{
		{input: 500, want: "500"},
		{input: 1500, want: "1.5K"},
		{input: 5000, want: "5K"},
		{input: 100000, want: "1 L"},
		{input: 2323390.76, want: "23.2 L"},
		{input: 10000000, want: "1 Cr"},
		{input: 25000000, want: "2.5 Cr"},
		{input: -100000, want: "1 L"},
		{input: 1e21, want: "100000000000000 Cr"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := IndianLabel(tt.input); got != tt.want {
				t.Errorf("IndianLabel(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatINRWithLabel(t *testing.T) {
	if got := FormatINRWithLabel(100000); got != "₹1,00,000 (1 L)" {
		t.Errorf("FormatINRWithLabel() = %q", got)
	}
}
