package units

import (
	"errors"
	"testing"
)

func TestShadyHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"decimal", "100", "0x64"},
		{"hex passthrough", "0xff", "0xff"},
		{"hex passthrough uppercase", "0xAB", "0xAB"},
		{"zero", "0", "0x0"},
		{"unit suffix ether", "1 eth", "0xde0b6b3a7640000"},
		{"unit suffix gwei", "20 gwei", "0x4a817c800"},
		{"large decimal", "1000000000000000000", "0xde0b6b3a7640000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShadyHex(tt.input)
			if err != nil {
				t.Fatalf("ShadyHex(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ShadyHex(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShadyHex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"garbage", "hello", ErrBadNumber},
		{"empty", "", ErrBadNumber},
		{"unknown unit", "1 parsec", ErrUnknownUnit},
		{"fractional wei", "1.5 wei", ErrBadNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ShadyHex(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("ShadyHex(%q) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

func TestShadyBig(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"100", "100"},
		{"0xff", "255"},
		{"1 eth", "1000000000000000000"},
	}

	for _, tt := range tests {
		got, err := ShadyBig(tt.input)
		if err != nil {
			t.Fatalf("ShadyBig(%q) error: %v", tt.input, err)
		}
		if got.String() != tt.want {
			t.Errorf("ShadyBig(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
