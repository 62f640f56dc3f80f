package types

import (
	"errors"
	"strings"
	"testing"
)

// Checksum test vectors from the EIP-55 specification.
var checksumVectors = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestAddress_Checksum(t *testing.T) {
	for _, want := range checksumVectors {
		t.Run(want, func(t *testing.T) {
			addr, err := HexToAddress(want)
			if err != nil {
				t.Fatalf("HexToAddress() error: %v", err)
			}
			if got := addr.Checksum(); got != want {
				t.Errorf("Checksum() = %s, want %s", got, want)
			}
		})
	}
}

func TestAddress_Checksum_Idempotent(t *testing.T) {
	addr, err := HexToAddress(strings.ToLower(checksumVectors[0]))
	if err != nil {
		t.Fatalf("HexToAddress() error: %v", err)
	}

	once := addr.Checksum()
	again, err := HexToAddress(once)
	if err != nil {
		t.Fatalf("HexToAddress(checksummed) error: %v", err)
	}
	if got := again.Checksum(); got != once {
		t.Errorf("Checksum() not idempotent: %s then %s", once, got)
	}
	if !strings.EqualFold(once, checksumVectors[0]) {
		t.Errorf("Checksum() = %s, not case-insensitively equal to %s", once, checksumVectors[0])
	}
}

func TestResolveAddress(t *testing.T) {
	lower := strings.ToLower(checksumVectors[0])

	tests := []struct {
		name       string
		input      string
		wantErr    bool
		checksumOK bool
	}{
		{"lowercase hex", lower, false, true},
		{"prefixless lowercase", lower[2:], false, true},
		{"checksummed", checksumVectors[0], false, true},
		{"uppercase hex", "0x" + strings.ToUpper(lower[2:]), false, true},
		{"bad checksum casing", "0x5Aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false, false},
		{"too short", "0x5aaeb6053f3e94c9", true, false},
		{"not hex", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bzzzz", true, false},
		{"empty", "", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, checksumOK, err := ResolveAddress(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveAddress(%q) expected error", tt.input)
				}
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("error = %v, want ErrInvalidAddress", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveAddress(%q) error: %v", tt.input, err)
			}
			if checksumOK != tt.checksumOK {
				t.Errorf("checksumOK = %v, want %v", checksumOK, tt.checksumOK)
			}
			if addr.Hex() != "0x"+strings.ToLower(strings.TrimPrefix(tt.input, "0x")) {
				t.Errorf("resolved %s from %q", addr.Hex(), tt.input)
			}
		})
	}
}

func TestResolveAddress_RepresentationsAgree(t *testing.T) {
	addr, _, err := ResolveAddress(checksumVectors[1])
	if err != nil {
		t.Fatalf("ResolveAddress() error: %v", err)
	}

	// All three representations must decode to the same bytes.
	fromHex, _, err := ResolveAddress(addr.Hex())
	if err != nil {
		t.Fatalf("resolve hex form: %v", err)
	}
	fromChecksum, _, err := ResolveAddress(addr.Checksum())
	if err != nil {
		t.Fatalf("resolve checksum form: %v", err)
	}
	fromICAP, _, err := ResolveAddress(addr.ICAP())
	if err != nil {
		t.Fatalf("resolve ICAP form: %v", err)
	}

	if fromHex != addr || fromChecksum != addr || fromICAP != addr {
		t.Errorf("representations disagree: %s %s %s", fromHex, fromChecksum, fromICAP)
	}
}

func TestAddress_IsZero(t *testing.T) {
	var zero Address
	if !zero.IsZero() {
		t.Error("zero-value Address should be zero")
	}

	nonZero := Address{0x01}
	if nonZero.IsZero() {
		t.Error("non-zero Address should not be zero")
	}
}

func TestAddress_JSONRoundtrip(t *testing.T) {
	addr, err := HexToAddress(checksumVectors[2])
	if err != nil {
		t.Fatalf("HexToAddress() error: %v", err)
	}

	data, err := addr.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	var decoded Address
	if err := decoded.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if decoded != addr {
		t.Errorf("roundtrip = %s, want %s", decoded.Hex(), addr.Hex())
	}
}
