package types

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 20

// ErrInvalidAddress is returned when an input is neither a 20-byte hex
// address nor a well-formed ICAP string.
var ErrInvalidAddress = errors.New("invalid address")

// Address represents a 160-bit account address.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns the 0x-prefixed lowercase hex encoding.
func (a Address) String() string {
	return a.Hex()
}

// Hex returns the 0x-prefixed lowercase hex encoding.
func (a Address) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// Checksum returns the mixed-case checksummed hex encoding (EIP-55).
// A hex digit is uppercased when the matching nibble of the Keccak-256
// digest of the lowercase hex string (taken in order, one nibble per
// character) is >= 8.
func (a Address) Checksum() string {
	lower := hex.EncodeToString(a[:])

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(lower))
	digest := h.Sum(nil)

	buf := []byte(lower)
	for i, c := range buf {
		if c < 'a' || c > 'f' {
			continue
		}
		nibble := digest[i/2]
		if i%2 == 0 {
			nibble >>= 4
		} else {
			nibble &= 0x0f
		}
		if nibble >= 8 {
			buf[i] = byte(c) - 'a' + 'A'
		}
	}
	return "0x" + string(buf)
}

// MarshalJSON encodes the address as a checksummed hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Checksum())
}

// UnmarshalJSON decodes a hex or ICAP string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, _, err := ResolveAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ResolveAddress parses a user-supplied address in any of the accepted
// textual forms: 0x-prefixed hex (lowercase or checksummed) or ICAP.
//
// For mixed-case hex input, checksumOK reports whether the casing matches
// the checksummed form. A mismatch is deliberately not an error: the
// address is still accepted and the caller decides whether to warn.
// Uniform-case input carries no checksum and reports checksumOK = true.
func ResolveAddress(s string) (addr Address, checksumOK bool, err error) {
	if s == "" {
		return Address{}, false, fmt.Errorf("%w: empty string", ErrInvalidAddress)
	}

	if isICAP(s) {
		addr, err = ParseICAP(s)
		return addr, true, err
	}

	hexStr := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if !isHex40(hexStr) {
		return Address{}, false, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	b, err := hex.DecodeString(hexStr)
	if err != nil {
		return Address{}, false, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(addr[:], b)

	checksumOK = true
	lower := strings.ToLower(hexStr)
	upper := strings.ToUpper(hexStr)
	if hexStr != lower && hexStr != upper {
		checksumOK = "0x"+hexStr == addr.Checksum()
	}
	return addr, checksumOK, nil
}

// HexToAddress converts a hex string (with or without 0x prefix) to an
// Address. Casing is ignored; for user-facing input use ResolveAddress.
func HexToAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// isHex40 returns true if s is exactly 40 hex characters.
func isHex40(s string) bool {
	if len(s) != 40 {
		return false
	}
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
