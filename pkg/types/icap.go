package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrIndirectAddress is returned for the indirect ICAP sub-variant, which
// names an asset/institution/client triple instead of an address and would
// need an external registry lookup to resolve.
var ErrIndirectAddress = errors.New("indirect ICAP address requires a registry lookup")

// ICAP body lengths. Direct bodies hold the address as 30 base-36 digits
// (fits every address below 2^152 and then some), basic bodies use 31
// digits and cover the full 160-bit range at the cost of IBAN length
// compliance. Indirect bodies are asset(3) + institution(4) + client(9).
const (
	icapDirectLen   = 34
	icapBasicLen    = 35
	icapIndirectLen = 20
)

// ICAP returns the base-36 ICAP encoding of the address (ISO 13616 style,
// country code "XE"). Addresses that fit 30 digits get the direct form,
// the rest the 31-digit basic form.
func (a Address) ICAP() string {
	body := strings.ToUpper(new(big.Int).SetBytes(a[:]).Text(36))
	width := 31
	if len(body) <= 30 {
		width = 30
	}
	body = strings.Repeat("0", width-len(body)) + body

	check := 98 - icapMod97(body+"XE00")
	return fmt.Sprintf("XE%02d%s", check, body)
}

// ParseICAP decodes an ICAP string into an Address. The indirect
// sub-variant is rejected with ErrIndirectAddress.
func ParseICAP(s string) (Address, error) {
	s = strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if !strings.HasPrefix(s, "XE") {
		return Address{}, fmt.Errorf("%w: missing XE country code", ErrInvalidAddress)
	}
	switch len(s) {
	case icapDirectLen, icapBasicLen, icapIndirectLen:
	default:
		return Address{}, fmt.Errorf("%w: bad ICAP length %d", ErrInvalidAddress, len(s))
	}

	// ISO 13616: move the country code and check digits to the end,
	// expand letters to two-digit numbers, and the result must be
	// congruent to 1 mod 97.
	if icapMod97(s[4:]+s[:4]) != 1 {
		return Address{}, fmt.Errorf("%w: bad ICAP checksum", ErrInvalidAddress)
	}

	if len(s) == icapIndirectLen {
		return Address{}, fmt.Errorf("%w: %q", ErrIndirectAddress, s)
	}

	n, ok := new(big.Int).SetString(s[4:], 36)
	if !ok {
		return Address{}, fmt.Errorf("%w: bad ICAP body", ErrInvalidAddress)
	}
	b := n.Bytes()
	if len(b) > AddressSize {
		return Address{}, fmt.Errorf("%w: ICAP body overflows %d bytes", ErrInvalidAddress, AddressSize)
	}

	var a Address
	copy(a[AddressSize-len(b):], b)
	return a, nil
}

// isICAP reports whether s looks like an ICAP string: XE country code and
// one of the three known lengths. Resolution decides validity.
func isICAP(s string) bool {
	s = strings.ReplaceAll(s, " ", "")
	if len(s) != icapDirectLen && len(s) != icapBasicLen && len(s) != icapIndirectLen {
		return false
	}
	return strings.EqualFold(s[:2], "XE")
}

// icapMod97 computes the ISO 7064 mod-97 remainder of an alphanumeric
// string, mapping A-Z to 10-35. Returns -1 for characters outside [0-9A-Z].
func icapMod97(s string) int {
	rem := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			rem = (rem*100 + int(c-'A'+10)) % 97
		default:
			return -1
		}
	}
	return rem
}
