package units

import (
	"fmt"
	"math/big"
	"strings"
)

// ShadyHex normalizes an ambiguous numeric string to 0x-prefixed hex.
//
// Three inputs are understood: an already-prefixed hex string (passed
// through unchanged), a quantity with a denomination name ("21 gwei",
// converted to wei first), and a bare base-10 integer. This is best-effort
// normalization, not validation: a string that happens to start with 0x
// is trusted as hex and never inspected further, so callers must not rely
// on it to catch malformed input.
func ShadyHex(s string) (string, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s, nil
	}

	if fields := strings.Fields(s); len(fields) == 2 {
		wei, err := ToWei(fields[0], fields[1])
		if err != nil {
			return "", err
		}
		return "0x" + wei.Text(16), nil
	}

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return "0x" + n.Text(16), nil
}

// ShadyBig normalizes like ShadyHex but returns the value as a big.Int.
func ShadyBig(s string) (*big.Int, error) {
	hexStr, err := ShadyHex(s)
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(strings.TrimPrefix(hexStr, "0x"), "0X"), 16)
	if !ok {
		if hexStr == "0x" || hexStr == "0X" {
			return new(big.Int), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return n, nil
}
