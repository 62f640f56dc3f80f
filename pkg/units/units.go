// Package units converts between denominations of ether and normalizes
// heterogeneous numeric user input.
package units

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrUnknownUnit is returned for denomination names not in the unit table.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrBadNumber is returned for strings that cannot be parsed as a number.
var ErrBadNumber = errors.New("bad number")

// exponents maps denomination names to their power-of-ten offset from wei.
var exponents = map[string]int{
	"wei":        0,
	"kwei":       3,
	"babbage":    3,
	"femtoether": 3,
	"mwei":       6,
	"lovelace":   6,
	"picoether":  6,
	"gwei":       9,
	"shannon":    9,
	"nanoether":  9,
	"nano":       9,
	"szabo":      12,
	"microether": 12,
	"micro":      12,
	"finney":     15,
	"milliether": 15,
	"milli":      15,
	"ether":      18,
	"eth":        18,
	"kether":     21,
	"grand":      21,
	"mether":     24,
	"gether":     27,
	"tether":     30,
}

// Exponent returns the decimal exponent for a denomination name.
// Lookup is case-insensitive.
func Exponent(unit string) (int, error) {
	exp, ok := exponents[strings.ToLower(unit)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return exp, nil
}

// Convert scales a decimal quantity from one denomination to another.
// The conversion is exact: power-of-ten ratios only, arbitrary precision,
// no rounding. The result is a decimal string with trailing fractional
// zeros trimmed.
func Convert(value, from, to string) (string, error) {
	fromExp, err := Exponent(from)
	if err != nil {
		return "", err
	}
	toExp, err := Exponent(to)
	if err != nil {
		return "", err
	}

	n, scale, err := parseDecimal(value)
	if err != nil {
		return "", err
	}
	return formatScaled(n, fromExp-toExp-scale), nil
}

// ToWei converts a decimal quantity in the given denomination to an
// integral number of wei. Quantities that do not resolve to a whole
// number of wei are rejected.
func ToWei(value, unit string) (*big.Int, error) {
	exp, err := Exponent(unit)
	if err != nil {
		return nil, err
	}
	n, scale, err := parseDecimal(value)
	if err != nil {
		return nil, err
	}

	shift := exp - scale
	if shift >= 0 {
		return n.Mul(n, pow10(shift)), nil
	}
	q, r := new(big.Int).QuoRem(n, pow10(-shift), new(big.Int))
	if r.Sign() != 0 {
		return nil, fmt.Errorf("%w: %s %s is not a whole number of wei", ErrBadNumber, value, unit)
	}
	return q, nil
}

// FromWei renders an integral wei amount in the given denomination as an
// exact decimal string.
func FromWei(wei *big.Int, unit string) (string, error) {
	return Convert(wei.String(), "wei", unit)
}

// parseDecimal parses a signed decimal string into n such that the value
// equals n * 10^-scale.
func parseDecimal(s string) (n *big.Int, scale int, err error) {
	digits := s
	neg := false
	if strings.HasPrefix(digits, "-") {
		neg = true
		digits = digits[1:]
	} else if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(digits, ".")
	if intPart == "" && fracPart == "" {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	if hasFrac && fracPart == "" {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}

	n, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	if neg {
		n.Neg(n)
	}
	return n, len(fracPart), nil
}

// formatScaled renders n * 10^shift as an exact decimal string.
func formatScaled(n *big.Int, shift int) string {
	if shift >= 0 {
		return new(big.Int).Mul(n, pow10(shift)).String()
	}

	sign := ""
	abs := new(big.Int).Abs(n)
	if n.Sign() < 0 {
		sign = "-"
	}

	q, r := new(big.Int).QuoRem(abs, pow10(-shift), new(big.Int))
	frac := strings.TrimRight(fmt.Sprintf("%0*s", -shift, r.String()), "0")
	if frac == "" {
		return sign + q.String()
	}
	return sign + q.String() + "." + frac
}

func pow10(exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
