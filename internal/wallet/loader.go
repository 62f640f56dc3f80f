package wallet

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// keyMaterialParser is one attempt at interpreting raw key material.
// The format is not self-describing, so parsers are tried in order and
// the first success wins.
type keyMaterialParser struct {
	kind  string
	parse func(string) (*Wallet, error)
}

var keyMaterialParsers = []keyMaterialParser{
	{kind: "extended private key", parse: parseExtendedMaterial},
	{kind: "raw private key", parse: parseRawMaterial},
}

// FromKeyMaterial loads a Wallet from a -p/--private value, which may be
// either a Base58 extended private key or a 32-byte hex private key.
func FromKeyMaterial(s string) (*Wallet, error) {
	s = strings.TrimSpace(s)
	for _, p := range keyMaterialParsers {
		if w, err := p.parse(s); err == nil {
			return w, nil
		}
	}
	kinds := make([]string, len(keyMaterialParsers))
	for i, p := range keyMaterialParsers {
		kinds[i] = p.kind
	}
	return nil, fmt.Errorf("key material is none of: %s", strings.Join(kinds, ", "))
}

func parseExtendedMaterial(s string) (*Wallet, error) {
	hd, err := ParseExtendedKey(s)
	if err != nil {
		return nil, err
	}
	return hd.Wallet()
}

func parseRawMaterial(s string) (*Wallet, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("parse private key hex: %w", err)
	}
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	return FromBytes(b)
}
