package wallet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// BIP-44 derivation constants for ether accounts.
// Full path: m/44'/60'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = bip32.FirstHardenedChild + 44

	// CoinTypeEther is the SLIP-44 registered coin type for ether (hardened).
	CoinTypeEther = bip32.FirstHardenedChild + 60
)

// DefaultPath is the derivation used when a mnemonic is supplied without
// an explicit path.
const DefaultPath = "m/44'/60'/0'/0/0"

// HDKey is an extended key (BIP-32): a key plus the chain-code metadata
// needed for hierarchical child derivation. Dropping the chain code
// collapses it to a plain Wallet.
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master extended key from a 64-byte seed.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// ParseExtendedKey parses a Base58 serialized extended key (xprv/xpub).
func ParseExtendedKey(s string) (*HDKey, error) {
	key, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("parse extended key: %w", err)
	}
	return &HDKey{key: key}, nil
}

// DeriveChild derives the child key at the given index. For hardened
// derivation, add bip32.FirstHardenedChild to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives the key at a textual path like "m/44'/60'/0'/0/0".
func (k *HDKey) DerivePath(path string) (*HDKey, error) {
	indices, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	current := k
	for _, idx := range indices {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// ParsePath parses a BIP-32 path string into child indices. An optional
// leading "m" names the master key; an apostrophe (or h/H) suffix marks a
// hardened component.
func ParsePath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) > 0 && (parts[0] == "m" || parts[0] == "M") {
		parts = parts[1:]
	}

	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("invalid derivation path %q", path)
		}
		hardened := false
		switch part[len(part)-1] {
		case '\'', 'h', 'H':
			hardened = true
			part = part[:len(part)-1]
		}
		idx, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path component %q: %w", part, err)
		}
		if idx >= uint64(bip32.FirstHardenedChild) {
			return nil, fmt.Errorf("path component %d out of range", idx)
		}
		if hardened {
			idx += uint64(bip32.FirstHardenedChild)
		}
		indices = append(indices, uint32(idx))
	}
	return indices, nil
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// PrivateKeyBytes returns the raw 32-byte private key, or nil for a
// public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	// bip32 Key.Key is 33 bytes with a leading 0x00 for private keys.
	raw := k.key.Key
	if len(raw) == 33 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// String returns the Base58 serialization (xprv for private keys,
// xpub otherwise).
func (k *HDKey) String() string {
	return k.key.B58Serialize()
}

// PublicString returns the Base58 serialization of the public half.
func (k *HDKey) PublicString() string {
	return k.key.PublicKey().B58Serialize()
}

// Neuter returns a public-only copy.
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}

// Wallet collapses the extended key to a plain Wallet by dropping the
// chain code. Fails for public-only keys.
func (k *HDKey) Wallet() (*Wallet, error) {
	priv := k.PrivateKeyBytes()
	if priv == nil {
		return nil, fmt.Errorf("cannot build a wallet from a public-only key")
	}
	return FromBytes(priv)
}
