// Package wallet loads signing keys from raw key material, extended
// keys, encrypted keystores, and mnemonics.
package wallet

import (
	"crypto/ecdsa"
	"errors"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/expansejs/helpeth/pkg/crypto"
	"github.com/expansejs/helpeth/pkg/types"
)

// Sentinel errors for the key-loading paths. All are fatal: the inputs
// are operator-supplied, so a retry without correction cannot succeed.
var (
	ErrMissingKey       = errors.New("no key source given (use --private, --keyfile, or --mnemonic)")
	ErrMissingPassword  = errors.New("password required (use --password or --password-prompt)")
	ErrKeystoreMismatch = errors.New("keystore address does not match the decrypted key")
)

// Wallet owns a private key for the duration of one invocation. The
// public key and address are derived deterministically from it. A Wallet
// is immutable once loaded and is never persisted except through an
// explicit keystore save.
type Wallet struct {
	priv *ecdsa.PrivateKey
}

// New wraps an existing private key.
func New(priv *ecdsa.PrivateKey) *Wallet {
	return &Wallet{priv: priv}
}

// Generate creates a Wallet with a fresh random key.
func Generate() (*Wallet, error) {
	priv, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return New(priv), nil
}

// GenerateDirectICAP creates a Wallet whose address has a zero leading
// byte, so it fits the 30-digit direct ICAP form. Expected ~256 attempts.
func GenerateDirectICAP() (*Wallet, error) {
	for {
		w, err := Generate()
		if err != nil {
			return nil, err
		}
		if w.Address()[0] == 0 {
			return w, nil
		}
	}
}

// FromBytes builds a Wallet from a raw 32-byte private key.
func FromBytes(b []byte) (*Wallet, error) {
	priv, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}
	return New(priv), nil
}

// PrivateKey returns the underlying key for signing.
func (w *Wallet) PrivateKey() *ecdsa.PrivateKey {
	return w.priv
}

// PrivateKeyBytes returns the raw 32-byte private key.
func (w *Wallet) PrivateKeyBytes() []byte {
	return ethcrypto.FromECDSA(w.priv)
}

// PublicKeyBytes returns the 64-byte uncompressed public key without the
// 0x04 point-format prefix.
func (w *Wallet) PublicKeyBytes() []byte {
	return ethcrypto.FromECDSAPub(&w.priv.PublicKey)[1:]
}

// Address returns the account address derived from the public key.
func (w *Wallet) Address() types.Address {
	return crypto.AddressFromPubKey(&w.priv.PublicKey)
}
