package crypto

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/expansejs/helpeth/pkg/types"
)

// SignatureSize is the length of a recoverable signature: r(32) s(32) v(1).
const SignatureSize = 65

// Signature is a recoverable ECDSA signature over secp256k1, stored as
// r || s || v with v held in the canonical 27/28 form. Legacy 0/1
// recovery ids are normalized at construction; serialization contexts
// that need the 0/1 form use RecoveryID.
type Signature [SignatureSize]byte

// Sign produces a recoverable signature over a 32-byte digest.
func Sign(digest types.Hash, priv *ecdsa.PrivateKey) (Signature, error) {
	raw, err := ethcrypto.Sign(digest[:], priv)
	if err != nil {
		return Signature{}, fmt.Errorf("sign digest: %w", err)
	}
	var sig Signature
	copy(sig[:], raw)
	sig[64] += 27
	return sig, nil
}

// RecoverAddress recovers the signer's address from a digest and a
// detached signature.
func RecoverAddress(digest types.Hash, sig Signature) (types.Address, error) {
	raw := make([]byte, SignatureSize)
	copy(raw, sig[:])
	raw[64] = sig.RecoveryID()

	pub, err := ethcrypto.SigToPub(digest[:], raw)
	if err != nil {
		return types.Address{}, fmt.Errorf("recover public key: %w", err)
	}
	return AddressFromPubKey(pub), nil
}

// ParseSignature parses a 65-byte hex or raw signature, normalizing the
// recovery id to 27/28.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) != SignatureSize {
		return Signature{}, fmt.Errorf("signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	var sig Signature
	copy(sig[:], b)
	v, err := NormalizeV(uint64(b[64]))
	if err != nil {
		return Signature{}, err
	}
	sig[64] = v
	return sig, nil
}

// NewSignature builds a Signature from split (r, s, v) parameters,
// normalizing the recovery id to 27/28.
func NewSignature(r, s *big.Int, v uint64) (Signature, error) {
	if r.Sign() < 0 || s.Sign() < 0 || r.BitLen() > 256 || s.BitLen() > 256 {
		return Signature{}, fmt.Errorf("signature parameters out of range")
	}
	var sig Signature
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:64])
	nv, err := NormalizeV(v)
	if err != nil {
		return Signature{}, err
	}
	sig[64] = nv
	return sig, nil
}

// NormalizeV converts a recovery id from either legacy encoding (0/1 or
// 27/28) to the canonical 27/28 form.
func NormalizeV(v uint64) (byte, error) {
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return 0, fmt.Errorf("invalid recovery id %d", v)
	}
	return byte(v), nil
}

// R returns the r component.
func (sig Signature) R() *big.Int {
	return new(big.Int).SetBytes(sig[:32])
}

// S returns the s component.
func (sig Signature) S() *big.Int {
	return new(big.Int).SetBytes(sig[32:64])
}

// V returns the canonical 27/28 recovery id.
func (sig Signature) V() byte {
	return sig[64]
}

// RecoveryID returns the 0/1 form of the recovery id for serialization
// contexts that require the legacy encoding.
func (sig Signature) RecoveryID() byte {
	return sig[64] - 27
}

// Malleable reports whether s lies above the curve half-order
// (0x7fffffffffffffffffffffffffffffff5d576e7357a4501ddfe92f46681b20a0).
// Such signatures have a second valid counterpart for the same digest and
// are rejected by post-fork replay-protection rules; recovery still works.
func (sig Signature) Malleable() bool {
	var b [32]byte
	copy(b[:], sig[32:64])
	var s secp256k1.ModNScalar
	s.SetBytes(&b)
	return s.IsOverHalfOrder()
}

// String returns the 0x-prefixed hex encoding of r || s || v.
func (sig Signature) String() string {
	return "0x" + hex.EncodeToString(sig[:])
}
