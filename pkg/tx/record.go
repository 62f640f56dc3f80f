// Package tx assembles, signs, and reconstructs account-model
// transaction records.
package tx

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/expansejs/helpeth/pkg/crypto"
	"github.com/expansejs/helpeth/pkg/types"
)

// Record is a legacy (homestead, no chain id) transaction. All numeric
// fields are arbitrary precision. A record is unsigned until the (v, r, s)
// triple is attached; "signed" is a derived state, not a separate type,
// and Sign is the only mutation path after construction.
type Record struct {
	Nonce    *big.Int
	GasPrice *big.Int
	GasLimit *big.Int
	To       *types.Address // nil for contract creation
	Value    *big.Int
	Data     []byte

	// Signature triple, nil until signed. V carries the canonical
	// 27/28 recovery id.
	V *big.Int
	R *big.Int
	S *big.Int
}

// rlpUnsigned is the 6-field wire list hashed for signing.
type rlpUnsigned struct {
	Nonce    *big.Int
	GasPrice *big.Int
	GasLimit *big.Int
	To       []byte
	Value    *big.Int
	Data     []byte
}

// rlpSigned is the full 9-field wire list.
type rlpSigned struct {
	Nonce    *big.Int
	GasPrice *big.Int
	GasLimit *big.Int
	To       []byte
	Value    *big.Int
	Data     []byte
	V        *big.Int
	R        *big.Int
	S        *big.Int
}

// Signed reports whether a signature triple is attached.
func (r *Record) Signed() bool {
	return r.V != nil && r.R != nil && r.S != nil
}

func (r *Record) recipientBytes() []byte {
	if r.To == nil {
		return nil
	}
	return r.To.Bytes()
}

// SigningHash returns the Keccak-256 digest of the 6-field wire encoding,
// the value the signature commits to.
func (r *Record) SigningHash() (types.Hash, error) {
	raw, err := rlp.EncodeToBytes(&rlpUnsigned{
		Nonce:    orZero(r.Nonce),
		GasPrice: orZero(r.GasPrice),
		GasLimit: orZero(r.GasLimit),
		To:       r.recipientBytes(),
		Value:    orZero(r.Value),
		Data:     r.Data,
	})
	if err != nil {
		return types.Hash{}, fmt.Errorf("encode for signing: %w", err)
	}
	return crypto.Keccak256(raw), nil
}

// Encode returns the full wire encoding of a signed record.
func (r *Record) Encode() ([]byte, error) {
	if !r.Signed() {
		return nil, fmt.Errorf("cannot encode unsigned transaction")
	}
	raw, err := rlp.EncodeToBytes(&rlpSigned{
		Nonce:    orZero(r.Nonce),
		GasPrice: orZero(r.GasPrice),
		GasLimit: orZero(r.GasLimit),
		To:       r.recipientBytes(),
		Value:    orZero(r.Value),
		Data:     r.Data,
		V:        r.V,
		R:        r.R,
		S:        r.S,
	})
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}
	return raw, nil
}

// EncodeHex returns the 0x-prefixed hex of the wire encoding.
func (r *Record) EncodeHex() (string, error) {
	raw, err := r.Encode()
	if err != nil {
		return "", err
	}
	return "0x" + hex.EncodeToString(raw), nil
}

// Hash returns the Keccak-256 digest of the full wire encoding.
func (r *Record) Hash() (types.Hash, error) {
	raw, err := r.Encode()
	if err != nil {
		return types.Hash{}, err
	}
	return crypto.Keccak256(raw), nil
}

// Sign attaches a signature over the record's signing hash. This is the
// only way a record changes after construction.
func (r *Record) Sign(priv *ecdsa.PrivateKey) error {
	h, err := r.SigningHash()
	if err != nil {
		return err
	}
	sig, err := crypto.Sign(h, priv)
	if err != nil {
		return err
	}
	r.V = big.NewInt(int64(sig.V()))
	r.R = sig.R()
	r.S = sig.S()
	return nil
}

// Signature returns the attached signature triple in compact form.
func (r *Record) Signature() (crypto.Signature, error) {
	if !r.Signed() {
		return crypto.Signature{}, fmt.Errorf("transaction is unsigned")
	}
	if !r.V.IsUint64() {
		return crypto.Signature{}, fmt.Errorf("invalid recovery id %s", r.V)
	}
	return crypto.NewSignature(r.R, r.S, r.V.Uint64())
}

// Sender recovers the signer's address from the attached signature and
// the signing hash. It does not need the signer's key.
func (r *Record) Sender() (types.Address, error) {
	sig, err := r.Signature()
	if err != nil {
		return types.Address{}, err
	}
	h, err := r.SigningHash()
	if err != nil {
		return types.Address{}, err
	}
	return crypto.RecoverAddress(h, sig)
}

// Decode reconstructs a Record from a wire-encoded signed payload.
func Decode(raw []byte) (*Record, error) {
	var dec rlpSigned
	if err := rlp.DecodeBytes(raw, &dec); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}

	r := &Record{
		Nonce:    dec.Nonce,
		GasPrice: dec.GasPrice,
		GasLimit: dec.GasLimit,
		Value:    dec.Value,
		Data:     dec.Data,
		V:        dec.V,
		R:        dec.R,
		S:        dec.S,
	}
	switch len(dec.To) {
	case 0:
	case types.AddressSize:
		var to types.Address
		copy(to[:], dec.To)
		r.To = &to
	default:
		return nil, fmt.Errorf("decode transaction: recipient must be %d bytes, got %d", types.AddressSize, len(dec.To))
	}
	return r, nil
}

// DecodeHex reconstructs a Record from a 0x-prefixed hex payload.
func DecodeHex(s string) (*Record, error) {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode transaction hex: %w", err)
	}
	return Decode(raw)
}

func orZero(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return n
}
