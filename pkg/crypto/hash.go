// Package crypto wraps the hashing and recoverable-signature primitives
// used by helpeth. The heavy lifting is delegated to go-ethereum; this
// package only fixes the conventions (digest type, address derivation,
// recovery id encoding) the rest of the tool relies on.
package crypto

import (
	"crypto/ecdsa"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/expansejs/helpeth/pkg/types"
)

// Keccak256 computes the Keccak-256 hash of the concatenated inputs.
func Keccak256(data ...[]byte) types.Hash {
	var h types.Hash
	copy(h[:], ethcrypto.Keccak256(data...))
	return h
}

// HashMessage computes the personal-message digest of msg: the Keccak-256
// hash of the length-tagged signing prefix followed by the message bytes.
// The prefix makes a signed message unusable as a transaction signature.
func HashMessage(msg []byte) types.Hash {
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg))
	return Keccak256([]byte(prefix), msg)
}

// AddressFromPubKey derives the account address from a public key:
// the last 20 bytes of the Keccak-256 hash of the uncompressed key.
func AddressFromPubKey(pub *ecdsa.PublicKey) types.Address {
	var addr types.Address
	copy(addr[:], ethcrypto.PubkeyToAddress(*pub).Bytes())
	return addr
}
