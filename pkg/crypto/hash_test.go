package crypto

import (
	"fmt"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

func TestKeccak256(t *testing.T) {
	// Keccak-256 of the empty input, the classic reference digest.
	got := Keccak256(nil)
	want := "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got.String() != want {
		t.Errorf("Keccak256(nil) = %s, want %s", got, want)
	}
}

func TestKeccak256_Concatenates(t *testing.T) {
	joined := Keccak256([]byte("hel"), []byte("peth"))
	whole := Keccak256([]byte("helpeth"))
	if joined != whole {
		t.Errorf("Keccak256 over split input differs from whole input")
	}
}

func TestHashMessage(t *testing.T) {
	msg := []byte("hello")
	prefix := fmt.Sprintf("\x19Ethereum Signed Message:\n%d", len(msg))

	want := Keccak256(append([]byte(prefix), msg...))
	if got := HashMessage(msg); got != want {
		t.Errorf("HashMessage() = %s, want %s", got, want)
	}
	if HashMessage(msg) == Keccak256(msg) {
		t.Error("HashMessage should differ from the bare digest")
	}
}

func TestAddressFromPubKey(t *testing.T) {
	priv, err := ethcrypto.HexToECDSA(testKeyHex)
	if err != nil {
		t.Fatalf("HexToECDSA() error: %v", err)
	}
	if got := AddressFromPubKey(&priv.PublicKey); got.Hex() != testKeyAddr {
		t.Errorf("AddressFromPubKey() = %s, want %s", got.Hex(), testKeyAddr)
	}
}
