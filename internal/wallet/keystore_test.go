package wallet

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestKeystoreRoundtrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt-heavy test in short mode")
	}

	w := testWallet(t)
	password := []byte("correct horse battery staple")

	data, err := EncryptKeystore(w, password)
	if err != nil {
		t.Fatalf("EncryptKeystore() error: %v", err)
	}

	// The payload must be a V3 keystore recording the wallet's address.
	var meta struct {
		Address string `json:"address"`
		Version int    `json:"version"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		t.Fatalf("keystore payload is not JSON: %v", err)
	}
	if meta.Version != 3 {
		t.Errorf("keystore version = %d, want 3", meta.Version)
	}
	if !strings.EqualFold(meta.Address, testKeyAddr[2:]) {
		t.Errorf("keystore address = %s, want %s", meta.Address, testKeyAddr[2:])
	}

	loaded, err := DecryptKeystore(data, password)
	if err != nil {
		t.Fatalf("DecryptKeystore() error: %v", err)
	}
	if loaded.Address() != w.Address() {
		t.Errorf("decrypted address = %s, want %s", loaded.Address().Hex(), w.Address().Hex())
	}
}

func TestDecryptKeystore_WrongPassword(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt-heavy test in short mode")
	}

	w := testWallet(t)
	data, err := EncryptKeystore(w, []byte("right"))
	if err != nil {
		t.Fatalf("EncryptKeystore() error: %v", err)
	}
	if _, err := DecryptKeystore(data, []byte("wrong")); err == nil {
		t.Error("DecryptKeystore() with wrong password expected error")
	}
}

func TestDecryptKeystore_AddressMismatch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping scrypt-heavy test in short mode")
	}

	w := testWallet(t)
	password := []byte("pw")
	data, err := EncryptKeystore(w, password)
	if err != nil {
		t.Fatalf("EncryptKeystore() error: %v", err)
	}

	// Tamper with the recorded address. The ciphertext MAC does not
	// cover it, so only the strict mismatch check can catch this.
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal keystore: %v", err)
	}
	doc["address"] = json.RawMessage(`"00112233445566778899aabbccddeeff00112233"`)
	tampered, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal tampered keystore: %v", err)
	}

	if _, err := DecryptKeystore(tampered, password); !errors.Is(err, ErrKeystoreMismatch) {
		t.Errorf("DecryptKeystore(tampered) error = %v, want ErrKeystoreMismatch", err)
	}
}

func TestDecryptKeystore_NotJSON(t *testing.T) {
	if _, err := DecryptKeystore([]byte("not json"), []byte("pw")); err == nil {
		t.Error("DecryptKeystore(garbage) expected error")
	}
}

func TestKeystoreFileName(t *testing.T) {
	w := testWallet(t)
	want := "keystore-" + testKeyAddr[2:] + ".json"
	if got := KeystoreFileName(w.Address()); got != want {
		t.Errorf("KeystoreFileName() = %s, want %s", got, want)
	}
}
