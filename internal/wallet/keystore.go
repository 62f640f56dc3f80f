package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/expansejs/helpeth/pkg/types"
)

// DecryptKeystore loads a Wallet from an encrypted V3 keystore payload.
// Strict mode: the address recorded in the file must match the address
// derived from the decrypted key, otherwise ErrKeystoreMismatch.
func DecryptKeystore(data, password []byte) (*Wallet, error) {
	var meta struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse keystore: %w", err)
	}

	key, err := keystore.DecryptKey(data, string(password))
	if err != nil {
		return nil, fmt.Errorf("decrypt keystore: %w", err)
	}
	w := New(key.PrivateKey)

	if meta.Address != "" {
		recorded, err := types.HexToAddress(meta.Address)
		if err != nil {
			return nil, fmt.Errorf("parse keystore address: %w", err)
		}
		if recorded != w.Address() {
			return nil, fmt.Errorf("%w: file says %s, key yields %s",
				ErrKeystoreMismatch, recorded.Hex(), w.Address().Hex())
		}
	}
	return w, nil
}

// EncryptKeystore serializes the Wallet as an encrypted V3 keystore
// payload using the standard scrypt parameters.
func EncryptKeystore(w *Wallet, password []byte) ([]byte, error) {
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    common.BytesToAddress(w.Address().Bytes()),
		PrivateKey: w.PrivateKey(),
	}
	data, err := keystore.EncryptKey(key, string(password), keystore.StandardScryptN, keystore.StandardScryptP)
	if err != nil {
		return nil, fmt.Errorf("encrypt keystore: %w", err)
	}
	return data, nil
}

// KeystoreFileName returns the deterministic file name for a wallet's
// keystore, derived from its address.
func KeystoreFileName(addr types.Address) string {
	return "keystore-" + hex.EncodeToString(addr.Bytes()) + ".json"
}
