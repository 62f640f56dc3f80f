package tx

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/expansejs/helpeth/pkg/crypto"
	"github.com/expansejs/helpeth/pkg/types"
	"github.com/expansejs/helpeth/pkg/units"
)

// Assemble builds an unsigned Record from raw field strings. Every
// numeric field goes through the shady normalizer, so decimal, hex, and
// unit-suffixed inputs ("1 ether") are all accepted. The recipient is
// resolved by the caller; nil means contract creation.
func Assemble(nonce string, to *types.Address, value, data, gasLimit, gasPrice string) (*Record, error) {
	r := &Record{To: to}

	fields := []struct {
		name string
		dst  **big.Int
		src  string
	}{
		{"nonce", &r.Nonce, nonce},
		{"value", &r.Value, value},
		{"gas limit", &r.GasLimit, gasLimit},
		{"gas price", &r.GasPrice, gasPrice},
	}
	for _, f := range fields {
		n, err := units.ShadyBig(f.src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = n
	}

	payload, err := parseData(data)
	if err != nil {
		return nil, err
	}
	r.Data = payload
	return r, nil
}

// AssembleSigned rebuilds a signed Record directly from already-known
// components, for reassembling a transaction whose signature was produced
// out of band. No wire round trip is involved. The recovery id is
// normalized to 27/28 whichever legacy encoding it arrives in.
func AssembleSigned(nonce string, to *types.Address, value, data, gasLimit, gasPrice, v, rr, ss string) (*Record, error) {
	r, err := Assemble(nonce, to, value, data, gasLimit, gasPrice)
	if err != nil {
		return nil, err
	}

	vBig, err := units.ShadyBig(v)
	if err != nil {
		return nil, fmt.Errorf("v: %w", err)
	}
	if !vBig.IsUint64() {
		return nil, fmt.Errorf("v: out of range")
	}
	nv, err := crypto.NormalizeV(vBig.Uint64())
	if err != nil {
		return nil, err
	}

	rBig, err := units.ShadyBig(rr)
	if err != nil {
		return nil, fmt.Errorf("r: %w", err)
	}
	sBig, err := units.ShadyBig(ss)
	if err != nil {
		return nil, fmt.Errorf("s: %w", err)
	}

	r.V = new(big.Int).SetUint64(uint64(nv))
	r.R = rBig
	r.S = sBig
	return r, nil
}

// parseData decodes a normalized data payload. Odd-length hex (a bare
// big-int rendering) is left-padded with a zero nibble.
func parseData(data string) ([]byte, error) {
	if data == "" {
		return nil, nil
	}
	normalized, err := units.ShadyHex(data)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	hexStr := normalized[2:]
	if hexStr == "" {
		return nil, nil
	}
	if len(hexStr)%2 != 0 {
		hexStr = "0" + hexStr
	}
	payload, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	return payload, nil
}
