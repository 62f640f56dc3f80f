// helpeth is a command-line tool for creating, inspecting, signing, and
// verifying account keys and transactions.
package main

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/expansejs/helpeth/config"
	"github.com/expansejs/helpeth/internal/log"
	"github.com/expansejs/helpeth/internal/wallet"
	"github.com/expansejs/helpeth/pkg/crypto"
	"github.com/expansejs/helpeth/pkg/tx"
	"github.com/expansejs/helpeth/pkg/types"
	"github.com/expansejs/helpeth/pkg/units"
)

// command is one dispatcher state: validate the fixed arguments, run a
// straight-line workflow, print the result. The table below is the closed
// set of commands; there is no cross-command state.
type command struct {
	args    string
	minArgs int
	help    string
	run     func(config.Options, []string)
}

var commands = map[string]command{
	"signMessage": {
		args: "<message>", minArgs: 1,
		help: "Sign a message with the loaded key",
		run:  cmdSignMessage,
	},
	"verifySig": {
		args: "<hash> <sig>", minArgs: 2,
		help: "Recover the signer of a detached 65-byte signature",
		run:  cmdVerifySig,
	},
	"verifySigParams": {
		args: "<hash> <r> <s> <v>", minArgs: 4,
		help: "Recover the signer from split signature parameters",
		run:  cmdVerifySigParams,
	},
	"createTx": {
		args: "<nonce> <to> <value> <data> <gasLimit> <gasPrice>", minArgs: 6,
		help: "Build and sign a transaction",
		run:  cmdCreateTx,
	},
	"assembleTx": {
		args: "<nonce> <to> <value> <data> <gasLimit> <gasPrice> <v> <r> <s>", minArgs: 9,
		help: "Rebuild a signed transaction from out-of-band signature parts",
		run:  cmdAssembleTx,
	},
	"parseTx": {
		args: "<tx>", minArgs: 1,
		help: "Decode a signed transaction and recover its sender",
		run:  cmdParseTx,
	},
	"keyGenerate": {
		args: "[print|save] [icapdirect]", minArgs: 0,
		help: "Generate a new key, printed or saved as a keystore",
		run:  cmdKeyGenerate,
	},
	"keyConvert": {
		args: "", minArgs: 0,
		help: "Write the loaded key as an encrypted keystore file",
		run:  cmdKeyConvert,
	},
	"keyDetails": {
		args: "", minArgs: 0,
		help: "Show details for the loaded key",
		run:  cmdKeyDetails,
	},
	"bip32Details": {
		args: "<path>", minArgs: 1,
		help: "Derive a child key from --mnemonic or an extended --private key",
		run:  cmdBip32Details,
	},
	"addressDetails": {
		args: "<address>", minArgs: 1,
		help: "Show all textual representations of an address",
		run:  cmdAddressDetails,
	},
	"unitConvert": {
		args: "<value> <from> <to>", minArgs: 3,
		help: "Convert between ether denominations",
		run:  cmdUnitConvert,
	},
}

func main() {
	opts, rest, err := config.ParseGlobal(os.Args[1:])
	if err != nil {
		fatal("%v", err)
	}
	log.Init(opts.LogLevel)

	if len(rest) == 0 {
		usage()
		os.Exit(1)
	}
	name := rest[0]
	args := rest[1:]

	if name == "help" || name == "--help" || name == "-h" {
		usage()
		return
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		usage()
		os.Exit(1)
	}
	if len(args) < cmd.minArgs {
		fatal("Usage: helpeth %s %s", name, cmd.args)
	}
	cmd.run(opts, args)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: helpeth [global flags] <command> [args]

Global flags:
  -p, --private <key>   Hex private key or Base58 extended private key
  -k, --keyfile <path>  Encrypted keystore file
  --mnemonic "<words>"  BIP-39 seed phrase
  --password <pw>       Keystore password
  --password-prompt     Ask for the password interactively (echo off)
  --show-private        Include private keys in printed output
  --log-level <lvl>     debug, info, warn, or error (default: info)

Commands:
  signMessage <message>                     Sign a message with the loaded key
  verifySig <hash> <sig>                    Recover the signer of a detached signature
  verifySigParams <hash> <r> <s> <v>        Recover the signer from split parameters
  createTx <nonce> <to> <value> <data> <gasLimit> <gasPrice>
                                            Build and sign a transaction
  assembleTx <nonce> <to> <value> <data> <gasLimit> <gasPrice> <v> <r> <s>
                                            Rebuild a transaction signed out of band
  parseTx <tx>                              Decode a signed transaction
  keyGenerate [print|save] [icapdirect]     Generate a new key
  keyConvert                                Save the loaded key as a keystore file
  keyDetails                                Show details for the loaded key
  bip32Details <path>                       Derive a child key at a BIP-32 path
  addressDetails <address>                  Show address representations
  unitConvert <value> <from> <to>           Convert between denominations

Values accept decimal, 0x hex, or "<amount> <unit>" (e.g. "1 ether").
`)
}

// ── message signing ─────────────────────────────────────────────────────

func cmdSignMessage(opts config.Options, args []string) {
	w := mustLoadWallet(opts)

	digest := crypto.HashMessage([]byte(args[0]))
	sig, err := crypto.Sign(digest, w.PrivateKey())
	if err != nil {
		fatal("sign message: %v", err)
	}

	fmt.Printf("Message hash: %s\n", digest)
	fmt.Printf("Signature:    %s\n", sig)
}

func cmdVerifySig(opts config.Options, args []string) {
	digest := mustHash(args[0])

	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimPrefix(args[1], "0x"), "0X"))
	if err != nil {
		fatal("invalid signature hex: %v", err)
	}
	sig, err := crypto.ParseSignature(raw)
	if err != nil {
		fatal("invalid signature: %v", err)
	}

	printRecovered(digest, sig)
}

func cmdVerifySigParams(opts config.Options, args []string) {
	digest := mustHash(args[0])

	r, err := units.ShadyBig(args[1])
	if err != nil {
		fatal("invalid r: %v", err)
	}
	s, err := units.ShadyBig(args[2])
	if err != nil {
		fatal("invalid s: %v", err)
	}
	v, err := units.ShadyBig(args[3])
	if err != nil || !v.IsUint64() {
		fatal("invalid v: %q", args[3])
	}

	sig, err := crypto.NewSignature(r, s, v.Uint64())
	if err != nil {
		fatal("invalid signature: %v", err)
	}

	printRecovered(digest, sig)
}

// printRecovered recovers and prints the signer, warning on a malleable
// s value. Recovery proceeds either way.
func printRecovered(digest types.Hash, sig crypto.Signature) {
	if sig.Malleable() {
		log.Tx.Warn().Msg("signature s value is above the curve half-order; invalid under replay-protection rules")
	}
	addr, err := crypto.RecoverAddress(digest, sig)
	if err != nil {
		fatal("recover signer: %v", err)
	}
	fmt.Printf("Signed by: %s\n", addr.Checksum())
}

// ── transactions ────────────────────────────────────────────────────────

func cmdCreateTx(opts config.Options, args []string) {
	record, err := tx.Assemble(args[0], resolveRecipient(args[1]), args[2], args[3], args[4], args[5])
	if err != nil {
		fatal("%v", err)
	}

	w := mustLoadWallet(opts)
	if err := record.Sign(w.PrivateKey()); err != nil {
		fatal("sign transaction: %v", err)
	}

	encoded, err := record.EncodeHex()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Signed transaction: %s\n", encoded)
	printTxDetails(record)
}

func cmdAssembleTx(opts config.Options, args []string) {
	record, err := tx.AssembleSigned(args[0], resolveRecipient(args[1]), args[2], args[3], args[4], args[5],
		args[6], args[7], args[8])
	if err != nil {
		fatal("%v", err)
	}

	encoded, err := record.EncodeHex()
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("Signed transaction: %s\n", encoded)
	printTxDetails(record)
}

func cmdParseTx(opts config.Options, args []string) {
	record, err := tx.DecodeHex(args[0])
	if err != nil {
		fatal("%v", err)
	}
	printTxDetails(record)
}

// resolveRecipient parses the "to" argument. Empty (or bare "0x") means
// contract creation.
func resolveRecipient(s string) *types.Address {
	if s == "" || s == "0x" {
		return nil
	}
	addr, checksumOK, err := types.ResolveAddress(s)
	if err != nil {
		fatal("%v", err)
	}
	if !checksumOK {
		log.Address.Warn().Str("address", s).Msg("address checksum does not match; proceeding anyway")
	}
	return &addr
}

func printTxDetails(record *tx.Record) {
	fmt.Printf("Nonce:     %s\n", record.Nonce)
	if record.To == nil {
		fmt.Printf("To:        (contract creation)\n")
	} else {
		fmt.Printf("To:        %s\n", record.To.Checksum())
	}
	fmt.Printf("Value:     %s\n", formatWei(record.Value, "ether"))
	fmt.Printf("Data:      0x%x\n", record.Data)
	fmt.Printf("Gas limit: %s\n", record.GasLimit)
	fmt.Printf("Gas price: %s\n", formatWei(record.GasPrice, "gwei"))

	if record.Signed() {
		sig, err := record.Signature()
		if err != nil {
			fatal("%v", err)
		}
		if sig.Malleable() {
			log.Tx.Warn().Msg("signature s value is above the curve half-order; invalid under replay-protection rules")
		}
		sender, err := record.Sender()
		if err != nil {
			fatal("recover sender: %v", err)
		}
		fmt.Printf("From:      %s\n", sender.Checksum())

		hash, err := record.Hash()
		if err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Tx hash:   %s\n", hash)
	}

	totalCost, minBalance := tx.MaxCost(record)
	fmt.Printf("Potential total transaction cost: %s\n", formatWei(totalCost, "ether"))
	fmt.Printf("Minimum required account balance: %s\n", formatWei(minBalance, "ether"))
}

// ── keys ────────────────────────────────────────────────────────────────

func cmdKeyGenerate(opts config.Options, args []string) {
	format := "print"
	icapDirect := false
	for _, arg := range args {
		switch arg {
		case "print", "save":
			format = arg
		case "icapdirect":
			icapDirect = true
		default:
			fatal("Usage: helpeth keyGenerate [print|save] [icapdirect]")
		}
	}

	var w *wallet.Wallet
	var err error
	if icapDirect {
		w, err = wallet.GenerateDirectICAP()
	} else {
		w, err = wallet.Generate()
	}
	if err != nil {
		fatal("generate key: %v", err)
	}

	switch format {
	case "print":
		// A freshly generated key is printed in full; there is no
		// other way to get hold of it.
		printKeyDetails(w, true)
	case "save":
		saveKeystore(opts, w)
		printKeyDetails(w, false)
	}
}

func cmdKeyConvert(opts config.Options, args []string) {
	w := mustLoadWallet(opts)
	saveKeystore(opts, w)
}

func cmdKeyDetails(opts config.Options, args []string) {
	w := mustLoadWallet(opts)
	printKeyDetails(w, opts.ShowPrivate)
}

func cmdBip32Details(opts config.Options, args []string) {
	path := args[0]

	var master *wallet.HDKey
	var err error
	switch {
	case opts.Mnemonic != "":
		var seed []byte
		seed, err = wallet.SeedFromMnemonic(opts.Mnemonic, "")
		if err == nil {
			master, err = wallet.NewMasterKey(seed)
		}
	case opts.PrivateKey != "":
		master, err = wallet.ParseExtendedKey(opts.PrivateKey)
	default:
		fatal("%v", wallet.ErrMissingKey)
	}
	if err != nil {
		fatal("%v", err)
	}

	child, err := master.DerivePath(path)
	if err != nil {
		fatal("%v", err)
	}

	fmt.Printf("Derivation path:      %s\n", path)
	fmt.Printf("Extended private key: %s\n", child.String())
	fmt.Printf("Extended public key:  %s\n", child.PublicString())

	w, err := child.Wallet()
	if err != nil {
		fatal("%v", err)
	}
	printKeyDetails(w, opts.ShowPrivate)
}

func cmdAddressDetails(opts config.Options, args []string) {
	addr, checksumOK, err := types.ResolveAddress(args[0])
	if err != nil {
		fatal("%v", err)
	}
	if !checksumOK {
		log.Address.Warn().Str("address", args[0]).Msg("address checksum does not match; proceeding anyway")
	}

	fmt.Printf("Address:          %s\n", addr.Hex())
	fmt.Printf("Checksum address: %s\n", addr.Checksum())
	fmt.Printf("ICAP:             %s\n", addr.ICAP())
}

func printKeyDetails(w *wallet.Wallet, showPrivate bool) {
	addr := w.Address()
	if showPrivate {
		fmt.Printf("Private key:      0x%x\n", w.PrivateKeyBytes())
	}
	fmt.Printf("Public key:       0x%x\n", w.PublicKeyBytes())
	fmt.Printf("Address:          %s\n", addr.Hex())
	fmt.Printf("Checksum address: %s\n", addr.Checksum())
	fmt.Printf("ICAP:             %s\n", addr.ICAP())
}

func saveKeystore(opts config.Options, w *wallet.Wallet) {
	password := mustPassword(opts)

	data, err := wallet.EncryptKeystore(w, password)
	if err != nil {
		fatal("%v", err)
	}
	name := wallet.KeystoreFileName(w.Address())
	if err := os.WriteFile(name, data, 0600); err != nil {
		fatal("write keystore: %v", err)
	}
	fmt.Printf("Keystore written: %s\n", name)
}

// ── units ───────────────────────────────────────────────────────────────

func cmdUnitConvert(opts config.Options, args []string) {
	result, err := units.Convert(args[0], args[1], args[2])
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("%s %s = %s %s\n", args[0], args[1], result, args[2])
}

// formatWei renders a wei amount with a human-scaled rendering alongside.
func formatWei(wei *big.Int, unit string) string {
	if wei == nil {
		wei = new(big.Int)
	}
	scaled, err := units.FromWei(wei, unit)
	if err != nil {
		return wei.String() + " wei"
	}
	return fmt.Sprintf("%s wei (%s %s)", wei, scaled, unit)
}

// ── wallet loading ──────────────────────────────────────────────────────

func mustLoadWallet(opts config.Options) *wallet.Wallet {
	switch n := opts.KeySources(); {
	case n == 0:
		fatal("%v", wallet.ErrMissingKey)
	case n > 1:
		fatal("multiple key sources given; use exactly one of --private, --keyfile, --mnemonic")
	}

	var w *wallet.Wallet
	var err error
	switch {
	case opts.KeyFile != "":
		var data []byte
		data, err = os.ReadFile(opts.KeyFile)
		if err != nil {
			fatal("read keyfile: %v", err)
		}
		w, err = wallet.DecryptKeystore(data, mustPassword(opts))
	case opts.Mnemonic != "":
		w, err = wallet.FromMnemonic(opts.Mnemonic, "", wallet.DefaultPath)
	default:
		w, err = wallet.FromKeyMaterial(opts.PrivateKey)
	}
	if err != nil {
		fatal("%v", err)
	}
	return w
}

func mustPassword(opts config.Options) []byte {
	if opts.Password != "" {
		return []byte(opts.Password)
	}
	if opts.PasswordPrompt {
		password, err := readPassword("Enter password: ")
		if err != nil {
			fatal("read password: %v", err)
		}
		return password
	}
	fatal("%v", wallet.ErrMissingPassword)
	return nil
}

func mustHash(s string) types.Hash {
	h, err := types.HexToHash(s)
	if err != nil {
		fatal("invalid hash: %v", err)
	}
	return h
}

// ── Password helper ─────────────────────────────────────────────────────

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr) // newline after hidden input
	if err != nil {
		return nil, err
	}
	return password, nil
}

// ── Error helper ────────────────────────────────────────────────────────

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
