// Package config holds the immutable per-invocation configuration.
package config

import (
	"fmt"
	"strings"
)

// Options is the run configuration, built once in main from the global
// flags and passed by value into each command handler. Nothing reads
// ambient global state.
type Options struct {
	PrivateKey     string // -p/--private: 32-byte hex or Base58 extended key
	KeyFile        string // -k/--keyfile: path to an encrypted V3 keystore
	Mnemonic       string // --mnemonic: BIP-39 seed phrase
	Password       string // --password: keystore password
	PasswordPrompt bool   // --password-prompt: ask interactively, echo off
	ShowPrivate    bool   // --show-private: include private keys in output
	LogLevel       string // --log-level: debug|info|warn|error
}

// KeySources counts how many mutually exclusive key sources are set.
func (o Options) KeySources() int {
	n := 0
	for _, s := range []string{o.PrivateKey, o.KeyFile, o.Mnemonic} {
		if s != "" {
			n++
		}
	}
	return n
}

// ParseGlobal scans global flags appearing before the command name and
// returns the remaining arguments (command plus its own args). Scanning
// stops at the first token that is not a known global flag.
func ParseGlobal(args []string) (Options, []string, error) {
	opts := Options{LogLevel: "info"}

	stringFlags := map[string]*string{
		"-p":          &opts.PrivateKey,
		"--private":   &opts.PrivateKey,
		"-k":          &opts.KeyFile,
		"--keyfile":   &opts.KeyFile,
		"--password":  &opts.Password,
		"--mnemonic":  &opts.Mnemonic,
		"--log-level": &opts.LogLevel,
	}
	boolFlags := map[string]*bool{
		"--password-prompt": &opts.PasswordPrompt,
		"--show-private":    &opts.ShowPrivate,
	}

	for len(args) > 0 {
		name, value, hasValue := strings.Cut(args[0], "=")

		if dst, ok := boolFlags[name]; ok && !hasValue {
			*dst = true
			args = args[1:]
			continue
		}
		dst, ok := stringFlags[name]
		if !ok {
			break
		}
		if hasValue {
			*dst = value
			args = args[1:]
			continue
		}
		if len(args) < 2 {
			return opts, nil, fmt.Errorf("flag %s needs a value", name)
		}
		*dst = args[1]
		args = args[2:]
	}
	return opts, args, nil
}
