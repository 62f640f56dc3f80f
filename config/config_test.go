package config

import (
	"testing"
)

func TestParseGlobal(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		want     Options
		wantRest []string
		wantErr  bool
	}{
		{
			name:     "no flags",
			args:     []string{"keyDetails"},
			want:     Options{LogLevel: "info"},
			wantRest: []string{"keyDetails"},
		},
		{
			name:     "short private flag",
			args:     []string{"-p", "deadbeef", "keyDetails"},
			want:     Options{PrivateKey: "deadbeef", LogLevel: "info"},
			wantRest: []string{"keyDetails"},
		},
		{
			name:     "long flag with equals",
			args:     []string{"--keyfile=wallet.json", "--password=hunter2", "keyConvert"},
			want:     Options{KeyFile: "wallet.json", Password: "hunter2", LogLevel: "info"},
			wantRest: []string{"keyConvert"},
		},
		{
			name:     "bool flags",
			args:     []string{"--password-prompt", "--show-private", "keyDetails"},
			want:     Options{PasswordPrompt: true, ShowPrivate: true, LogLevel: "info"},
			wantRest: []string{"keyDetails"},
		},
		{
			name:     "mnemonic",
			args:     []string{"--mnemonic", "abandon abandon about", "bip32Details", "m/0"},
			want:     Options{Mnemonic: "abandon abandon about", LogLevel: "info"},
			wantRest: []string{"bip32Details", "m/0"},
		},
		{
			name:     "stops at command",
			args:     []string{"unitConvert", "--private", "nope"},
			want:     Options{LogLevel: "info"},
			wantRest: []string{"unitConvert", "--private", "nope"},
		},
		{
			name:    "missing value",
			args:    []string{"--password"},
			wantErr: true,
		},
		{
			name:     "log level",
			args:     []string{"--log-level", "debug", "parseTx", "0x00"},
			want:     Options{LogLevel: "debug"},
			wantRest: []string{"parseTx", "0x00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, rest, err := ParseGlobal(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseGlobal() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGlobal() error: %v", err)
			}
			if opts != tt.want {
				t.Errorf("ParseGlobal() = %+v, want %+v", opts, tt.want)
			}
			if len(rest) != len(tt.wantRest) {
				t.Fatalf("rest = %v, want %v", rest, tt.wantRest)
			}
			for i := range rest {
				if rest[i] != tt.wantRest[i] {
					t.Errorf("rest[%d] = %q, want %q", i, rest[i], tt.wantRest[i])
				}
			}
		})
	}
}

func TestOptions_KeySources(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want int
	}{
		{"none", Options{}, 0},
		{"private only", Options{PrivateKey: "aa"}, 1},
		{"keyfile and mnemonic", Options{KeyFile: "f", Mnemonic: "m"}, 2},
		{"all three", Options{PrivateKey: "a", KeyFile: "f", Mnemonic: "m"}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.KeySources(); got != tt.want {
				t.Errorf("KeySources() = %d, want %d", got, tt.want)
			}
		})
	}
}
