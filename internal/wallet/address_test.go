package wallet

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestAddressFromMnemonic_KnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		want     string
	}{
		{
			name:     "abandon about",
			mnemonic: abandonAbout,
			want:     "0x9858effd232b4033e47d90003d41ec34ecaeda94",
		},
		{
			name:     "stove",
			mnemonic: stovePhrase,
			want:     "0xa2f9049218bf0a064cb5de9f47022969c640e2d7",
		},
		{
			name:     "stove, other checksum-valid last word",
			mnemonic: "stove relax design safe deliver rigid height swamp know roof pitch accuse",
			want:     "0xb441d0bf5d7f2da31d2ed1de00c87a9c83c2f191",
		},
		{
			name:     "12 words",
			mnemonic: "absurd avoid scissors anxiety gather lottery category door army half long camera",
			want:     "0xefa783d3b4aa566564b5138b64ecf0f3db9a341e",
		},
		{
			name:     "15 words",
			mnemonic: "absurd avoid scissors anxiety gather lottery category door army half long cage bachelor another fatal",
			want:     "0x4b4228fbc308e6a94cb135c81b343c8e76230e11",
		},
		{
			name:     "18 words",
			mnemonic: "absurd avoid scissors anxiety gather lottery category door army half long cage bachelor another expect people blade setup",
			want:     "0x4329def918f3b63260c8165763368dbfb1286a79",
		},
		{
			name:     "21 words",
			mnemonic: "absurd avoid scissors anxiety gather lottery category door army half long cage bachelor another expect people blade school educate curtain shop",
			want:     "0x215cad3ee33acd88d2dc6ec25ad48e6a68542046",
		},
		{
			name:     "24 words",
			mnemonic: "absurd avoid scissors anxiety gather lottery category door army half long cage bachelor another expect people blade school educate curtain scrub monitor lady beyond",
			want:     "0x50b240678777451befd67b7e8c3b4366482ba8f9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddressFromMnemonic(tt.mnemonic)
			if err != nil {
				t.Fatalf("AddressFromMnemonic() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("address = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveAddress_Passphrase(t *testing.T) {
	tests := []struct {
		mnemonic   string
		passphrase string
		want       string
	}{
		{abandonAbout, "TREZOR", "0x9c32f71d4db8fb9e1a58b0a80df79935e7256fa6"},
		{stovePhrase, "correct horse", "0xb4f7234665ac42e7e406ff6b4138dae6b77f95ee"},
		{stovePhrase, "\u00e9", "0x4f620bfb57e582de46f20e8107b4ee602b6f6537"},
		{stovePhrase, "e\u0301", "0x4f620bfb57e582de46f20e8107b4ee602b6f6537"},
		{stovePhrase, "", "0xa2f9049218bf0a064cb5de9f47022969c640e2d7"},
	}

	for _, tt := range tests {
		addr, err := DeriveAddress(tt.mnemonic, tt.passphrase)
		if err != nil {
			t.Fatalf("DeriveAddress(%q) error: %v", tt.passphrase, err)
		}
		if addr.String() != tt.want {
			t.Errorf("DeriveAddress(%q) = %s, want %s", tt.passphrase, addr, tt.want)
		}
	}
}

func TestAddressFromMnemonic_Format(t *testing.T) {
	got, err := AddressFromMnemonic(stovePhrase)
	if err != nil {
		t.Fatalf("AddressFromMnemonic() error: %v", err)
	}
	if len(got) != 42 {
		t.Errorf("length = %d, want 42", len(got))
	}
	if !strings.HasPrefix(got, "0x") {
		t.Errorf("address %s should start with 0x", got)
	}
	for _, c := range got[2:] {
		if !strings.ContainsRune("0123456789abcdef", c) {
			t.Fatalf("address %s contains non-lowercase-hex %q", got, c)
		}
	}
}

func TestAddressFromMnemonic_Deterministic(t *testing.T) {
	first, err := AddressFromMnemonic(stovePhrase)
	if err != nil {
		t.Fatalf("AddressFromMnemonic() error: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := AddressFromMnemonic(stovePhrase)
		if err != nil {
			t.Fatalf("AddressFromMnemonic() error: %v", err)
		}
		if got != first {
			t.Fatalf("call %d = %s, want %s", i, got, first)
		}
	}
}

func TestAddressFromMnemonic_WhitespaceAndCase(t *testing.T) {
	want, err := AddressFromMnemonic(stovePhrase)
	if err != nil {
		t.Fatalf("AddressFromMnemonic() error: %v", err)
	}
	inputs := []string{
		"\n stove relax design safe deliver rigid height swamp know roof pitch innocent \t",
		"stove   relax design safe deliver rigid height swamp know roof pitch innocent",
		"Stove Relax Design Safe Deliver Rigid Height Swamp Know Roof Pitch Innocent",
	}
	for _, in := range inputs {
		got, err := AddressFromMnemonic(in)
		if err != nil {
			t.Fatalf("AddressFromMnemonic(%q) error: %v", in, err)
		}
		if got != want {
			t.Errorf("AddressFromMnemonic(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestAddressFromMnemonic_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		kind     error
	}{
		{"empty", "", ErrInvalidWordCount},
		{"11 words", "stove relax design safe deliver rigid height swamp know roof pitch", ErrInvalidWordCount},
		{"13 words", stovePhrase + " stove", ErrInvalidWordCount},
		{"unknown word", "stove relax design safe deliver rigid height swamp know roof pitch zzzzz", ErrInvalidWord},
		{"checksum", "stove relax design safe deliver rigid height swamp know roof pitch abandon", ErrInvalidPhrase},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddressFromMnemonic(tt.mnemonic)
			if !errors.Is(err, tt.kind) {
				t.Fatalf("AddressFromMnemonic() error = %v, want %v", err, tt.kind)
			}
			if got != "" {
				t.Errorf("address = %q, want empty on error", got)
			}
		})
	}
}

func TestAddressFromMnemonic_SingleWordChange(t *testing.T) {
	base, err := AddressFromMnemonic(stovePhrase)
	if err != nil {
		t.Fatalf("AddressFromMnemonic() error: %v", err)
	}
	words := strings.Fields(stovePhrase)
	for i := range words {
		changed := make([]string, len(words))
		copy(changed, words)
		if changed[i] == "abandon" {
			changed[i] = "ability"
		} else {
			changed[i] = "abandon"
		}
		got, err := AddressFromMnemonic(strings.Join(changed, " "))
		if err != nil {
			if !errors.Is(err, ErrInvalidPhrase) {
				t.Errorf("word %d: error = %v, want ErrInvalidPhrase", i, err)
			}
			continue
		}
		if got == base {
			t.Errorf("word %d: changed phrase produced the same address", i)
		}
	}
}

func TestDeriveAddress_Concurrent(t *testing.T) {
	phrases := []string{abandonAbout, stovePhrase, abandonArt}
	want := make([]string, len(phrases))
	for i, p := range phrases {
		addr, err := AddressFromMnemonic(p)
		if err != nil {
			t.Fatalf("AddressFromMnemonic() error: %v", err)
		}
		want[i] = addr
	}

	var wg sync.WaitGroup
	errs := make(chan string, 24)
	for n := 0; n < 24; n++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := AddressFromMnemonic(phrases[i])
			if err != nil || got != want[i] {
				errs <- phrases[i]
			}
		}(n % len(phrases))
	}
	wg.Wait()
	close(errs)
	for p := range errs {
		t.Errorf("concurrent derivation of %q disagreed with sequential result", p)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, KindOK},
		{invalidWordCount(3), KindInvalidWordCount},
		{invalidWord("x"), KindInvalidWord},
		{invalidPhrase(), KindInvalidPhrase},
		{internalError("x", nil), KindInternal},
		{errors.New("other"), KindInternal},
	}
	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
		}
	}
}

func TestPhraseError_Messages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{invalidWordCount(11), "invalid word count 11"},
		{invalidWord("zzzzz"), `"zzzzz"`},
		{invalidPhrase(), "checksum"},
		{internalError("invalid intermediate key", nil), "invalid intermediate key"},
		{internalError("derive seed", errors.New("boom")), "boom"},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.err.Error(), tt.want) {
			t.Errorf("Error() = %q, want it to contain %q", tt.err.Error(), tt.want)
		}
	}
}
