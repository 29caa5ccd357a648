package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a derived seed in bytes (512 bits).
const SeedSize = 64

// NewSeed stretches a validated mnemonic and an optional passphrase into a
// 512-bit seed: PBKDF2-HMAC-SHA512, 2048 iterations, password = NFKD(phrase),
// salt = "mnemonic" + NFKD(passphrase).
func NewSeed(m *Mnemonic, passphrase string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(m.String(), norm.NFKD.String(passphrase))
	if err != nil {
		return nil, internalError("derive seed", err)
	}
	if len(seed) != SeedSize {
		return nil, internalError("derive seed", fmt.Errorf("seed is %d bytes, want %d", len(seed), SeedSize))
	}
	return seed, nil
}

// SeedFromMnemonic validates phrase and derives its seed.
func SeedFromMnemonic(phrase, passphrase string) ([]byte, error) {
	m, err := ParseMnemonic(phrase)
	if err != nil {
		return nil, err
	}
	return NewSeed(m, passphrase)
}

func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
