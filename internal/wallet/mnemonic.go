// Package wallet derives the first Ethereum account address from a BIP-39
// mnemonic: phrase validation, PBKDF2 seed stretching, BIP-32/BIP-44 key
// derivation along m/44'/60'/0'/0/0 and Keccak-256 address hashing.
//
// Everything here is pure. No function keeps state between calls, logs, or
// touches the network or disk, so all of it is safe for concurrent use.
package wallet

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
	"golang.org/x/text/unicode/norm"
)

// DefaultEntropyBits is the entropy size for generated 12-word mnemonics.
const DefaultEntropyBits = 128

// bitsPerWord is the width of one wordlist index.
const bitsPerWord = 11

// englishIndex maps each word of the BIP-39 English list to its position.
// Built once and never written afterwards.
var englishIndex = indexWordlist(wordlists.English)

func indexWordlist(list []string) map[string]int {
	m := make(map[string]int, len(list))
	for i, w := range list {
		m[w] = i
	}
	return m
}

// IsValidWordCount reports whether n is 12, 15, 18, 21 or 24.
func IsValidWordCount(n int) bool {
	return n >= 12 && n <= 24 && n%3 == 0
}

// NormalizePhrase returns phrase as NFKD, lowercase words joined by single
// spaces. It does not validate anything.
func NormalizePhrase(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKD.String(phrase))), " ")
}

// Mnemonic is a validated BIP-39 phrase.
type Mnemonic struct {
	words   []string
	entropy []byte
}

// ParseMnemonic validates phrase and returns the decoded mnemonic.
//
// The phrase is NFKD-normalized and split on any run of whitespace; words
// are matched case-insensitively. Failures are classified, in this order, as
// ErrInvalidWordCount, ErrInvalidWord (first unknown token) and
// ErrInvalidPhrase (checksum mismatch).
func ParseMnemonic(phrase string) (*Mnemonic, error) {
	tokens := strings.Fields(norm.NFKD.String(phrase))
	if !IsValidWordCount(len(tokens)) {
		return nil, invalidWordCount(len(tokens))
	}

	words := make([]string, len(tokens))
	indices := make([]int, len(tokens))
	for i, tok := range tokens {
		idx, ok := englishIndex[strings.ToLower(tok)]
		if !ok {
			return nil, invalidWord(tok)
		}
		indices[i] = idx
		words[i] = wordlists.English[idx]
	}

	entropy, ok := decodeEntropy(indices)
	if !ok {
		return nil, invalidPhrase()
	}
	return &Mnemonic{words: words, entropy: entropy}, nil
}

// decodeEntropy packs the 11-bit indices into a bit string, splits it into
// ENT entropy bits and ENT/32 checksum bits, and verifies the checksum
// against SHA-256 of the entropy.
func decodeEntropy(indices []int) ([]byte, bool) {
	totalBits := len(indices) * bitsPerWord
	entBits := totalBits * 32 / 33
	csBits := totalBits - entBits

	buf := make([]byte, (totalBits+7)/8)
	bit := 0
	for _, idx := range indices {
		for i := bitsPerWord - 1; i >= 0; i-- {
			if (idx>>uint(i))&1 == 1 {
				buf[bit/8] |= 0x80 >> uint(bit%8)
			}
			bit++
		}
	}

	// ENT is a multiple of 32, so the checksum starts on a byte boundary.
	entropy := buf[:entBits/8]
	got := buf[entBits/8] >> uint(8-csBits)
	sum := sha256.Sum256(entropy)
	want := sum[0] >> uint(8-csBits)
	if got != want {
		return nil, false
	}
	out := make([]byte, len(entropy))
	copy(out, entropy)
	return out, true
}

// String returns the normalized phrase: lowercase words joined by single
// spaces. This is the PBKDF2 password.
func (m *Mnemonic) String() string {
	return strings.Join(m.words, " ")
}

// Words returns a copy of the normalized words.
func (m *Mnemonic) Words() []string {
	out := make([]string, len(m.words))
	copy(out, m.words)
	return out
}

// WordCount returns the number of words.
func (m *Mnemonic) WordCount() int {
	return len(m.words)
}

// Entropy returns a copy of the decoded entropy bytes.
func (m *Mnemonic) Entropy() []byte {
	out := make([]byte, len(m.entropy))
	copy(out, m.entropy)
	return out
}

// ValidateMnemonic checks a mnemonic per BIP-39 (word count, wordlist
// membership, checksum) and returns the classified failure, if any.
func ValidateMnemonic(phrase string) error {
	_, err := ParseMnemonic(phrase)
	return err
}

// GenerateMnemonic creates a new BIP-39 mnemonic from bits of fresh entropy
// (128, 160, 192, 224 or 256).
func GenerateMnemonic(bits int) (string, error) {
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", fmt.Errorf("generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("generate mnemonic: %w", err)
	}
	return mnemonic, nil
}
