package crypto

import (
	"crypto/rand"
	"fmt"

	"github.com/Klingon-tech/seedphrase/pkg/types"
	"github.com/zeebo/blake3"
)

// FingerprintKeySize is the BLAKE3 key length in bytes.
const FingerprintKeySize = 32

// Fingerprinter computes keyed BLAKE3 digests. Two inputs can be recognised
// as equal without keeping either input around, and digests are useless to
// anyone who does not hold the key.
type Fingerprinter struct {
	base *blake3.Hasher
}

// NewFingerprinter creates a Fingerprinter with a fresh random key.
func NewFingerprinter() (*Fingerprinter, error) {
	var key [FingerprintKeySize]byte
	if _, err := rand.Read(key[:]); err != nil {
		return nil, fmt.Errorf("generate fingerprint key: %w", err)
	}
	return NewFingerprinterWithKey(key[:])
}

// NewFingerprinterWithKey creates a Fingerprinter with a caller-chosen key.
func NewFingerprinterWithKey(key []byte) (*Fingerprinter, error) {
	if len(key) != FingerprintKeySize {
		return nil, fmt.Errorf("fingerprint key must be %d bytes, got %d", FingerprintKeySize, len(key))
	}
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, fmt.Errorf("keyed blake3: %w", err)
	}
	return &Fingerprinter{base: h}, nil
}

// Sum returns the keyed digest of data. Safe for concurrent use.
func (f *Fingerprinter) Sum(data []byte) types.Hash {
	h := f.base.Clone()
	h.Write(data)
	var out types.Hash
	h.Sum(out[:0])
	return out
}
