// Package crypto provides the hashing and secp256k1 primitives used to turn
// a private key into an Ethereum address.
package crypto

import (
	"fmt"

	"github.com/Klingon-tech/seedphrase/pkg/types"
	"golang.org/x/crypto/sha3"
)

// PubKeySize is the length of an uncompressed public key without the
// leading 0x04 format byte (X || Y).
const PubKeySize = 64

// Keccak256 computes the legacy (pre-FIPS) Keccak-256 hash of the
// concatenation of data.
func Keccak256(data ...[]byte) types.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	var out types.Hash
	h.Sum(out[:0])
	return out
}

// AddressFromPubKey derives an Ethereum address from an uncompressed public
// key. Accepts the 64-byte X || Y form or the 65-byte form with a leading
// 0x04. Address = Keccak256(X || Y)[12:].
func AddressFromPubKey(pubKey []byte) (types.Address, error) {
	switch {
	case len(pubKey) == PubKeySize+1 && pubKey[0] == 0x04:
		pubKey = pubKey[1:]
	case len(pubKey) != PubKeySize:
		return types.Address{}, fmt.Errorf("public key must be %d bytes, got %d", PubKeySize, len(pubKey))
	}
	h := Keccak256(pubKey)
	var addr types.Address
	copy(addr[:], h[types.HashSize-types.AddressSize:])
	return addr, nil
}
