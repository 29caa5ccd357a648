package crypto

import (
	"errors"
	"fmt"

	"github.com/Klingon-tech/seedphrase/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ErrInvalidPrivateKey is returned for a scalar that is zero or not below
// the secp256k1 group order.
var ErrInvalidPrivateKey = errors.New("private key out of range")

// PrivateKey wraps a secp256k1 private key.
type PrivateKey struct {
	key *secp256k1.PrivateKey
}

// PrivateKeyFromBytes creates a PrivateKey from a 32-byte big-endian secret.
// Unlike secp256k1.PrivKeyFromBytes, values of zero or >= N are rejected
// instead of being reduced.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	if len(b) != 32 {
		return nil, fmt.Errorf("private key must be 32 bytes, got %d", len(b))
	}
	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	defer s.Zero()
	if overflow {
		return nil, ErrInvalidPrivateKey
	}
	return PrivateKeyFromScalar(&s)
}

// PrivateKeyFromScalar creates a PrivateKey from a scalar already reduced
// modulo N. The scalar is copied.
func PrivateKeyFromScalar(s *secp256k1.ModNScalar) (*PrivateKey, error) {
	if s.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &PrivateKey{key: secp256k1.NewPrivateKey(s)}, nil
}

// PublicKey returns the compressed 33-byte public key.
func (pk *PrivateKey) PublicKey() []byte {
	return pk.key.PubKey().SerializeCompressed()
}

// PublicKeyUncompressed returns the 64-byte X || Y public key, without the
// 0x04 format byte.
func (pk *PrivateKey) PublicKeyUncompressed() []byte {
	return pk.key.PubKey().SerializeUncompressed()[1:]
}

// Address returns the Ethereum address controlled by this key.
func (pk *PrivateKey) Address() types.Address {
	addr, err := AddressFromPubKey(pk.PublicKeyUncompressed())
	if err != nil {
		// Unreachable: the serialized key length is fixed.
		panic(err)
	}
	return addr
}

// Serialize returns the 32-byte private key scalar.
func (pk *PrivateKey) Serialize() []byte {
	return pk.key.Serialize()
}

// Zero securely zeroes the private key memory.
func (pk *PrivateKey) Zero() {
	pk.key.Zero()
}
