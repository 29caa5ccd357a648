package wallet

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"

	"github.com/Klingon-tech/seedphrase/pkg/crypto"
	"github.com/Klingon-tech/seedphrase/pkg/types"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// BIP-32 accepts seeds between 128 and 512 bits.
const (
	MinSeedSize = 16
	MaxSeedSize = 64
)

// masterHMACKey is the fixed HMAC key for BIP-32 master key generation.
var masterHMACKey = []byte("Bitcoin seed")

// HDKey is an extended private key (BIP-32). Public-only keys are never
// needed here, so there is no neutered form.
type HDKey struct {
	key       secp256k1.ModNScalar
	chainCode [32]byte
	depth     uint8
	index     uint32
}

// NewMasterKey derives the master extended key from seed:
// I = HMAC-SHA512("Bitcoin seed", seed), key = I[0:32], chain code = I[32:64].
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, internalError("create master key",
			fmt.Errorf("seed must be %d to %d bytes, got %d", MinSeedSize, MaxSeedSize, len(seed)))
	}
	mac := hmac.New(sha512.New, masterHMACKey)
	mac.Write(seed)
	I := mac.Sum(nil)
	defer zeroBytes(I)
	return masterFromDigest(I)
}

func masterFromDigest(I []byte) (*HDKey, error) {
	k := &HDKey{}
	if overflow := k.key.SetByteSlice(I[:32]); overflow || k.key.IsZero() {
		k.key.Zero()
		return nil, internalError("invalid intermediate key", nil)
	}
	copy(k.chainCode[:], I[32:])
	return k, nil
}

// DeriveChild derives the child private key at index. Indices at or above
// HardenedOffset use hardened derivation.
//
// An intermediate value IL >= n or a zero child key is reported as
// ErrInternal. BIP-32 would skip to the next index; that is never done here.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	if k.depth == 0xff {
		return nil, internalError("derive child", fmt.Errorf("maximum depth reached"))
	}

	var data [37]byte
	if index >= HardenedOffset {
		// 0x00 || ser256(k)
		k.key.PutBytesUnchecked(data[1:33])
	} else {
		copy(data[:33], k.PublicKeyBytes())
	}
	binary.BigEndian.PutUint32(data[33:], index)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data[:])
	I := mac.Sum(nil)
	zeroBytes(data[:])
	defer zeroBytes(I)
	return k.childFromDigest(I, index)
}

func (k *HDKey) childFromDigest(I []byte, index uint32) (*HDKey, error) {
	var il secp256k1.ModNScalar
	defer il.Zero()
	if overflow := il.SetByteSlice(I[:32]); overflow {
		return nil, internalError("invalid intermediate key", nil)
	}

	child := &HDKey{depth: k.depth + 1, index: index}
	child.key.Add2(&il, &k.key)
	if child.key.IsZero() {
		return nil, internalError("invalid intermediate key", nil)
	}
	copy(child.chainCode[:], I[32:])
	return child, nil
}

// DerivePath derives a key along path. Intermediate keys are zeroed as soon
// as the next level exists.
func (k *HDKey) DerivePath(path DerivationPath) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if current != k {
			current.Zero()
		}
		if err != nil {
			return nil, err
		}
		current = child
	}
	if current == k {
		clone := *k
		return &clone, nil
	}
	return current, nil
}

// PrivateKeyBytes returns the 32-byte private key.
func (k *HDKey) PrivateKeyBytes() []byte {
	b := k.key.Bytes()
	return b[:]
}

// PublicKeyBytes returns the 33-byte compressed public key.
func (k *HDKey) PublicKeyBytes() []byte {
	priv := secp256k1.NewPrivateKey(&k.key)
	defer priv.Zero()
	return priv.PubKey().SerializeCompressed()
}

// ChainCode returns a copy of the 32-byte chain code.
func (k *HDKey) ChainCode() []byte {
	out := make([]byte, len(k.chainCode))
	copy(out, k.chainCode[:])
	return out
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.depth
}

// Index returns the child index this key was derived at (0 for master).
func (k *HDKey) Index() uint32 {
	return k.index
}

// PrivateKey returns the key as a signing key.
func (k *HDKey) PrivateKey() (*crypto.PrivateKey, error) {
	pk, err := crypto.PrivateKeyFromScalar(&k.key)
	if err != nil {
		return nil, internalError("leaf key", err)
	}
	return pk, nil
}

// Address returns the Ethereum address of this key.
func (k *HDKey) Address() (types.Address, error) {
	pk, err := k.PrivateKey()
	if err != nil {
		return types.Address{}, err
	}
	defer pk.Zero()
	return pk.Address(), nil
}

// Zero wipes the private key and chain code.
func (k *HDKey) Zero() {
	k.key.Zero()
	zeroBytes(k.chainCode[:])
}
