package crypto

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

func TestPrivateKeyFromBytes(t *testing.T) {
	// Leaf key of "stove relax ... innocent" at m/44'/60'/0'/0/0.
	secret := mustHex(t, "50c4e748b5c2883456145b1bcd2218047f7ac6d103386f4f26e04ac9ceaaea19")

	key, err := PrivateKeyFromBytes(secret)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	if !bytes.Equal(key.Serialize(), secret) {
		t.Errorf("Serialize() = %x, want %x", key.Serialize(), secret)
	}
	if got := len(key.PublicKey()); got != 33 {
		t.Errorf("PublicKey() length = %d, want 33", got)
	}
	if got := len(key.PublicKeyUncompressed()); got != PubKeySize {
		t.Errorf("PublicKeyUncompressed() length = %d, want %d", got, PubKeySize)
	}

	want := "0xa2f9049218bf0a064cb5de9f47022969c640e2d7"
	if addr := key.Address(); addr.String() != want {
		t.Errorf("Address() = %s, want %s", addr, want)
	}
}

func TestPrivateKeyFromBytes_One(t *testing.T) {
	secret := make([]byte, 32)
	secret[31] = 1

	key, err := PrivateKeyFromBytes(secret)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	wantPub := "79be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798" +
		"483ada7726a3c4655da4fbfc0e1108a8fd17b448a68554199c47d08ffb10d4b8"
	if got := hex.EncodeToString(key.PublicKeyUncompressed()); got != wantPub {
		t.Errorf("PublicKeyUncompressed() = %s, want %s", got, wantPub)
	}
	if got := hex.EncodeToString(key.PublicKey()); got != "02"+wantPub[:64] {
		t.Errorf("PublicKey() = %s", got)
	}
}

func TestPrivateKeyFromBytes_OutOfRange(t *testing.T) {
	order := "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
	orderPlusOne := "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364142"

	tests := []struct {
		name string
		data []byte
	}{
		{"zero", make([]byte, 32)},
		{"group order", mustHex(t, order)},
		{"group order + 1", mustHex(t, orderPlusOne)},
		{"all ones", bytes.Repeat([]byte{0xff}, 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrivateKeyFromBytes(tt.data)
			if !errors.Is(err, ErrInvalidPrivateKey) {
				t.Errorf("PrivateKeyFromBytes() error = %v, want ErrInvalidPrivateKey", err)
			}
		})
	}
}

func TestPrivateKeyFromBytes_InvalidLength(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"too short", make([]byte, 31)},
		{"too long", make([]byte, 33)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PrivateKeyFromBytes(tt.data); err == nil {
				t.Error("expected error for invalid length")
			}
		})
	}
}

func TestPrivateKeyFromScalar_Zero(t *testing.T) {
	var s secp256k1.ModNScalar
	if _, err := PrivateKeyFromScalar(&s); !errors.Is(err, ErrInvalidPrivateKey) {
		t.Errorf("PrivateKeyFromScalar(0) error = %v, want ErrInvalidPrivateKey", err)
	}
}

func TestPrivateKey_Zero(t *testing.T) {
	secret := mustHex(t, "50c4e748b5c2883456145b1bcd2218047f7ac6d103386f4f26e04ac9ceaaea19")
	key, err := PrivateKeyFromBytes(secret)
	if err != nil {
		t.Fatalf("PrivateKeyFromBytes() error: %v", err)
	}

	key.Zero()

	if !bytes.Equal(key.Serialize(), make([]byte, 32)) {
		t.Error("Zero() should clear the private scalar")
	}
}
