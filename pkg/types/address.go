package types

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressSize is the length of an Ethereum address in bytes.
const AddressSize = 20

// AddressPrefix precedes the hex digits of a rendered address.
const AddressPrefix = "0x"

// Address is a 160-bit Ethereum account address: the last 20 bytes of the
// Keccak-256 hash of an uncompressed public key.
type Address [AddressSize]byte

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// String returns "0x" followed by 40 lowercase hex characters.
// No EIP-55 mixed-case checksum is applied.
func (a Address) String() string {
	return AddressPrefix + a.Hex()
}

// Hex returns the raw lowercase hex-encoded address without prefix.
func (a Address) Hex() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// MarshalJSON encodes the address as a "0x"-prefixed lowercase hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a prefixed or raw hex string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAddress parses an address string. Accepts "0x"/"0X"-prefixed or raw
// 40-character hex in any letter case; mixed-case input is not checked
// against EIP-55.
func ParseAddress(s string) (Address, error) {
	if s == "" {
		return Address{}, fmt.Errorf("empty address")
	}
	hexStr := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		hexStr = s[2:]
	}
	return HexToAddress(hexStr)
}

// HexToAddress converts a raw hex string to an Address.
// Returns an error if the string is not exactly 40 hex characters.
// For user-facing input that may have a prefix, use ParseAddress instead.
func HexToAddress(s string) (Address, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid hex: %w", err)
	}
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}
