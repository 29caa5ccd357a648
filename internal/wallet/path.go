package wallet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tyler-smith/go-bip32"
)

// HardenedOffset is added to an index to select hardened derivation.
const HardenedOffset = bip32.FirstHardenedChild

// BIP-44 derivation path constants.
// Full path: m/44'/60'/account'/change/index
const (
	// PurposeBIP44 is the BIP-44 purpose field (hardened).
	PurposeBIP44 = HardenedOffset + 44

	// CoinTypeEthereum is the SLIP-44 coin type for Ethereum (hardened).
	CoinTypeEthereum = HardenedOffset + 60

	// ChangeExternal is the receiving chain.
	ChangeExternal = 0
)

// DerivationPath is a BIP-32 path as a list of child indices.
type DerivationPath []uint32

// DefaultPath is m/44'/60'/0'/0/0, the first external address of the first
// Ethereum account.
var DefaultPath = DerivationPath{PurposeBIP44, CoinTypeEthereum, HardenedOffset + 0, ChangeExternal, 0}

// String renders the path as "m/44'/60'/0'/0/0".
func (p DerivationPath) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// MarshalJSON encodes the path in its string form.
func (p DerivationPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// ParseDerivationPath parses "m/44'/60'/0'/0/0". Hardened components may be
// marked with ', h or H.
func ParseDerivationPath(s string) (DerivationPath, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if parts[0] != "m" {
		return nil, fmt.Errorf("derivation path %q must start with m", s)
	}
	if len(parts) == 1 {
		return nil, fmt.Errorf("derivation path %q is empty", s)
	}
	path := make(DerivationPath, 0, len(parts)-1)
	for _, part := range parts[1:] {
		hardened := false
		if n := len(part); n > 0 && (part[n-1] == '\'' || part[n-1] == 'h' || part[n-1] == 'H') {
			hardened = true
			part = part[:n-1]
		}
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid path component %q: %w", part, err)
		}
		if v >= uint64(HardenedOffset) {
			return nil, fmt.Errorf("path component %d out of range", v)
		}
		idx := uint32(v)
		if hardened {
			idx += HardenedOffset
		}
		path = append(path, idx)
	}
	return path, nil
}
