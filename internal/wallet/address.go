package wallet

import (
	"github.com/Klingon-tech/seedphrase/pkg/types"
)

// DeriveAddress returns the Ethereum address at DefaultPath for mnemonic and
// an optional BIP-39 passphrase ("" for none).
//
// Errors are *PhraseError values, unchanged from the stage that raised them.
func DeriveAddress(mnemonic, passphrase string) (types.Address, error) {
	m, err := ParseMnemonic(mnemonic)
	if err != nil {
		return types.Address{}, err
	}

	seed, err := NewSeed(m, passphrase)
	if err != nil {
		return types.Address{}, err
	}
	master, err := NewMasterKey(seed)
	zeroBytes(seed)
	if err != nil {
		return types.Address{}, err
	}

	leaf, err := master.DerivePath(DefaultPath)
	master.Zero()
	if err != nil {
		return types.Address{}, err
	}
	defer leaf.Zero()

	return leaf.Address()
}

// AddressFromMnemonic returns the address for mnemonic with no passphrase,
// as "0x" followed by 40 lowercase hex digits.
func AddressFromMnemonic(mnemonic string) (string, error) {
	addr, err := DeriveAddress(mnemonic, "")
	if err != nil {
		return "", err
	}
	return addr.String(), nil
}
