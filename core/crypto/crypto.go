// Package crypto implements SEP-5 key derivation for Stellar accounts:
// BIP-39 mnemonic <-> entropy, mnemonic -> seed, and SLIP-10 ed25519 derivation
// along m/44'/148'/index'.
package crypto

import (
	"fmt"
	"strings"

	"github.com/stellar/go/tools/stellar-hd-wallet/crypto/derivation"
	"github.com/stellar/go/keypair"
	"github.com/tyler-smith/go-bip39"
)

const (
	// DefaultEntropyBits is the entropy size of a 12-word phrase.
	DefaultEntropyBits = 128

	// MaxAccountIndex is the largest index usable as a hardened path component.
	MaxAccountIndex = derivation.FirstHardenedIndex - 1
)

// NewRandomMnemonic returns a fresh mnemonic backed by bitSize bits of
// crypto/rand entropy. bitSize must be a multiple of 32 in [128, 256].
func NewRandomMnemonic(bitSize int) (string, error) {
	entropy, err := bip39.NewEntropy(bitSize)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// MnemonicFromEntropy encodes entropy as a mnemonic. The same entropy always
// yields the same phrase.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic checks word membership, word count and checksum.
func ValidateMnemonic(phrase string) error {
	if _, err := bip39.EntropyFromMnemonic(normalize(phrase)); err != nil {
		return err
	}
	return nil
}

// SeedFromMnemonic returns the 64-byte BIP-39 seed for phrase with an empty
// passphrase.
func SeedFromMnemonic(phrase string) ([]byte, error) {
	if err := ValidateMnemonic(phrase); err != nil {
		return nil, err
	}
	return bip39.NewSeed(normalize(phrase), ""), nil
}

// AccountPath returns the SEP-5 derivation path for index.
func AccountPath(index uint32) string {
	return fmt.Sprintf(derivation.StellarAccountPathFormat, index)
}

// DeriveAccount derives the Stellar keypair at m/44'/148'/index' from a BIP-39 seed.
func DeriveAccount(seed []byte, index uint32) (*keypair.Full, error) {
	if index > MaxAccountIndex {
		return nil, fmt.Errorf("account index %d exceeds %d", index, MaxAccountIndex)
	}

	key, err := derivation.DeriveForPath(AccountPath(index), seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive %s: %w", AccountPath(index), err)
	}

	var raw [32]byte
	copy(raw[:], key.Key)
	kp, err := keypair.FromRawSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to build keypair: %w", err)
	}
	return kp, nil
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(phrase), " ")
}
