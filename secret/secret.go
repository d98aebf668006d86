// Package secret models the key material behind an identity.
//
// A Secret is exactly one of:
//   - SeedPhrase: a BIP-39 mnemonic from which SEP-5 keys are derived at an HD index.
//   - SecretKey: an already-derived Stellar secret key (S...).
//
// The set of variants is closed: Secret has an unexported marker method, and every
// derivation function switches over both variants explicitly.
package secret

import (
	"fmt"
	"strings"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"

	"github.com/marwen-abid/stellar-identity-go/core/crypto"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

const (
	// TestSeed is the seed reserved for reproducible fixtures.
	TestSeed = "0000000000000000"

	// TestPhrase is the mnemonic TestSeed encodes to.
	TestPhrase = "coral light army gather adapt blossom school alcohol coral light army giggle"
)

// Secret is either a SeedPhrase or a SecretKey.
type Secret interface {
	isSecret()
}

// SeedPhrase is a mnemonic seed phrase.
type SeedPhrase struct {
	Phrase string
}

// SecretKey is a Stellar secret key in strkey encoding.
type SecretKey struct {
	Key string
}

func (SeedPhrase) isSecret() {}
func (SecretKey) isSecret()  {}

// String redacts the phrase so secrets never reach logs through %v.
func (SeedPhrase) String() string { return "seed_phrase(redacted)" }

// String redacts the key so secrets never reach logs through %v.
func (SecretKey) String() string { return "secret_key(redacted)" }

// FromSeed builds a SeedPhrase. A non-nil seed is used verbatim as BIP-39 entropy,
// so the same seed always gives the same phrase; it must be 16 to 32 bytes long
// and a multiple of 4. A nil seed yields a random 12-word phrase.
func FromSeed(seed *string) (Secret, error) {
	if seed == nil {
		phrase, err := crypto.NewRandomMnemonic(crypto.DefaultEntropyBits)
		if err != nil {
			return nil, errors.NewSecretError(errors.INVALID_SEED, "failed to generate random seed phrase", err)
		}
		return SeedPhrase{Phrase: phrase}, nil
	}

	phrase, err := crypto.MnemonicFromEntropy([]byte(*seed))
	if err != nil {
		return nil, errors.NewSecretError(
			errors.INVALID_SEED,
			fmt.Sprintf("seed of %d bytes cannot seed a phrase (need 16-32 bytes, multiple of 4)", len(*seed)),
			err,
		)
	}
	return SeedPhrase{Phrase: phrase}, nil
}

// TestSeedPhrase returns the fixed phrase for TestSeed.
func TestSeedPhrase() Secret {
	return SeedPhrase{Phrase: TestPhrase}
}

// Parse interprets a user-supplied string. Valid S... keys become SecretKey;
// anything else must be a valid mnemonic.
func Parse(value string) (Secret, error) {
	value = strings.TrimSpace(value)
	if strkey.IsValidEd25519SecretSeed(value) {
		return SecretKey{Key: value}, nil
	}
	if err := crypto.ValidateMnemonic(value); err != nil {
		return nil, errors.NewSecretError(errors.INVALID_SEED_PHRASE, "value is neither a secret key nor a valid seed phrase", err)
	}
	return SeedPhrase{Phrase: strings.Join(strings.Fields(value), " ")}, nil
}

// PrivateKey derives the keypair for s. For a SeedPhrase, hdPath selects the
// account index (nil means 0). For a SecretKey, any hdPath is rejected.
func PrivateKey(s Secret, hdPath *uint32) (*keypair.Full, error) {
	switch v := s.(type) {
	case SeedPhrase:
		return v.derive(hdPath)
	case SecretKey:
		if hdPath != nil {
			return nil, errors.NewSecretError(
				errors.HD_PATH_NOT_APPLICABLE,
				"an hd path cannot be applied to a secret key",
				nil,
			).With("hd_path", *hdPath)
		}
		return v.parse()
	case nil:
		return nil, errors.NewSecretError(errors.INVALID_SECRET_KEY, "no secret", nil)
	default:
		panic(fmt.Sprintf("secret: unknown variant %T", s))
	}
}

// PublicKey returns the address matching PrivateKey(s, hdPath).
func PublicKey(s Secret, hdPath *uint32) (*keypair.FromAddress, error) {
	kp, err := PrivateKey(s, hdPath)
	if err != nil {
		return nil, err
	}
	return kp.FromAddress(), nil
}

func (p SeedPhrase) derive(hdPath *uint32) (*keypair.Full, error) {
	var index uint32
	if hdPath != nil {
		index = *hdPath
	}
	if index > crypto.MaxAccountIndex {
		return nil, errors.NewSecretError(
			errors.INVALID_HD_PATH,
			fmt.Sprintf("hd path %d is outside the hardened range [0, %d]", index, crypto.MaxAccountIndex),
			nil,
		)
	}

	seed, err := crypto.SeedFromMnemonic(p.Phrase)
	if err != nil {
		return nil, errors.NewSecretError(errors.INVALID_SEED_PHRASE, "invalid seed phrase", err)
	}

	kp, err := crypto.DeriveAccount(seed, index)
	if err != nil {
		return nil, errors.NewSecretError(errors.INVALID_HD_PATH, fmt.Sprintf("failed to derive %s", crypto.AccountPath(index)), err)
	}
	return kp, nil
}

func (k SecretKey) parse() (*keypair.Full, error) {
	kp, err := keypair.ParseFull(k.Key)
	if err != nil {
		return nil, errors.NewSecretError(errors.INVALID_SECRET_KEY, "invalid secret key", err)
	}
	return kp, nil
}
