package secret

import (
	"github.com/marwen-abid/stellar-identity-go/errors"
)

// Record is the persisted shape of a Secret. Exactly one field is set.
type Record struct {
	SeedPhrase string `toml:"seed_phrase,omitempty" json:"seed_phrase,omitempty"`
	SecretKey  string `toml:"secret_key,omitempty" json:"secret_key,omitempty"`
}

// ToRecord converts s to its persisted shape.
func ToRecord(s Secret) Record {
	switch v := s.(type) {
	case SeedPhrase:
		return Record{SeedPhrase: v.Phrase}
	case SecretKey:
		return Record{SecretKey: v.Key}
	default:
		return Record{}
	}
}

// FromRecord rebuilds a Secret, rejecting records with zero or two variants set.
func FromRecord(r Record) (Secret, error) {
	switch {
	case r.SeedPhrase != "" && r.SecretKey != "":
		return nil, errors.NewSecretError(errors.INVALID_SECRET_KEY, "record holds both a seed phrase and a secret key", nil)
	case r.SeedPhrase != "":
		return SeedPhrase{Phrase: r.SeedPhrase}, nil
	case r.SecretKey != "":
		return SecretKey{Key: r.SecretKey}, nil
	default:
		return nil, errors.NewSecretError(errors.INVALID_SECRET_KEY, "record holds no secret", nil)
	}
}
