package identity

import (
	"context"

	"github.com/marwen-abid/stellar-identity-go/secret"
)

// Reader is the slice of the store the lookups need.
type Reader interface {
	ReadIdentity(ctx context.Context, name string) (secret.Secret, error)
}

// Address returns the G... address of the named identity at hdPath.
func Address(ctx context.Context, r Reader, name string, hdPath *uint32) (string, error) {
	s, err := r.ReadIdentity(ctx, name)
	if err != nil {
		return "", err
	}
	pub, err := secret.PublicKey(s, hdPath)
	if err != nil {
		return "", err
	}
	return pub.Address(), nil
}

// Show returns the S... secret key of the named identity at hdPath.
func Show(ctx context.Context, r Reader, name string, hdPath *uint32) (string, error) {
	s, err := r.ReadIdentity(ctx, name)
	if err != nil {
		return "", err
	}
	kp, err := secret.PrivateKey(s, hdPath)
	if err != nil {
		return "", err
	}
	return kp.Seed(), nil
}
