// Package identity implements the identity commands on top of the secret,
// network and funding packages.
package identity

import (
	"context"
	"fmt"

	"github.com/stellar/go-stellar-sdk/support/log"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/network"
	"github.com/marwen-abid/stellar-identity-go/secret"
)

// GenerateOptions are the inputs of identity generation.
type GenerateOptions struct {
	// Name of the identity to write.
	Name string

	// Seed, when set, deterministically seeds the phrase. Excludes DefaultSeed.
	Seed *string

	// DefaultSeed uses the fixed test phrase. Excludes Seed.
	DefaultSeed bool

	// AsSecret persists the derived secret key instead of the phrase.
	AsSecret bool

	// HDPath selects the account index to derive (nil means 0).
	HDPath *uint32

	// Network selects where to fund the new account. Leave empty to skip funding.
	Network network.Args
}

// Generated describes a freshly written identity.
type Generated struct {
	Name    string
	Address string

	// Funding is nil when no network was selected.
	Funding *stellaridentity.FundingResult
}

// Generator creates identities and, when a network is selected, funds them.
type Generator struct {
	locator stellaridentity.Locator
	funder  stellaridentity.Funder
}

// NewGenerator returns a Generator writing to locator and funding through funder.
func NewGenerator(locator stellaridentity.Locator, funder stellaridentity.Funder) *Generator {
	return &Generator{
		locator: locator,
		funder:  funder,
	}
}

// Generate builds the secret, persists it under opts.Name and, unless no network
// was given, funds the derived address. The identity is written before funding,
// so a funding failure returns both the Generated value and the error.
func (g *Generator) Generate(ctx context.Context, opts GenerateOptions) (*Generated, error) {
	if opts.Seed != nil && opts.DefaultSeed {
		return nil, errors.NewIdentityError(errors.SEED_CONFLICT, "--seed cannot be combined with --default-seed", nil)
	}
	if err := opts.Network.Validate(); err != nil {
		return nil, err
	}

	// Step 1: Build the seed phrase
	var phrase secret.Secret
	if opts.DefaultSeed {
		phrase = secret.TestSeedPhrase()
	} else {
		var err error
		if phrase, err = secret.FromSeed(opts.Seed); err != nil {
			return nil, err
		}
	}

	// Step 2: Derive the account, converting to a secret key if requested.
	// The hd path only applies when it is stored or funded.
	hdPath := opts.HDPath
	if !opts.AsSecret && opts.Network.IsNoNetwork() {
		hdPath = nil
	}
	kp, err := secret.PrivateKey(phrase, hdPath)
	if err != nil {
		return nil, err
	}
	toWrite := phrase
	if opts.AsSecret {
		toWrite = secret.SecretKey{Key: kp.Seed()}
	}

	// Step 3: Persist
	if err := g.locator.WriteIdentity(ctx, opts.Name, toWrite); err != nil {
		return nil, fmt.Errorf("failed to write identity %q: %w", opts.Name, err)
	}
	log.Ctx(ctx).WithField("identity", opts.Name).Debugf("wrote identity %s", kp.Address())

	out := &Generated{Name: opts.Name, Address: kp.Address()}
	if opts.Network.IsNoNetwork() {
		return out, nil
	}

	// Step 4: Fund on the selected network
	n, err := network.Resolve(ctx, opts.Network, g.locator)
	if err != nil {
		return out, err
	}
	res, err := g.funder.FundAddress(ctx, *n, kp.Address())
	out.Funding = &res
	if err != nil {
		return out, err
	}
	return out, nil
}
