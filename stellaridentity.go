// Package stellaridentity manages named Stellar identities and decides which
// network a command targets. Key material lives in package secret, network
// selection in package network, and friendbot funding in package funding.
//
// Persistence is delegated: the module only needs a Locator, and ships memory,
// TOML-directory and badger implementations under store/.
package stellaridentity

import (
	"context"

	"github.com/marwen-abid/stellar-identity-go/secret"
)

// Network is a fully resolved network selection. Both fields are non-empty.
type Network struct {
	// RPCURL is the Soroban RPC endpoint.
	RPCURL string `toml:"rpc_url" json:"rpc_url"`

	// NetworkPassphrase scopes signatures to one network instance.
	NetworkPassphrase string `toml:"network_passphrase" json:"network_passphrase"`
}

// Locator is the narrow persistence contract the core depends on.
type Locator interface {
	// WriteIdentity persists secret under name, silently replacing any
	// existing identity with that name.
	WriteIdentity(ctx context.Context, name string, s secret.Secret) error

	// ReadNetwork returns the saved network called name, or a NOT_FOUND error.
	ReadNetwork(ctx context.Context, name string) (*Network, error)
}

// Store is the full persistence surface used by the CLI.
type Store interface {
	Locator

	// ReadIdentity returns the identity called name, or a NOT_FOUND error.
	ReadIdentity(ctx context.Context, name string) (secret.Secret, error)

	// ListIdentities returns identity names in lexical order.
	ListIdentities(ctx context.Context) ([]string, error)

	// RemoveIdentity deletes the identity called name, or returns NOT_FOUND.
	RemoveIdentity(ctx context.Context, name string) error

	// WriteNetwork persists network under name, replacing any existing entry.
	WriteNetwork(ctx context.Context, name string, network Network) error

	// ListNetworks returns network names in lexical order.
	ListNetworks(ctx context.Context) ([]string, error)

	// RemoveNetwork deletes the network called name, or returns NOT_FOUND.
	RemoveNetwork(ctx context.Context, name string) error
}

// FundingStatus classifies a friendbot response.
type FundingStatus string

const (
	// FundingFunded means the friendbot created and funded the account.
	FundingFunded FundingStatus = "funded"

	// FundingAlreadyFunded means the account already existed. Not an error.
	FundingAlreadyFunded FundingStatus = "already_funded"

	// FundingFailed means the request failed; Reason says why.
	FundingFailed FundingStatus = "failed"
)

// FundingResult is the outcome of a funding attempt.
type FundingResult struct {
	Status FundingStatus
	Reason string
}

// Funder requests test funds for an address on a resolved network.
type Funder interface {
	FundAddress(ctx context.Context, network Network, address string) (FundingResult, error)
}
