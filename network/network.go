// Package network decides which RPC endpoint and passphrase a command targets.
//
// Input arrives as Args, merged from flags and SOROBAN_* environment variables.
// Validate enforces the input-boundary invariants. Resolve then picks among the
// already-validated alternatives in a fixed order:
//
//  1. A named network, looked up in the store.
//  2. An explicit rpc url + passphrase pair.
//  3. Otherwise NETWORK_REQUIRED.
package network

import (
	"context"

	stellarnet "github.com/stellar/go-stellar-sdk/network"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

// StandaloneNetworkPassphrase is the passphrase of a local quickstart network.
const StandaloneNetworkPassphrase = "Standalone Network ; February 2017"

// Args is the raw, unresolved network input. An empty string means unset.
type Args struct {
	RPCURL            string
	NetworkPassphrase string
	Network           string
}

// NetworkReader is the slice of the store Resolve needs.
type NetworkReader interface {
	ReadNetwork(ctx context.Context, name string) (*stellaridentity.Network, error)
}

// IsNoNetwork reports whether no network input was given at all. Callers use
// it to skip network-dependent steps instead of failing.
func (a Args) IsNoNetwork() bool {
	return a.RPCURL == "" && a.NetworkPassphrase == "" && a.Network == ""
}

// Validate enforces that a network name excludes the explicit pair and that
// the pair is given together or not at all.
func (a Args) Validate() error {
	if a.Network != "" && (a.RPCURL != "" || a.NetworkPassphrase != "") {
		return errors.NewNetworkError(
			errors.NETWORK_ARGS_CONFLICT,
			"--network cannot be combined with --rpc-url or --network-passphrase",
			nil,
		)
	}
	if (a.RPCURL == "") != (a.NetworkPassphrase == "") {
		return errors.NewNetworkError(
			errors.NETWORK_ARGS_CONFLICT,
			"--rpc-url and --network-passphrase must be given together",
			nil,
		)
	}
	return nil
}

// Resolve returns the single network selected by a. The first applicable rule
// wins; a named network therefore takes precedence even when the pair is set.
func Resolve(ctx context.Context, a Args, reader NetworkReader) (*stellaridentity.Network, error) {
	switch {
	case a.Network != "":
		return reader.ReadNetwork(ctx, a.Network)
	case a.RPCURL != "" && a.NetworkPassphrase != "":
		return &stellaridentity.Network{
			RPCURL:            a.RPCURL,
			NetworkPassphrase: a.NetworkPassphrase,
		}, nil
	default:
		return nil, errors.NewNetworkError(
			errors.NETWORK_REQUIRED,
			"network arg or rpc url and network passphrase are required if using the network",
			nil,
		)
	}
}

// Futurenet returns the SDF futurenet endpoint.
func Futurenet() stellaridentity.Network {
	return stellaridentity.Network{
		RPCURL:            "https://rpc-futurenet.stellar.org:443",
		NetworkPassphrase: stellarnet.FutureNetworkPassphrase,
	}
}

// Testnet returns the SDF testnet endpoint.
func Testnet() stellaridentity.Network {
	return stellaridentity.Network{
		RPCURL:            "https://soroban-testnet.stellar.org:443",
		NetworkPassphrase: stellarnet.TestNetworkPassphrase,
	}
}

// Local returns the default endpoint of a local quickstart container.
func Local() stellaridentity.Network {
	return stellaridentity.Network{
		RPCURL:            "http://localhost:8000/soroban/rpc",
		NetworkPassphrase: StandaloneNetworkPassphrase,
	}
}

// Defaults maps the well-known network names to their settings.
func Defaults() map[string]stellaridentity.Network {
	return map[string]stellaridentity.Network{
		"futurenet": Futurenet(),
		"testnet":   Testnet(),
		"local":     Local(),
	}
}
