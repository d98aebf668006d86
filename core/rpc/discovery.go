// Package rpc queries a Soroban RPC endpoint for the metadata the funding flow
// needs. The friendbot URL is never hard-coded: each network advertises its
// own through getNetwork.
package rpc

import (
	"context"
	"net/http"

	"github.com/stellar/go-stellar-sdk/clients/rpcclient"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/marwen-abid/stellar-identity-go/errors"
)

// Discoverer looks up a network's friendbot base URL.
type Discoverer interface {
	FriendbotURL(ctx context.Context, rpcURL string) (string, error)
}

// Client discovers metadata through the JSON-RPC getNetwork method.
type Client struct {
	httpClient *http.Client
}

// NewClient returns a Client. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient}
}

// FriendbotURL returns the friendbot URL advertised by the RPC server at rpcURL.
// It is empty on networks without a friendbot.
func (c *Client) FriendbotURL(ctx context.Context, rpcURL string) (string, error) {
	client := rpcclient.NewClient(rpcURL, c.httpClient)
	defer client.Close()

	resp, err := client.GetNetwork(ctx)
	if err != nil {
		return "", errors.NewFundingError(errors.DISCOVERY_FAILED, "getNetwork failed", err).
			With("rpc_url", rpcURL)
	}

	log.Ctx(ctx).WithField("rpc_url", rpcURL).Debugf("friendbot url %q", resp.FriendbotURL)
	return resp.FriendbotURL, nil
}

// Verify that Client implements Discoverer
var _ Discoverer = (*Client)(nil)
