// Package funding asks a network's friendbot to create and fund an account.
//
// The flow for FundAddress:
//  1. Discover the friendbot base URL from the RPC endpoint (getNetwork).
//  2. Append the address as the addr query parameter.
//  3. Dispatch on scheme: http is always allowed; https only where TLS funding is
//     supported; anything else is rejected.
//  4. GET the URL and classify the JSON body.
//
// No retries are attempted; a failure surfaces immediately.
package funding

import (
	"context"
	"fmt"
	"net/url"
	"runtime"

	"github.com/stellar/go-stellar-sdk/support/log"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/core/net"
	"github.com/marwen-abid/stellar-identity-go/core/rpc"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

// ManualFundingURL is where users fund accounts by hand when the CLI cannot.
const ManualFundingURL = "https://laboratory.stellar.org/#account-creator"

// Client funds addresses through friendbot.
type Client struct {
	discoverer  rpc.Discoverer
	httpClient  *net.Client
	supportsTLS func() bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDiscoverer replaces the friendbot URL discovery.
func WithDiscoverer(d rpc.Discoverer) ClientOption {
	return func(c *Client) {
		c.discoverer = d
	}
}

// WithHTTPClient sets the HTTP client used for the friendbot request.
func WithHTTPClient(client *net.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTLSSupport replaces the predicate that decides whether https funding may
// be attempted on this platform.
func WithTLSSupport(supported func() bool) ClientOption {
	return func(c *Client) {
		c.supportsTLS = supported
	}
}

// PlatformSupportsTLS reports whether https funding works on this OS. Windows
// builds lack the TLS stack the friendbot request relies on.
func PlatformSupportsTLS() bool {
	return runtime.GOOS != "windows"
}

// NewClient creates a funding client. Without options it discovers through
// Soroban RPC, never retries, and uses PlatformSupportsTLS.
func NewClient(opts ...ClientOption) *Client {
	client := &Client{
		discoverer:  rpc.NewClient(nil),
		httpClient:  net.NewClient(net.WithMaxRetries(0)),
		supportsTLS: PlatformSupportsTLS,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// HelperURL discovers the friendbot base URL for network and returns it with
// address appended as the addr query parameter.
func (c *Client) HelperURL(ctx context.Context, network stellaridentity.Network, address string) (*url.URL, error) {
	log.Ctx(ctx).Debugf("address %q", address)

	root, err := c.discoverer.FriendbotURL(ctx, network.RPCURL)
	if err != nil {
		return nil, err
	}
	return BuildHelperURL(root, address)
}

// BuildHelperURL parses root and sets addr=address in its query string.
func BuildHelperURL(root, address string) (*url.URL, error) {
	u, err := url.Parse(root)
	if err != nil || root == "" || u.Host == "" {
		return nil, errors.NewFundingError(
			errors.INVALID_URL,
			fmt.Sprintf("invalid URL %q", root),
			err,
		).With("url", root)
	}

	q := u.Query()
	q.Set("addr", address)
	u.RawQuery = q.Encode()
	return u, nil
}

// FundAddress requests funding for address on network.
func (c *Client) FundAddress(ctx context.Context, network stellaridentity.Network, address string) (stellaridentity.FundingResult, error) {
	u, err := c.HelperURL(ctx, network, address)
	if err != nil {
		return failed(err)
	}
	log.Ctx(ctx).Debugf("URL %s", u)

	switch u.Scheme {
	case "http":
	case "https":
		if !c.supportsTLS() {
			return failed(errors.NewFundingError(
				errors.PLATFORM_UNSUPPORTED,
				fmt.Sprintf("funding over https is not supported on %s; please fund manually at %s", runtime.GOOS, ManualFundingURL),
				nil,
			).With("url", u.String()).With("manual_url", ManualFundingURL))
		}
	default:
		return failed(errors.NewFundingError(
			errors.INVALID_URL,
			fmt.Sprintf("unsupported scheme %q", u.Scheme),
			nil,
		).With("url", u.String()))
	}

	resp, err := c.httpClient.Get(ctx, u.String())
	if err != nil {
		return failed(err)
	}

	result, err := Classify(ctx, resp.Body)
	var ie *errors.IdentityError
	if err != nil && errors.As(err, &ie) {
		ie.With("url", u.String())
		result.Reason = ie.Error()
	}
	return result, err
}

func failed(err error) (stellaridentity.FundingResult, error) {
	return stellaridentity.FundingResult{
		Status: stellaridentity.FundingFailed,
		Reason: err.Error(),
	}, err
}

// Verify that Client implements stellaridentity.Funder
var _ stellaridentity.Funder = (*Client)(nil)
