package funding

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/core/net"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

const testAddress = "GDIY6AQQ75WMD4W46EYB7O6UYMHOCGQHLAQGQTKHDX4J2DYQCHVCR4W4"

var testNetwork = stellaridentity.Network{RPCURL: "http://rpc.invalid", NetworkPassphrase: "P"}

type staticDiscoverer struct {
	url string
	err error
}

func (d staticDiscoverer) FriendbotURL(ctx context.Context, rpcURL string) (string, error) {
	return d.url, d.err
}

func never() bool  { return false }
func always() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status stellaridentity.FundingStatus
		code   errors.Code
	}{
		{"already funded", `{"detail":"createAccountAlreadyExist"}`, stellaridentity.FundingAlreadyFunded, ""},
		{"already funded in longer detail", `{"type":"x","detail":"op_already_exists: createAccountAlreadyExist (AAAA)"}`, stellaridentity.FundingAlreadyFunded, ""},
		{"successful true", `{"successful":true}`, stellaridentity.FundingFunded, ""},
		{"successful false still counts", `{"successful":false}`, stellaridentity.FundingFunded, ""},
		{"successful with extra fields", `{"hash":"abc","successful":"yes","ledger":7}`, stellaridentity.FundingFunded, ""},
		{"other detail falls back to successful", `{"detail":"slow down","successful":true}`, stellaridentity.FundingFunded, ""},
		{"non-string detail is ignored", `{"detail":42}`, stellaridentity.FundingFailed, errors.UNEXPECTED_RESPONSE},
		{"unknown shape", `{"foo":1}`, stellaridentity.FundingFailed, errors.UNEXPECTED_RESPONSE},
		{"json array", `[1,2]`, stellaridentity.FundingFailed, errors.UNEXPECTED_RESPONSE},
		{"not json", `<html>502</html>`, stellaridentity.FundingFailed, errors.MALFORMED_RESPONSE},
		{"empty body", ``, stellaridentity.FundingFailed, errors.MALFORMED_RESPONSE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(context.Background(), []byte(tt.body))
			assert.Equal(t, tt.status, got.Status)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsCode(err, tt.code), "%v", err)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestClassify_UnexpectedCarriesBody(t *testing.T) {
	_, err := Classify(context.Background(), []byte(`{"foo":1}`))

	var ie *errors.IdentityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, `{"foo":1}`, ie.Context["body"])
}

func TestBuildHelperURL(t *testing.T) {
	u, err := BuildHelperURL("https://friendbot.stellar.org/", testAddress)
	require.NoError(t, err)
	assert.Equal(t, "https://friendbot.stellar.org/?addr="+testAddress, u.String())

	u, err = BuildHelperURL("http://localhost:8000/friendbot?network=local", testAddress)
	require.NoError(t, err)
	assert.Equal(t, testAddress, u.Query().Get("addr"))
	assert.Equal(t, "local", u.Query().Get("network"))

	for _, bad := range []string{"", "::not a url", "friendbot.stellar.org"} {
		_, err := BuildHelperURL(bad, testAddress)
		assert.True(t, errors.IsCode(err, errors.INVALID_URL), "%q: %v", bad, err)
	}
}

func TestFundAddress_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, testAddress, r.URL.Query().Get("addr"))
		w.Write([]byte(`{"successful":true,"hash":"deadbeef"}`))
	}))
	defer srv.Close()

	client := NewClient(WithDiscoverer(staticDiscoverer{url: srv.URL + "/friendbot"}), WithTLSSupport(never))
	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	require.NoError(t, err)
	assert.Equal(t, stellaridentity.FundingFunded, got.Status)
}

func TestFundAddress_AlreadyFundedOnClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":400,"detail":"createAccountAlreadyExist"}`))
	}))
	defer srv.Close()

	client := NewClient(WithDiscoverer(staticDiscoverer{url: srv.URL}))
	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	require.NoError(t, err)
	assert.Equal(t, stellaridentity.FundingAlreadyFunded, got.Status)
}

func TestFundAddress_HTTPSWithTLS(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"successful":true}`))
	}))
	defer srv.Close()

	client := NewClient(
		WithDiscoverer(staticDiscoverer{url: srv.URL}),
		WithHTTPClient(net.NewClient(net.WithTransport(srv.Client().Transport))),
		WithTLSSupport(always),
	)
	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	require.NoError(t, err)
	assert.Equal(t, stellaridentity.FundingFunded, got.Status)
}

func TestFundAddress_HTTPSUnsupportedPlatform(t *testing.T) {
	var calls int32
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"successful":true}`))
	}))
	defer srv.Close()

	client := NewClient(
		WithDiscoverer(staticDiscoverer{url: srv.URL}),
		WithHTTPClient(net.NewClient(net.WithTransport(srv.Client().Transport))),
		WithTLSSupport(never),
	)
	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	assert.True(t, errors.IsCode(err, errors.PLATFORM_UNSUPPORTED), "%v", err)
	assert.Equal(t, stellaridentity.FundingFailed, got.Status)
	assert.Contains(t, err.Error(), ManualFundingURL)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFundAddress_RejectsOtherSchemes(t *testing.T) {
	client := NewClient(WithDiscoverer(staticDiscoverer{url: "ftp://friendbot.example.org/"}))
	_, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	assert.True(t, errors.IsCode(err, errors.INVALID_URL), "%v", err)
}

func TestFundAddress_NoFriendbot(t *testing.T) {
	client := NewClient(WithDiscoverer(staticDiscoverer{url: ""}))
	_, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	assert.True(t, errors.IsCode(err, errors.INVALID_URL), "%v", err)
}

func TestFundAddress_DiscoveryError(t *testing.T) {
	boom := errors.NewFundingError(errors.DISCOVERY_FAILED, "getNetwork failed", stderrors.New("boom"))
	client := NewClient(WithDiscoverer(staticDiscoverer{err: boom}))

	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	assert.True(t, errors.IsCode(err, errors.DISCOVERY_FAILED), "%v", err)
	assert.Equal(t, stellaridentity.FundingFailed, got.Status)
}

func TestFundAddress_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClient(WithDiscoverer(staticDiscoverer{url: srv.URL}))
	got, err := client.FundAddress(context.Background(), testNetwork, testAddress)
	assert.True(t, errors.IsCode(err, errors.MALFORMED_RESPONSE), "%v", err)
	assert.Equal(t, stellaridentity.FundingFailed, got.Status)
	assert.Contains(t, got.Reason, srv.URL)
}
