package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/config"
	"github.com/marwen-abid/stellar-identity-go/errors"
)

const (
	testAddress0 = "GDIY6AQQ75WMD4W46EYB7O6UYMHOCGQHLAQGQTKHDX4J2DYQCHVCR4W4"
	testSecret0  = "SC36BWNUOCZAO7DMEJNNKFV6BOTPJP7IG5PSHLUOLT6DZFRU3D3XGIXW"
	testAddress1 = "GCKZUJVUNEFGD4HLFBUNVYM2QY2P5WQQZMGRA3DDL4HYVT5MW5KG3ODV"
)

type fakeFunder struct {
	networks  []stellaridentity.Network
	addresses []string
}

func (f *fakeFunder) FundAddress(ctx context.Context, n stellaridentity.Network, address string) (stellaridentity.FundingResult, error) {
	f.networks = append(f.networks, n)
	f.addresses = append(f.addresses, address)
	return stellaridentity.FundingResult{Status: stellaridentity.FundingFunded}, nil
}

func testConfig(store string) *config.Config {
	return &config.Config{Store: store, LogLevel: "error", FundingTimeout: time.Second}
}

// run executes one command against dir and returns its stdout.
func run(t *testing.T, cfg *config.Config, funder *fakeFunder, dir string, args ...string) (string, error) {
	t.Helper()
	a := newApp(cfg)
	if funder != nil {
		a.newFunder = func() stellaridentity.Funder { return funder }
	}
	root := a.rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--config-dir", dir}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenerateThenAddressAndShow(t *testing.T) {
	for _, backend := range []string{config.StoreFile, config.StoreBadger} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			cfg := testConfig(backend)

			_, err := run(t, cfg, nil, dir, "identity", "generate", "alice", "-d")
			require.NoError(t, err)

			out, err := run(t, cfg, nil, dir, "identity", "address", "alice")
			require.NoError(t, err)
			assert.Equal(t, testAddress0, strings.TrimSpace(out))

			out, err = run(t, cfg, nil, dir, "identity", "address", "alice", "--hd-path", "1")
			require.NoError(t, err)
			assert.Equal(t, testAddress1, strings.TrimSpace(out))

			out, err = run(t, cfg, nil, dir, "identity", "show", "alice")
			require.NoError(t, err)
			assert.Equal(t, testSecret0, strings.TrimSpace(out))

			out, err = run(t, cfg, nil, dir, "identity", "ls")
			require.NoError(t, err)
			assert.Equal(t, "alice\n", out)

			_, err = run(t, cfg, nil, dir, "identity", "rm", "alice")
			require.NoError(t, err)
			_, err = run(t, cfg, nil, dir, "identity", "address", "alice")
			assert.True(t, errors.IsCode(err, errors.NOT_FOUND), "%v", err)
		})
	}
}

func TestGenerate_SeedConflict(t *testing.T) {
	_, err := run(t, testConfig(config.StoreFile), nil, t.TempDir(),
		"identity", "generate", "x", "--seed", "0000000000000000", "-d")
	assert.True(t, errors.IsCode(err, errors.SEED_CONFLICT), "%v", err)
}

func TestGenerate_FundsOnConfiguredNetwork(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(config.StoreFile)
	funder := &fakeFunder{}

	_, err := run(t, cfg, nil, dir, "network", "add", "--default")
	require.NoError(t, err)

	out, err := run(t, cfg, funder, dir, "identity", "generate", "bob", "-d", "--network", "testnet")
	require.NoError(t, err)
	assert.Contains(t, out, "Account funded")
	require.Len(t, funder.addresses, 1)
	assert.Equal(t, testAddress0, funder.addresses[0])
	assert.Equal(t, "Test SDF Network ; September 2015", funder.networks[0].NetworkPassphrase)
}

func TestGenerate_EnvNetworkConflictsWithFlag(t *testing.T) {
	cfg := testConfig(config.StoreFile)
	cfg.RPCURL = "https://env"
	cfg.NetworkPassphrase = "ENV"

	_, err := run(t, cfg, &fakeFunder{}, t.TempDir(), "identity", "generate", "x", "-d", "--network", "testnet")
	assert.True(t, errors.IsCode(err, errors.NETWORK_ARGS_CONFLICT), "%v", err)
}

func TestNetworkAddLsRm(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(config.StoreFile)

	_, err := run(t, cfg, nil, dir, "network", "add", "mine", "--rpc-url", "http://localhost:8000/rpc", "--network-passphrase", "P")
	require.NoError(t, err)

	out, err := run(t, cfg, nil, dir, "network", "ls", "--long")
	require.NoError(t, err)
	assert.Equal(t, "mine\thttp://localhost:8000/rpc\tP\n", out)

	_, err = run(t, cfg, nil, dir, "network", "rm", "mine")
	require.NoError(t, err)

	out, err = run(t, cfg, nil, dir, "network", "ls")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, cfg, nil, dir, "network", "add", "half", "--rpc-url", "http://x")
	assert.True(t, errors.IsCode(err, errors.NETWORK_ARGS_CONFLICT), "%v", err)

	_, err = run(t, cfg, nil, dir, "network", "add", "mine", "--default")
	assert.True(t, errors.IsCode(err, errors.NETWORK_ARGS_CONFLICT), "%v", err)

	_, err = run(t, cfg, nil, dir, "network", "add")
	assert.True(t, errors.IsCode(err, errors.NETWORK_ARGS_CONFLICT), "%v", err)
}

func TestFund(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(config.StoreFile)
	funder := &fakeFunder{}

	_, err := run(t, cfg, nil, dir, "identity", "generate", "carol", "-d")
	require.NoError(t, err)

	_, err = run(t, cfg, funder, dir, "network", "fund", testAddress1, "--rpc-url", "http://rpc", "--network-passphrase", "P")
	require.NoError(t, err)
	_, err = run(t, cfg, funder, dir, "network", "fund", "carol", "--rpc-url", "http://rpc", "--network-passphrase", "P")
	require.NoError(t, err)

	assert.Equal(t, []string{testAddress1, testAddress0}, funder.addresses)

	_, err = run(t, cfg, funder, dir, "network", "fund", "carol")
	assert.True(t, errors.IsCode(err, errors.NETWORK_REQUIRED), "%v", err)
}
