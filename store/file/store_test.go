package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/secret"
	"github.com/marwen-abid/stellar-identity-go/store/storetest"
)

func TestStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) stellaridentity.Store {
		return New(t.TempDir())
	})
}

func TestStore_FileLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := New(dir)

	require.NoError(t, s.WriteIdentity(ctx, "alice", secret.TestSeedPhrase()))
	require.NoError(t, s.WriteNetwork(ctx, "alpha", stellaridentity.Network{RPCURL: "https://a", NetworkPassphrase: "PA"}))

	identity, err := os.ReadFile(filepath.Join(dir, "identity", "alice.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(identity), `seed_phrase = "`+secret.TestPhrase+`"`)
	assert.NotContains(t, string(identity), "secret_key")

	info, err := os.Stat(filepath.Join(dir, "identity", "alice.toml"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	network, err := os.ReadFile(filepath.Join(dir, "network", "alpha.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(network), `rpc_url = "https://a"`)
	assert.Contains(t, string(network), `network_passphrase = "PA"`)
}

func TestStore_ReadsHandWrittenEntries(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "network"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "network", "local.toml"),
		[]byte("rpc_url = \"http://localhost:8000/soroban/rpc\"\nnetwork_passphrase = \"Standalone Network ; February 2017\"\n"),
		0o644,
	))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "network", "notes.txt"), []byte("ignored"), 0o644))

	s := New(dir)
	got, err := s.ReadNetwork(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/soroban/rpc", got.RPCURL)
	assert.Equal(t, "Standalone Network ; February 2017", got.NetworkPassphrase)

	names, err := s.ListNetworks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"local"}, names)
}

func TestStore_CorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "identity"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity", "bad.toml"), []byte("seed_phrase = [unterminated"), 0o600))

	_, err := New(dir).ReadIdentity(ctx, "bad")
	assert.True(t, errors.IsCode(err, errors.STORE_ERROR), "%v", err)
}

func TestLocate(t *testing.T) {
	explicit := t.TempDir()
	dir, err := Locate(Options{ConfigDir: explicit, Global: true})
	require.NoError(t, err)
	assert.Equal(t, explicit, dir)

	home := t.TempDir()
	dir, err = Locate(Options{Global: true, ConfigHome: home})
	require.NoError(t, err)
	assert.Equal(t, home, dir)
}

func TestFindLocal(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, filepath.Join(nested, LocalDirName), findLocal(nested))

	require.NoError(t, os.Mkdir(filepath.Join(root, LocalDirName), 0o755))
	assert.Equal(t, filepath.Join(root, LocalDirName), findLocal(nested))
}
