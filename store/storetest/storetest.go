// Package storetest is a conformance suite every stellaridentity.Store
// implementation runs from its own tests.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/secret"
)

const testSecretKey = "SC36BWNUOCZAO7DMEJNNKFV6BOTPJP7IG5PSHLUOLT6DZFRU3D3XGIXW"

// Run exercises newStore, which must return an empty store on every call.
func Run(t *testing.T, newStore func(t *testing.T) stellaridentity.Store) {
	ctx := context.Background()

	t.Run("IdentityOverwrite", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.WriteIdentity(ctx, "alice", secret.TestSeedPhrase()))
		got, err := s.ReadIdentity(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, secret.TestSeedPhrase(), got)

		require.NoError(t, s.WriteIdentity(ctx, "alice", secret.SecretKey{Key: testSecretKey}))
		got, err = s.ReadIdentity(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, secret.SecretKey{Key: testSecretKey}, got)

		names, err := s.ListIdentities(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice"}, names)
	})

	t.Run("IdentityRemove", func(t *testing.T) {
		s := newStore(t)

		require.NoError(t, s.WriteIdentity(ctx, "bob", secret.TestSeedPhrase()))
		require.NoError(t, s.WriteIdentity(ctx, "alice", secret.TestSeedPhrase()))

		names, err := s.ListIdentities(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "bob"}, names)

		require.NoError(t, s.RemoveIdentity(ctx, "bob"))
		_, err = s.ReadIdentity(ctx, "bob")
		assert.True(t, errors.IsCode(err, errors.NOT_FOUND), "%v", err)
		assert.True(t, errors.IsCode(s.RemoveIdentity(ctx, "bob"), errors.NOT_FOUND))
	})

	t.Run("NetworkReadWrite", func(t *testing.T) {
		s := newStore(t)

		alpha := stellaridentity.Network{RPCURL: "https://a", NetworkPassphrase: "PA"}
		require.NoError(t, s.WriteNetwork(ctx, "alpha", alpha))

		got, err := s.ReadNetwork(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, alpha, *got)

		_, err = s.ReadNetwork(ctx, "beta")
		assert.True(t, errors.IsCode(err, errors.NOT_FOUND), "%v", err)
	})

	t.Run("NetworkListRemove", func(t *testing.T) {
		s := newStore(t)

		names, err := s.ListNetworks(ctx)
		require.NoError(t, err)
		assert.Empty(t, names)

		require.NoError(t, s.WriteNetwork(ctx, "zeta", stellaridentity.Network{RPCURL: "http://z", NetworkPassphrase: "Z"}))
		require.NoError(t, s.WriteNetwork(ctx, "alpha", stellaridentity.Network{RPCURL: "http://a", NetworkPassphrase: "A"}))

		names, err = s.ListNetworks(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "zeta"}, names)

		require.NoError(t, s.RemoveNetwork(ctx, "zeta"))
		assert.True(t, errors.IsCode(s.RemoveNetwork(ctx, "zeta"), errors.NOT_FOUND))
	})

	t.Run("InvalidNames", func(t *testing.T) {
		s := newStore(t)

		for _, name := range []string{"", ".hidden", "a/b"} {
			err := s.WriteIdentity(ctx, name, secret.TestSeedPhrase())
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "identity %q: %v", name, err)

			err = s.WriteNetwork(ctx, name, stellaridentity.Network{RPCURL: "http://x", NetworkPassphrase: "X"})
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "network %q: %v", name, err)
		}
	})

	t.Run("InvalidNamesOnReadAndRemove", func(t *testing.T) {
		s := newStore(t)

		for _, name := range []string{"", "../x", ".hidden", `a\b`} {
			_, err := s.ReadIdentity(ctx, name)
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "read identity %q: %v", name, err)

			_, err = s.ReadNetwork(ctx, name)
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "read network %q: %v", name, err)

			err = s.RemoveIdentity(ctx, name)
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "remove identity %q: %v", name, err)

			err = s.RemoveNetwork(ctx, name)
			assert.True(t, errors.IsCode(err, errors.INVALID_NAME), "remove network %q: %v", name, err)
		}
	})
}
