// Package memory provides an in-memory implementation of stellaridentity.Store.
// Entries live in maps guarded by a sync.RWMutex. It is suitable for tests and
// for commands that must not touch disk.
package memory

import (
	"context"
	"sort"
	"sync"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/secret"
	"github.com/marwen-abid/stellar-identity-go/store"
)

// Store is an in-memory stellaridentity.Store.
type Store struct {
	identities map[string]secret.Secret
	networks   map[string]stellaridentity.Network
	mu         sync.RWMutex
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		identities: make(map[string]secret.Secret),
		networks:   make(map[string]stellaridentity.Network),
	}
}

// WriteIdentity stores s under name, replacing any previous entry.
func (s *Store) WriteIdentity(ctx context.Context, name string, sec secret.Secret) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.identities[name] = sec
	return nil
}

// ReadIdentity returns the identity stored under name.
func (s *Store) ReadIdentity(ctx context.Context, name string) (secret.Secret, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sec, exists := s.identities[name]
	if !exists {
		return nil, store.NotFound(store.KindIdentity, name)
	}
	return sec, nil
}

// ListIdentities returns all identity names, sorted.
func (s *Store) ListIdentities(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.identities), nil
}

// RemoveIdentity deletes the identity stored under name.
func (s *Store) RemoveIdentity(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.identities[name]; !exists {
		return store.NotFound(store.KindIdentity, name)
	}
	delete(s.identities, name)
	return nil
}

// WriteNetwork stores network under name, replacing any previous entry.
func (s *Store) WriteNetwork(ctx context.Context, name string, network stellaridentity.Network) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.networks[name] = network
	return nil
}

// ReadNetwork returns a copy of the network stored under name.
func (s *Store) ReadNetwork(ctx context.Context, name string) (*stellaridentity.Network, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	network, exists := s.networks[name]
	if !exists {
		return nil, store.NotFound(store.KindNetwork, name)
	}
	return &network, nil
}

// ListNetworks returns all network names, sorted.
func (s *Store) ListNetworks(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.networks), nil
}

// RemoveNetwork deletes the network stored under name.
func (s *Store) RemoveNetwork(ctx context.Context, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.networks[name]; !exists {
		return store.NotFound(store.KindNetwork, name)
	}
	delete(s.networks, name)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Verify that Store implements stellaridentity.Store
var _ stellaridentity.Store = (*Store)(nil)
