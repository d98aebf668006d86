// Package badger implements stellaridentity.Store on a badger key-value
// database. Keys are "<kind>/<name>" and values are JSON documents:
// secret.Record for identities and stellaridentity.Network for networks.
package badger

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/secret"
	"github.com/marwen-abid/stellar-identity-go/store"
)

// Store is a badger-backed stellaridentity.Store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir.
func Open(dir string) (*Store, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Store, error) {
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.NewStoreError(errors.STORE_ERROR, "failed to open badger database", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteIdentity stores sec under name, replacing any previous entry.
func (s *Store) WriteIdentity(ctx context.Context, name string, sec secret.Secret) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	return s.put(store.KindIdentity, name, secret.ToRecord(sec))
}

// ReadIdentity returns the identity stored under name.
func (s *Store) ReadIdentity(ctx context.Context, name string) (secret.Secret, error) {
	var rec secret.Record
	if err := s.get(store.KindIdentity, name, &rec); err != nil {
		return nil, err
	}
	return secret.FromRecord(rec)
}

// ListIdentities returns all identity names, sorted.
func (s *Store) ListIdentities(ctx context.Context) ([]string, error) {
	return s.list(store.KindIdentity)
}

// RemoveIdentity deletes the identity stored under name.
func (s *Store) RemoveIdentity(ctx context.Context, name string) error {
	return s.delete(store.KindIdentity, name)
}

// WriteNetwork stores network under name, replacing any previous entry.
func (s *Store) WriteNetwork(ctx context.Context, name string, network stellaridentity.Network) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	return s.put(store.KindNetwork, name, network)
}

// ReadNetwork returns the network stored under name.
func (s *Store) ReadNetwork(ctx context.Context, name string) (*stellaridentity.Network, error) {
	var network stellaridentity.Network
	if err := s.get(store.KindNetwork, name, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// ListNetworks returns all network names, sorted.
func (s *Store) ListNetworks(ctx context.Context) ([]string, error) {
	return s.list(store.KindNetwork)
}

// RemoveNetwork deletes the network stored under name.
func (s *Store) RemoveNetwork(ctx context.Context, name string) error {
	return s.delete(store.KindNetwork, name)
}

func key(kind store.Kind, name string) []byte {
	return []byte(string(kind) + "/" + name)
}

func (s *Store) put(kind store.Kind, name string, v any) error {
	val, err := json.Marshal(v)
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to encode %s %q", kind, name), err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(kind, name), val)
	})
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to save %s %q", kind, name), err)
	}
	return nil
}

func (s *Store) get(kind store.Kind, name string, v any) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(kind, name))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return store.NotFound(kind, name)
	}
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to read %s %q", kind, name), err)
	}

	if err := json.Unmarshal(val, v); err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to decode %s %q", kind, name), err)
	}
	return nil
}

func (s *Store) list(kind store.Kind) ([]string, error) {
	prefix := []byte(string(kind) + "/")
	names := []string{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		// Badger iterates keys in byte order, so names come out sorted.
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			names = append(names, strings.TrimPrefix(string(it.Item().Key()), string(prefix)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to list %s entries", kind), err)
	}
	return names, nil
}

func (s *Store) delete(kind store.Kind, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key(kind, name)); err != nil {
			return err
		}
		return txn.Delete(key(kind, name))
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return store.NotFound(kind, name)
	}
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to remove %s %q", kind, name), err)
	}
	return nil
}

// Verify that Store implements stellaridentity.Store
var _ stellaridentity.Store = (*Store)(nil)
