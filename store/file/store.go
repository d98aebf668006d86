// Package file implements stellaridentity.Store as a directory of TOML files:
//
//	<dir>/identity/<name>.toml   seed_phrase = "..." | secret_key = "..."
//	<dir>/network/<name>.toml    rpc_url = "..." and network_passphrase = "..."
//
// Writes go to a temporary file that is renamed into place, so readers never
// observe a partially written entry.
package file

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/secret"
	"github.com/marwen-abid/stellar-identity-go/store"
)

const ext = ".toml"

// Store is a TOML-directory stellaridentity.Store rooted at Dir.
type Store struct {
	dir string
}

// New returns a store rooted at dir. The directory is created on first write.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the root directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteIdentity stores sec under name, replacing any previous entry.
func (s *Store) WriteIdentity(ctx context.Context, name string, sec secret.Secret) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	return s.write(store.KindIdentity, name, secret.ToRecord(sec), 0o600)
}

// ReadIdentity returns the identity stored under name.
func (s *Store) ReadIdentity(ctx context.Context, name string) (secret.Secret, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	var rec secret.Record
	if err := s.read(store.KindIdentity, name, &rec); err != nil {
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
	return s.remove(store.KindIdentity, name)
}

// WriteNetwork stores network under name, replacing any previous entry.
func (s *Store) WriteNetwork(ctx context.Context, name string, network stellaridentity.Network) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	return s.write(store.KindNetwork, name, network, 0o644)
}

// ReadNetwork returns the network stored under name.
func (s *Store) ReadNetwork(ctx context.Context, name string) (*stellaridentity.Network, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	var network stellaridentity.Network
	if err := s.read(store.KindNetwork, name, &network); err != nil {
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
	return s.remove(store.KindNetwork, name)
}

func (s *Store) path(kind store.Kind, name string) string {
	return filepath.Join(s.dir, string(kind), name+ext)
}

func (s *Store) write(kind store.Kind, name string, v any, perm os.FileMode) error {
	dir := filepath.Join(s.dir, string(kind))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to create %s", dir), err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, "failed to create temporary file", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(v); err != nil {
		tmp.Close()
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to encode %s %q", kind, name), err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return errors.NewStoreError(errors.STORE_ERROR, "failed to set file mode", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, "failed to flush temporary file", err)
	}
	if err := os.Rename(tmp.Name(), s.path(kind, name)); err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to save %s %q", kind, name), err)
	}
	return nil
}

func (s *Store) read(kind store.Kind, name string, v any) error {
	_, err := toml.DecodeFile(s.path(kind, name), v)
	if stderrors.Is(err, fs.ErrNotExist) {
		return store.NotFound(kind, name)
	}
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to read %s %q", kind, name), err)
	}
	return nil
}

func (s *Store) list(kind store.Kind) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.dir, string(kind)))
	if stderrors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to list %s entries", kind), err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || !strings.HasSuffix(n, ext) {
			continue
		}
		names = append(names, strings.TrimSuffix(n, ext))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) remove(kind store.Kind, name string) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.path(kind, name))
	if stderrors.Is(err, fs.ErrNotExist) {
		return store.NotFound(kind, name)
	}
	if err != nil {
		return errors.NewStoreError(errors.STORE_ERROR, fmt.Sprintf("failed to remove %s %q", kind, name), err)
	}
	return nil
}

// Verify that Store implements stellaridentity.Store
var _ stellaridentity.Store = (*Store)(nil)
