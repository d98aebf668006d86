package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/marwen-abid/stellar-identity-go/errors"
)

// LocalDirName is the project-local configuration directory.
const LocalDirName = ".soroban"

// Options selects where the store lives.
type Options struct {
	// ConfigDir, when set, is used as-is.
	ConfigDir string

	// Global selects the per-user directory instead of the project one.
	Global bool

	// ConfigHome overrides the per-user directory (SOROBAN_CONFIG_HOME).
	ConfigHome string
}

// Locate resolves the store directory:
//  1. Options.ConfigDir when set.
//  2. With Global, ConfigHome or ~/.config/soroban.
//  3. Otherwise the nearest .soroban directory at or above the working
//     directory, falling back to ./.soroban.
func Locate(opts Options) (string, error) {
	if opts.ConfigDir != "" {
		return homedir.Expand(opts.ConfigDir)
	}

	if opts.Global {
		if opts.ConfigHome != "" {
			return homedir.Expand(opts.ConfigHome)
		}
		home, err := homedir.Dir()
		if err != nil {
			return "", errors.NewStoreError(errors.STORE_ERROR, "failed to determine home directory", err)
		}
		return filepath.Join(home, ".config", "soroban"), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.NewStoreError(errors.STORE_ERROR, "failed to determine working directory", err)
	}
	return findLocal(cwd), nil
}

// Open resolves the directory with Locate and returns a store rooted there.
func Open(opts Options) (*Store, error) {
	dir, err := Locate(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to locate config directory: %w", err)
	}
	return New(dir), nil
}

func findLocal(start string) string {
	for dir := start; ; {
		candidate := filepath.Join(dir, LocalDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(start, LocalDirName)
		}
		dir = parent
	}
}
