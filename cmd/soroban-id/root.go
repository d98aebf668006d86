package main

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stellar/go-stellar-sdk/support/log"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/config"
	"github.com/marwen-abid/stellar-identity-go/core/net"
	"github.com/marwen-abid/stellar-identity-go/core/rpc"
	"github.com/marwen-abid/stellar-identity-go/funding"
	"github.com/marwen-abid/stellar-identity-go/network"
	"github.com/marwen-abid/stellar-identity-go/store/badger"
	"github.com/marwen-abid/stellar-identity-go/store/file"
)

// app holds the state shared by every command of one invocation.
type app struct {
	cfg *config.Config

	configDir string
	global    bool
	logLevel  string

	// newFunder is swapped in tests.
	newFunder func() stellaridentity.Funder
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	return newApp(cfg).rootCmd()
}

func newApp(cfg *config.Config) *app {
	a := &app{cfg: cfg}
	a.newFunder = a.defaultFunder
	return a
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "soroban-id",
		Short:         "Manage Stellar identities and networks",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := config.NewLogger(a.logLevel)
			if err != nil {
				return err
			}
			l.SetOutput(cmd.ErrOrStderr())
			cmd.SetContext(log.Set(cmd.Context(), l))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "location of the config directory")
	rootCmd.PersistentFlags().BoolVar(&a.global, "global", false, "use the global config directory")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", a.cfg.LogLevel, "log level (env SOROBAN_LOG_LEVEL)")

	rootCmd.AddCommand(a.identityCmd())
	rootCmd.AddCommand(a.networkCmd())
	return rootCmd
}

// openStore opens the configured backend. The returned func releases it.
func (a *app) openStore() (stellaridentity.Store, func(), error) {
	dir, err := file.Locate(file.Options{
		ConfigDir:  a.configDir,
		Global:     a.global,
		ConfigHome: a.cfg.ConfigHome,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to locate config directory: %w", err)
	}

	switch a.cfg.Store {
	case config.StoreBadger:
		s, err := badger.Open(filepath.Join(dir, "badger"))
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default:
		return file.New(dir), func() {}, nil
	}
}

func (a *app) defaultFunder() stellaridentity.Funder {
	return funding.NewClient(
		funding.WithDiscoverer(rpc.NewClient(&http.Client{Timeout: a.cfg.FundingTimeout})),
		funding.WithHTTPClient(net.NewClient(net.WithTimeout(a.cfg.FundingTimeout), net.WithMaxRetries(0))),
	)
}

// addNetworkFlags registers the network selection flags on cmd.
func addNetworkFlags(cmd *cobra.Command, args *network.Args) {
	cmd.Flags().StringVar(&args.RPCURL, "rpc-url", "", "RPC server endpoint (env SOROBAN_RPC_URL)")
	cmd.Flags().StringVar(&args.NetworkPassphrase, "network-passphrase", "", "network passphrase (env SOROBAN_NETWORK_PASSPHRASE)")
	cmd.Flags().StringVar(&args.Network, "network", "", "name of a configured network (env SOROBAN_NETWORK)")
}

// hdPathFlag is an optional uint32 flag; nil means the flag was not given.
func hdPathFlag(cmd *cobra.Command, v *uint32) *uint32 {
	if !cmd.Flags().Changed("hd-path") {
		return nil
	}
	return v
}

func printFunding(w io.Writer, res *stellaridentity.FundingResult) {
	if res == nil {
		return
	}
	switch res.Status {
	case stellaridentity.FundingAlreadyFunded:
		fmt.Fprintln(w, "Account already exists")
	case stellaridentity.FundingFunded:
		fmt.Fprintln(w, "Account funded")
	}
}
