package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stellar/go/strkey"

	stellaridentity "github.com/marwen-abid/stellar-identity-go"
	"github.com/marwen-abid/stellar-identity-go/errors"
	"github.com/marwen-abid/stellar-identity-go/identity"
	"github.com/marwen-abid/stellar-identity-go/network"
)

func (a *app) networkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Configure networks and fund accounts",
	}
	cmd.AddCommand(a.networkAddCmd())
	cmd.AddCommand(a.networkRmCmd())
	cmd.AddCommand(a.networkLsCmd())
	cmd.AddCommand(a.fundCmd())
	return cmd
}

func (a *app) networkAddCmd() *cobra.Command {
	var (
		rpcURL     string
		passphrase string
		defaults   bool
	)

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a network, or the well-known networks with --default",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			entries := map[string]stellaridentity.Network{}
			switch {
			case defaults && len(args) == 0:
				entries = network.Defaults()
			case !defaults && len(args) == 1:
				if rpcURL == "" || passphrase == "" {
					return errors.NewNetworkError(
						errors.NETWORK_ARGS_CONFLICT,
						"--rpc-url and --network-passphrase are required",
						nil,
					)
				}
				entries[args[0]] = stellaridentity.Network{RPCURL: rpcURL, NetworkPassphrase: passphrase}
			default:
				return errors.NewNetworkError(
					errors.NETWORK_ARGS_CONFLICT,
					"give either a network name or --default",
					nil,
				)
			}

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			for name, n := range entries {
				if err := s.WriteNetwork(ctx, name, n); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "RPC server endpoint")
	cmd.Flags().StringVar(&passphrase, "network-passphrase", "", "network passphrase")
	cmd.Flags().BoolVar(&defaults, "default", false, "add futurenet, testnet and local")
	return cmd
}

func (a *app) networkRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			return s.RemoveNetwork(cmd.Context(), args[0])
		},
	}
}

func (a *app) networkLsCmd() *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			names, err := s.ListNetworks(ctx)
			if err != nil {
				return err
			}
			for _, name := range names {
				if !long {
					fmt.Fprintln(cmd.OutOrStdout(), name)
					continue
				}
				n, err := s.ReadNetwork(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", name, n.RPCURL, n.NetworkPassphrase)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&long, "long", "l", false, "include rpc url and passphrase")
	return cmd
}

func (a *app) fundCmd() *cobra.Command {
	var (
		hdPath   uint32
		netFlags network.Args
	)

	cmd := &cobra.Command{
		Use:   "fund <address|identity>",
		Short: "Fund an account through the network's friendbot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			netArgs := a.cfg.NetworkArgs(netFlags)
			if err := netArgs.Validate(); err != nil {
				return err
			}

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			address := args[0]
			if !strkey.IsValidEd25519PublicKey(address) {
				if address, err = identity.Address(ctx, s, args[0], hdPathFlag(cmd, &hdPath)); err != nil {
					return err
				}
			}

			n, err := network.Resolve(ctx, netArgs, s)
			if err != nil {
				return err
			}
			res, err := a.newFunder().FundAddress(ctx, *n, address)
			printFunding(cmd.OutOrStdout(), &res)
			return err
		},
	}
	cmd.Flags().Uint32Var(&hdPath, "hd-path", 0, "account index when funding an identity")
	addNetworkFlags(cmd, &netFlags)
	return cmd
}
