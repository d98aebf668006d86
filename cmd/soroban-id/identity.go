package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marwen-abid/stellar-identity-go/identity"
	"github.com/marwen-abid/stellar-identity-go/network"
)

func (a *app) identityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "identity",
		Aliases: []string{"keys"},
		Short:   "Create and inspect identities",
	}
	cmd.AddCommand(a.generateCmd())
	cmd.AddCommand(a.addressCmd())
	cmd.AddCommand(a.showCmd())
	cmd.AddCommand(a.identityLsCmd())
	cmd.AddCommand(a.identityRmCmd())
	return cmd
}

func (a *app) generateCmd() *cobra.Command {
	var (
		seed        string
		defaultSeed bool
		asSecret    bool
		hdPath      uint32
		netFlags    network.Args
	)

	cmd := &cobra.Command{
		Use:   "generate <name>",
		Short: "Generate a new identity, funding it when a network is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			opts := identity.GenerateOptions{
				Name:        args[0],
				DefaultSeed: defaultSeed,
				AsSecret:    asSecret,
				HDPath:      hdPathFlag(cmd, &hdPath),
				Network:     a.cfg.NetworkArgs(netFlags),
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = &seed
			}

			gen, err := identity.NewGenerator(s, a.newFunder()).Generate(ctx, opts)
			if gen != nil {
				printFunding(cmd.OutOrStdout(), gen.Funding)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&seed, "seed", "", "seed used to generate the phrase deterministically")
	cmd.Flags().BoolVarP(&defaultSeed, "default-seed", "d", false, "use the default test seed phrase")
	cmd.Flags().BoolVarP(&asSecret, "as-secret", "s", false, "store the secret key instead of the seed phrase")
	cmd.Flags().Uint32Var(&hdPath, "hd-path", 0, "account index to derive")
	addNetworkFlags(cmd, &netFlags)
	return cmd
}

func (a *app) addressCmd() *cobra.Command {
	var hdPath uint32

	cmd := &cobra.Command{
		Use:   "address <name>",
		Short: "Print the public address of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			addr, err := identity.Address(cmd.Context(), s, args[0], hdPathFlag(cmd, &hdPath))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addr)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&hdPath, "hd-path", 0, "account index to derive")
	return cmd
}

func (a *app) showCmd() *cobra.Command {
	var hdPath uint32

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the secret key of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			key, err := identity.Show(cmd.Context(), s, args[0], hdPathFlag(cmd, &hdPath))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	cmd.Flags().Uint32Var(&hdPath, "hd-path", 0, "account index to derive")
	return cmd
}

func (a *app) identityLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			names, err := s.ListIdentities(cmd.Context())
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		},
	}
}

func (a *app) identityRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, closeStore, err := a.openStore()
			if err != nil {
				return err
			}
			defer closeStore()

			return s.RemoveIdentity(cmd.Context(), args[0])
		},
	}
}
