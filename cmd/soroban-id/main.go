// Command soroban-id manages Stellar identities and network entries, and funds
// accounts through a network's friendbot.
package main

import (
	"fmt"
	"os"

	"github.com/marwen-abid/stellar-identity-go/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := newRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
