package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func newCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "runtime_state",
		Short:         "Drive the built-in runtime modules against a state database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a yaml config file")
	root.AddCommand(
		newKeygenCommand(),
		newMintCommand(),
		newTransferCommand(),
		newCheckInCommand(),
		newBalanceCommand(),
		newGuestCommand(),
		newRootCommand(),
		newProveCommand(),
	)
	return root
}

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
