// Package cli implements the bankroll command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bankroll",
	Short: "Poker bankroll tracker and settlement engine",
	Long: `bankroll tracks your poker sessions and settles home games.

Log finished sessions, review stats and a running profit line, and settle
a table, live or from a platform ledger export, into the shortest list
of who-pays-whom payments.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
