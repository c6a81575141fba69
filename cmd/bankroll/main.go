// Command bankroll is the poker bankroll tracker CLI and API daemon.
package main

import (
	"os"

	"github.com/bankrollbuddy/bankroll/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
