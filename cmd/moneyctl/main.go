// Command moneyctl manages the ledger from the terminal, using the same
// store configuration as the API server.
package main

import (
	"fmt"
	"os"

	"github.com/HeyDYF/Money-Manager/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := newRootCmd(&cli{}).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
