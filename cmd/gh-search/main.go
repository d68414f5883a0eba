package main

import (
	"errors"
	"os"

	"github.com/custodia-labs/ghsearch-cli/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
