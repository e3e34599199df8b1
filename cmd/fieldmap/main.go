// Command fieldmap standardizes the field names of auto insurance
// spreadsheet exports.
package main

import (
	"os"

	"github.com/leapstack-labs/fieldmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
