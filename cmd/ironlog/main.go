// Command ironlog keeps a dated workout log in markdown files.
package main

import (
	"os"

	"github.com/aidanlsb/ironlog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
