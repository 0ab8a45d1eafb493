package main

import (
	"os"

	"github.com/skyform-labs/levelscout/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
