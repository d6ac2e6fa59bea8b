package main

import (
	"os"

	"github.com/cellery-io/cellery-dev/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
