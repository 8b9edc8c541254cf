package main

import (
	"os"

	"github.com/technicalpickles/envsense/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(2)
	}
}
