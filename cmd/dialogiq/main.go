// Package main is the entry point for the dialogiq CLI.
package main

import (
	"os"

	"github.com/dialogiq/dialogiq/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
