package main

import (
	"os"

	"github.com/janx2/subwriter/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
