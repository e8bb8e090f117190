package main

import (
	"os"

	"github.com/anton-pt/rfc-master/internal/infrastructure/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
