package main

import (
	"os"

	"github.com/emisense/ldarsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
