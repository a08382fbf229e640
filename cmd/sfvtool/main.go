package main

import (
	"os"

	"github.com/sfv-go/sfv/cmd/sfvtool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
