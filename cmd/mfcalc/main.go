package main

import (
	"os"

	"github.com/cloud-ru/mcp-mutualfund-go/cmd/mfcalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
