package main

import (
	"os"

	"github.com/imishinist/agent-metrics/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
