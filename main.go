// main is the entry point for the snapseries CLI.
package main

import (
	"os"

	"github.com/snapseries/snapseries/cmd"
	"github.com/snapseries/snapseries/internal/contract"
	"github.com/snapseries/snapseries/internal/history"
)

func main() {
	err := cmd.Execute()

	history.CloseHistory()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}

	if err != nil {
		contract.LogFatal("Command failed", err)
	}
	os.Exit(0)
}
