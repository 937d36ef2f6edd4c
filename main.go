// main holds the entry logic for the repoguard CLI.
package main

import (
	"os"

	"github.com/huangsam/repoguard/cmd"
	"github.com/huangsam/repoguard/internal/contract"
	"github.com/huangsam/repoguard/internal/iostore"
)

// main is the entry point for the repoguard CLI.
// It wires the global store manager, runs the command tree, and
// cleans up persistence on the way out.
func main() {
	cmd.SetStoreManager(iostore.Manager)

	err := cmd.Execute()

	// Close stores before exiting; deferred calls would be skipped by os.Exit.
	iostore.CloseStores()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Cannot stop profiling", profErr)
	}

	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
