package main

import (
	"fmt"
	"os"

	"github.com/iudanet/clickvault/internal/client/cli"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := cli.Execute(buildVersion()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildVersion() string {
	return fmt.Sprintf("%s (build %s, commit %s)", Version, BuildDate, GitCommit)
}
