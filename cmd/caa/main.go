/*
caa - Commit Assistant Agent

Generates commit messages and pull request descriptions from git changes.
*/
package main

import (
	"os"

	"github.com/commit-assistant/caa/internal/cli"
)

// Version information (injected at build time)
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, GitCommit, BuildTime)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
