// Command docaudit uploads documents to an analysis service, shows the
// analysis it returns and asks follow-up questions about them.
package main

import (
	"os"

	"github.com/custodia-labs/docaudit-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(wire)
	cli.SetDropFolderFactory(newDropFolder)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
