package main

import (
	"os"

	"github.com/mrlokans/bookjournal/internal/cli"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := cli.Execute(Version + " (" + Commit + ")"); err != nil {
		logging.Log.WithError(err).Error("bookjournal failed")
		os.Exit(1)
	}
}
