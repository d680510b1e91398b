// Package cli defines the bookjournal command line: serving the web
// application and a few administration commands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrlokans/bookjournal/internal/config"
	"github.com/mrlokans/bookjournal/internal/logging"
)

// NewRootCommand builds the command tree. Running the binary without a
// subcommand starts the server.
func NewRootCommand(version string) *cobra.Command {
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "bookjournal",
		Short:         "A personal book journal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadDotEnv()
			cfg = config.NewConfig()
			logging.Setup(cfg.Log)
		},
	}

	loadConfig := func() *config.Config { return cfg }

	serve := newServeCommand(loadConfig, version)
	root.RunE = serve.RunE
	root.AddCommand(
		serve,
		newMigrateCommand(loadConfig),
		newCreateUserCommand(loadConfig),
	)

	return root
}

// Execute runs the root command with the process arguments.
func Execute(version string) error {
	return NewRootCommand(version).Execute()
}
