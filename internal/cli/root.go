package cli

import (
	"github.com/spf13/cobra"
	"github.com/terraincognita07/coachdesk/internal/config"
)

var Version = "dev"

type rootOptions struct {
	backendURL string
	dbPath     string
	logLevel   string
	logFormat  string
	output     string
}

func (options *rootOptions) overrides() config.Overrides {
	return config.Overrides{
		BackendURL: options.backendURL,
		DBPath:     options.dbPath,
		LogLevel:   options.logLevel,
		LogFormat:  options.logFormat,
	}
}

// NewRootCommand builds the coachdesk command tree.
func NewRootCommand() *cobra.Command {
	options := &rootOptions{}

	root := &cobra.Command{
		Use:   "coachdesk",
		Short: "Web frontend and operator CLI for the coaching backend",
		Long: `coachdesk serves the coaching web app and talks to the same backend from the terminal.

Run "coachdesk serve" to start the web app, or "coachdesk login" to use the
terminal commands against the configured backend.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			_, err := parseOutputFormat(options.output)
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&options.backendURL, "backend-url", "", "Backend base URL (overrides BACKEND_URL)")
	flags.StringVar(&options.dbPath, "db-path", "", "Path of the local credential database (overrides DB_PATH)")
	flags.StringVar(&options.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&options.logFormat, "log-format", "", "Log format: console or json")
	flags.StringVarP(&options.output, "output", "o", string(outputTable), "Output format: table, json or yaml")

	root.AddCommand(
		newServeCommand(options),
		newLoginCommand(options),
		newLogoutCommand(options),
		newStatusCommand(options),
		newMoodsCommand(options),
		newLogsCommand(options),
		newFlagsCommand(options),
		newJournalsCommand(options),
		newExportCommand(options),
	)
	return root
}

// Execute is called by main.
func Execute(version string) error {
	if version != "" {
		Version = version
	}
	return NewRootCommand().Execute()
}
