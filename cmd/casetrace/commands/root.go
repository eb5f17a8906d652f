package commands

import (
	"casetrace-backend/internal/components/telemetry"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath *string
	dbPath     *string
	debug      *bool
	dumpHttp   *string

	cfg Config
)

func init() {
	flags := rootCmd.PersistentFlags()
	configPath = flags.String("config", "config.json5", "The config file, <name>.local.json5 is merged on top of it.")
	dbPath = flags.String("db", "", "The sqlite database to use, overrides database.file.")
	debug = flags.Bool("debug", false, "Print debug logs.")
	dumpHttp = flags.String("dump-http", "", "A directory to write every lookup request and response to.")
}

var rootCmd = &cobra.Command{
	Use:   "casetrace",
	Short: "casetrace scrapes connecticut foreclosure cases and skip traces their property owners.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(*debug)

		loaded, err := LoadConfig(*configPath)
		if err != nil {
			return err
		}
		if *dbPath != "" {
			loaded.Database.File = *dbPath
			loaded.Database.Url = ""
		}
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}
