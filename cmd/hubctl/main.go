package main

import (
	"fmt"
	"os"

	"github.com/imec-intel/hub/internal/config"
	"github.com/imec-intel/hub/pkg/logger"
	"github.com/imec-intel/hub/pkg/logger/console"

	"github.com/spf13/cobra"
)

var Version = "dev"

type app struct {
	cfg *config.Config
}

func NewRootCommand() *cobra.Command {
	a := &app{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "hubctl",
		Short:         "Operate the IMEC intelligence catalog",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
				Debug:  cfg.Debug || verbose,
				Format: cfg.LogFormat,
				Prefix: "hubctl",
				Output: cmd.ErrOrStderr(),
			}))
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(a.migrateCmd())
	rootCmd.AddCommand(a.seedCmd())
	rootCmd.AddCommand(a.demoCmd())

	return rootCmd
}

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
