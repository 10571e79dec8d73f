package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench/internal/cli"
	"github.com/aretw0/workbench/internal/config"
)

var (
	cfg    config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "workbench",
	Short: "Workbench is a toolkit of small text, unit, image and document tools",
	Long: `Workbench bundles stateless utility tools (word counter, case converter,
unit and health calculators, password generator, URL/Base64/JSON codecs,
QR codes, text to PDF or image, JPG/PNG conversion) behind a CLI,
an interactive shell, an HTTP API and an MCP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		l, err := cli.NewLogger(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Settings file (.yaml or .json)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error or off")
}
