package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench/internal/cli"
	"github.com/aretw0/workbench/pkg/adapters/clipboard"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive panel shell",
	Long: `Starts an interactive session with one active panel.
Type free text to run the panel's first tool, or a tool id followed by
key=value arguments. Commands: :panels, :panel <id>, :tools, :copy,
:save <path>, :quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		if !cli.IsTerminal(os.Stdin) {
			headless = true
		}

		wb, err := cli.NewWorkbench(cfg, logger, cli.NewHooks(logger, nil))
		if err != nil {
			return err
		}

		return cli.RunShell(cmd.Context(), wb, cli.ShellOptions{
			Input:         os.Stdin,
			Output:        os.Stdout,
			Headless:      headless,
			Clipboard:     clipboard.New(),
			FeedbackDelay: time.Duration(cfg.Tools.FeedbackDelay),
		})
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)

	shellCmd.Flags().Bool("headless", false, "No banner or prompts (implied when stdin is not a terminal)")

	// The shell is the default when no command is provided.
	rootCmd.RunE = shellCmd.RunE
	rootCmd.Flags().AddFlagSet(shellCmd.Flags())
}
