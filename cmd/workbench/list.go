package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench/internal/cli"
	"github.com/aretw0/workbench/internal/presentation/tui"
	"github.com/aretw0/workbench/pkg/domain"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available tools grouped by panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := cli.NewWorkbench(cfg, logger, domain.LifecycleHooks{})
		if err != nil {
			return err
		}

		markdown := tui.CatalogueMarkdown(wb.Tools())
		render := tui.NewPlainRenderer()
		if cli.IsTerminal(os.Stdout) {
			render = tui.NewRenderer()
		}
		out, err := render(markdown)
		if err != nil {
			out = markdown
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
