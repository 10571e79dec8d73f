package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of workbench",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("workbench version %s\n", strings.TrimSpace(workbench.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
