package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/workbench/internal/cli"
	"github.com/aretw0/workbench/pkg/adapters/clipboard"
)

var runCmd = &cobra.Command{
	Use:   "run <tool> [key=value...]",
	Short: "Run a single tool",
	Long: `Runs one tool and prints its result.

Arguments are key=value pairs, given positionally or with --arg.
Tools that take a file (jpg_to_png, png_to_jpg) read it from --file;
tools that produce one (text_to_pdf, qr_code, text_to_image, conversions)
write it to --out.`,
	Example: `  workbench run word_count text="hello world"
  workbench run convert_temperature --arg c=100
  workbench run png_to_jpg --file photo.png --out .`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		extra, _ := cmd.Flags().GetStringArray("arg")
		file, _ := cmd.Flags().GetString("file")
		out, _ := cmd.Flags().GetString("out")
		copyOut, _ := cmd.Flags().GetBool("copy")
		jsonMode, _ := cmd.Flags().GetBool("json")

		sc := cli.NewSignalContext(cmd.Context())
		defer sc.Cancel()

		wb, err := cli.NewWorkbench(cfg, logger, cli.NewHooks(logger, nil))
		if err != nil {
			return err
		}

		err = cli.RunTool(sc, wb, cli.RunOptions{
			Tool:      args[0],
			Args:      append(args[1:], extra...),
			File:      file,
			Out:       out,
			Copy:      copyOut,
			JSON:      jsonMode,
			Color:     cli.IsTerminal(os.Stdout),
			Clipboard: clipboard.New(),
		}, os.Stdout, os.Stderr)
		if errors.Is(err, cli.ErrToolFailed) {
			// Already printed.
			os.Exit(1)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringArrayP("arg", "a", nil, "Tool argument as key=value (repeatable)")
	runCmd.Flags().StringP("file", "f", "", "Input file for upload tools")
	runCmd.Flags().StringP("out", "o", "", "Write the produced file to this path or directory")
	runCmd.Flags().Bool("copy", false, "Copy the result text to the clipboard")
	runCmd.Flags().Bool("json", false, "Print the full result as JSON")
}
