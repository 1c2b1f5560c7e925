package cmd

import (
	"github.com/luthersystems/smodr/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Read, evaluate, and print smodr statements interactively.  Definitions
persist for the whole session.  Type exit or press Ctrl-D to leave, Ctrl-C
discards a partially entered statement.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

func runRepl() error {
	return repl.RunRepl(settings.Prompt,
		repl.WithHistoryFile(settings.HistoryFile),
		repl.WithStackTrace(settings.Trace),
		repl.WithInterpreter(settings.InterpreterConfigs()...))
}

func init() {
	rootCmd.AddCommand(replCmd)

	for _, cmd := range []*cobra.Command{rootCmd, replCmd} {
		cmd.Flags().StringVar(&settings.Prompt, "prompt", settings.Prompt,
			"Primary REPL prompt")
		cmd.Flags().StringVar(&settings.HistoryFile, "history-file", settings.HistoryFile,
			"File in which REPL history is saved")
	}
}
