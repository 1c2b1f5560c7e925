package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	settings   = DefaultSettings()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smodr",
	Short: "The smodr language interpreter",
	Long: `Run smodr programs from files or the command line, or explore the
language interactively.  Without a subcommand smodr starts the REPL.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadSettings(cmd); err != nil {
			return err
		}
		return settings.Validate()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Settings file (default is $HOME/.smodr.yaml)")
	rootCmd.PersistentFlags().IntVar(&settings.MaxStackHeight, "max-stack-height", settings.MaxStackHeight,
		"Maximum function call depth")
	rootCmd.PersistentFlags().BoolVar(&settings.Trace, "trace", settings.Trace,
		"Log function calls and print stack traces of runtime errors to stderr")
}

// loadSettings merges the settings file under any flags given explicitly on
// the command line.
func loadSettings(cmd *cobra.Command) error {
	path := configFile
	explicit := path != ""
	if !explicit {
		path = defaultSettingsPath()
	}
	if path == "" {
		return nil
	}
	file, err := LoadSettings(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("max-stack-height") && file.MaxStackHeight != nil {
		settings.MaxStackHeight = *file.MaxStackHeight
	}
	if !flags.Changed("trace") && file.Trace != nil {
		settings.Trace = *file.Trace
	}
	if !flags.Changed("prompt") && file.Prompt != nil {
		settings.Prompt = *file.Prompt
	}
	if !flags.Changed("history-file") && file.HistoryFile != nil {
		settings.HistoryFile = *file.HistoryFile
	}
	return nil
}
