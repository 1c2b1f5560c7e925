package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/luthersystems/smodr/lang"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [flags] FILE...",
	Short: "Run smodr code",
	Long:  `Run smodr code provided supplied via the command line or a file.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := runReadSources(args)
		if err != nil {
			return err
		}
		r := &runner{
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
			Print:   runPrint,
			Trace:   settings.Trace,
			Configs: settings.InterpreterConfigs(),
		}
		if err := r.Run(sources); err != nil {
			os.Exit(1)
		}
		return nil
	},
}

type source struct {
	Name string
	Text []byte
}

func runReadSources(args []string) ([]source, error) {
	sources := make([]source, len(args))
	if runExpression {
		for i := range args {
			sources[i] = source{Name: fmt.Sprintf("expr%d", i+1), Text: []byte(args[i])}
		}
		return sources, nil
	}
	for i, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		sources[i] = source{Name: path, Text: b}
	}
	return sources, nil
}

// runner evaluates each source with a fresh interpreter.
type runner struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Stdin   lang.LineReader
	Print   bool
	Trace   bool
	Configs []lang.Config
}

// Run stops at the first source that fails.  The failure is reported to
// r.Stderr and returned.
func (r *runner) Run(sources []source) error {
	for _, src := range sources {
		if err := r.runSource(src); err != nil {
			fmt.Fprintln(r.Stderr, err)
			var rerr *lang.RuntimeError
			if r.Trace && errors.As(err, &rerr) && rerr.Stack.Height() > 0 {
				rerr.Stack.DebugPrint(r.Stderr)
			}
			return err
		}
	}
	return nil
}

func (r *runner) runSource(src source) error {
	configs := []lang.Config{lang.WithStdout(r.Stdout), lang.WithStderr(r.Stderr)}
	if r.Stdin != nil {
		configs = append(configs, lang.WithStdin(r.Stdin))
	}
	in, err := lang.New(append(configs, r.Configs...)...)
	if err != nil {
		return err
	}
	v, err := in.Load(src.Name, bytes.NewReader(src.Text))
	if err != nil {
		return err
	}
	if r.Print && !v.IsNil() {
		fmt.Fprintln(r.Stdout, v)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as smodr source")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print the final value of each program to stdout")
}
