package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/smodr/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner{Stdout: &stdout, Stderr: &stderr, Print: true}
	err := r.Run([]source{
		{Name: "a", Text: []byte("x = 2\nprint('x is', x)\nx * 21")},
		{Name: "b", Text: []byte("print(x)")},
	})
	assert.Error(t, err)
	assert.True(t, lang.IsKind(err, lang.UndefinedVariable))
	assert.Equal(t, "x is 2\n42\n", stdout.String())
	assert.Equal(t, "b:1:7: undefined-variable: undefined variable: x\n", stderr.String())
}

func TestRunner_noPrint(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner{Stdout: &stdout, Stderr: &stderr}
	require.NoError(t, r.Run([]source{{Name: "a", Text: []byte("1 + 1")}}))
	assert.Equal(t, "", stdout.String())

	r.Print = true
	require.NoError(t, r.Run([]source{{Name: "a", Text: []byte("print('only output')")}}))
	assert.Equal(t, "only output\n", stdout.String())
}

func TestRunner_input(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner{
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  lang.NewLineReader(strings.NewReader("3\n")),
	}
	require.NoError(t, r.Run([]source{{Name: "a", Text: []byte("print(int(input('n: ')) * 2)")}}))
	assert.Equal(t, "n: 6\n", stdout.String())
}

func TestRunner_trace(t *testing.T) {
	var stdout, stderr bytes.Buffer
	r := &runner{
		Stdout:  &stdout,
		Stderr:  &stderr,
		Trace:   true,
		Configs: []lang.Config{lang.WithMaximumStackHeight(5)},
	}
	err := r.Run([]source{{Name: "deep", Text: []byte("DEFINE f() { RETURN f() }\nf()")}})
	assert.True(t, lang.IsKind(err, lang.RecursionLimitExceeded))
	assert.Contains(t, stderr.String(), "maximum call depth of 5 exceeded calling f")
	assert.Contains(t, stderr.String(), "Stack Trace [5 frames -- entrypoint last]:")
}

func TestRunReadSources(t *testing.T) {
	defer func() { runExpression = false }()

	runExpression = true
	sources, err := runReadSources([]string{"x = 1", "print(2)"})
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "expr1", sources[0].Name)
	assert.Equal(t, "print(2)", string(sources[1].Text))

	runExpression = false
	path := filepath.Join(t.TempDir(), "prog.smodr")
	require.NoError(t, os.WriteFile(path, []byte("STOP"), 0o600))
	sources, err = runReadSources([]string{path})
	require.NoError(t, err)
	assert.Equal(t, path, sources[0].Name)
	assert.Equal(t, "STOP", string(sources[0].Text))

	_, err = runReadSources([]string{filepath.Join(t.TempDir(), "missing.smodr")})
	assert.Error(t, err)
}
