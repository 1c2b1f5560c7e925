package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/luthersystems/smodr/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "smodr.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeSettings(t, `
max_stack_height: 64
trace: true
prompt: ">> "
history_file: /tmp/smodr_history
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)
	if assert.NotNil(t, s.MaxStackHeight) {
		assert.Equal(t, 64, *s.MaxStackHeight)
	}
	if assert.NotNil(t, s.Trace) {
		assert.True(t, *s.Trace)
	}
	if assert.NotNil(t, s.Prompt) {
		assert.Equal(t, ">> ", *s.Prompt)
	}
	if assert.NotNil(t, s.HistoryFile) {
		assert.Equal(t, "/tmp/smodr_history", *s.HistoryFile)
	}
}

func TestLoadSettings_partial(t *testing.T) {
	s, err := LoadSettings(writeSettings(t, "prompt: '$ '\n"))
	require.NoError(t, err)
	assert.Nil(t, s.MaxStackHeight)
	assert.Nil(t, s.Trace)
	assert.Nil(t, s.HistoryFile)
	if assert.NotNil(t, s.Prompt) {
		assert.Equal(t, "$ ", *s.Prompt)
	}

	s, err = LoadSettings(writeSettings(t, ""))
	require.NoError(t, err)
	assert.Nil(t, s.Prompt)
}

func TestLoadSettings_errors(t *testing.T) {
	_, err := LoadSettings(writeSettings(t, "max_stack_depth: 10\n"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "max_stack_height: lots\n"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "max_stack_height: -1\n"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "max_stack_height: 0\n"))
	assert.Error(t, err)

	_, err = LoadSettings(writeSettings(t, "max_stack_height: 100000000\n"))
	assert.Error(t, err)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadSettings_home(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	s, err := LoadSettings(writeSettings(t, "history_file: ~/.smodr_history\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".smodr_history"), *s.HistoryFile)
}

func TestSettings_Validate(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	for _, n := range []int{0, -5, lang.MaxStackHeightLimit + 1} {
		s.MaxStackHeight = n
		assert.Error(t, s.Validate(), "%d", n)
	}
	s.MaxStackHeight = lang.MaxStackHeightLimit
	assert.NoError(t, s.Validate())
}

func TestSettings_InterpreterConfigs(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, lang.DefaultMaxStackHeight, s.MaxStackHeight)
	s.MaxStackHeight = 7
	in, err := lang.New(s.InterpreterConfigs()...)
	require.NoError(t, err)
	assert.Equal(t, 7, in.Runtime.Stack.MaxHeight)
	assert.Nil(t, in.Runtime.Logger)

	s.Trace = true
	in, err = lang.New(s.InterpreterConfigs()...)
	require.NoError(t, err)
	assert.NotNil(t, in.Runtime.Logger)
}
