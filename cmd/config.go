package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/luthersystems/smodr/lang"
	"gopkg.in/yaml.v3"
)

// Settings control the interpreter and REPL.
type Settings struct {
	MaxStackHeight int
	Trace          bool
	Prompt         string
	HistoryFile    string
}

// DefaultSettings returns the settings used when neither a settings file nor
// flags say otherwise.
func DefaultSettings() Settings {
	return Settings{
		MaxStackHeight: lang.DefaultMaxStackHeight,
		Prompt:         "smodr> ",
	}
}

// SettingsFile is the contents of a YAML settings file.  Fields which are
// absent from the file are nil.
type SettingsFile struct {
	MaxStackHeight *int    `yaml:"max_stack_height"`
	Trace          *bool   `yaml:"trace"`
	Prompt         *string `yaml:"prompt"`
	HistoryFile    *string `yaml:"history_file"`
}

// LoadSettings parses the settings file at path.  Unknown keys are an error.
// An empty file yields empty settings.
func LoadSettings(path string) (*SettingsFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var s SettingsFile
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	if s.MaxStackHeight != nil {
		if err := lang.CheckStackHeight(*s.MaxStackHeight); err != nil {
			return nil, fmt.Errorf("settings: %s: max_stack_height: %w", path, err)
		}
	}
	if s.HistoryFile != nil {
		expanded := expandHome(*s.HistoryFile)
		s.HistoryFile = &expanded
	}
	return &s, nil
}

// Validate returns an error if s holds a value the interpreter would reject.
func (s Settings) Validate() error {
	if err := lang.CheckStackHeight(s.MaxStackHeight); err != nil {
		return fmt.Errorf("max-stack-height: %w", err)
	}
	return nil
}

// InterpreterConfigs returns the interpreter configuration described by s.
func (s Settings) InterpreterConfigs() []lang.Config {
	configs := []lang.Config{lang.WithMaximumStackHeight(s.MaxStackHeight)}
	if s.Trace {
		configs = append(configs, lang.WithLogger(log.New(os.Stderr, "trace: ", 0)))
	}
	return configs
}

func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".smodr.yaml")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
