package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/danieljhkim/cleanslate/internal/clock"
	"github.com/danieljhkim/cleanslate/internal/config"
	"github.com/danieljhkim/cleanslate/internal/dataset"
	"github.com/danieljhkim/cleanslate/internal/engine"
	"github.com/danieljhkim/cleanslate/internal/fsops"
	"github.com/danieljhkim/cleanslate/internal/hash"
	"github.com/danieljhkim/cleanslate/internal/state"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	// Get default paths
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	// Ensure directories exist
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfgFile := configFile
	if cfgFile == "" {
		cfgFile = paths.Config
	}
	settings, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	// Create real implementations
	fs := fsops.NewRealFS()
	datasets := dataset.NewFileStore(fs, hash.NewSHA256Hasher())
	stateStore := state.NewFileStateStore(fs, paths.Sessions)

	// Create engine
	return engine.New(datasets, stateStore, &clock.RealClock{}, settings), nil
}

// resolveOutputFormat combines --json and --output.
func resolveOutputFormat() (string, error) {
	if jsonOutput {
		return formatJSON, nil
	}
	switch f := strings.ToLower(strings.TrimSpace(outputFormat)); f {
	case "", formatText:
		return formatText, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, json or yaml)", outputFormat)
	}
}

// render writes v in the selected structured format, or calls text for
// human-readable output.
func render(v interface{}, text func() error) error {
	format, err := resolveOutputFormat()
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		return outputJSON(v)
	case formatYAML:
		return outputYAML(v)
	default:
		return text()
	}
}

// marshalIndentJSON formats a value as indented JSON.
func marshalIndentJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// formatError formats an error for display.
func formatError(err error) string {
	return errorColor.Sprintf("Error: %v", err)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputYAML outputs a value as YAML to stdout.
func outputYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}
