package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// ErrConfiguration marks configuration values that make a run impossible.
var ErrConfiguration = errors.New("configuration error")

// Constraints contains the studio limits applied to every take.
type Constraints struct {
	MaxDuration                     float64 `toml:"max_duration" json:"max_duration"`
	MaxLinesPerTake                 int     `toml:"max_lines_per_take" json:"max_lines_per_take"`
	MaxConsecutiveLinesPerCharacter int     `toml:"max_consecutive_lines_per_character" json:"max_consecutive_lines_per_character"`
	MaxCharsPerLine                 int     `toml:"max_chars_per_line" json:"max_chars_per_line"`
	MaxSilenceBetweenInterventions  float64 `toml:"max_silence_between_interventions" json:"max_silence_between_interventions"`
	FrameRate                       int     `toml:"frame_rate" json:"frame_rate"`
}

// Input describes how scripts are read.
type Input struct {
	DialogueColumn   string `toml:"dialogue_column"`
	CSVDelimiter     string `toml:"csv_delimiter"`
	ExpectedLanguage string `toml:"expected_language"`
}

// Output describes how reports are rendered.
type Output struct {
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Partition tunes the scene partitioner.
type Partition struct {
	Workers int `toml:"workers"`
}

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// History toggles run recording.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for takeplan.
//
// Configuration sections by subsystem:
//   - Constraints: take limits used by the optimizer
//   - Input: dialogue column and CSV parsing
//   - Output: report format and optional output directory
//   - Partition: scene-level parallelism
//   - Paths: state directory for history and the run lock
//   - History: run recording toggle
//   - Logging: log format and level
type Config struct {
	Constraints Constraints `toml:"constraints"`
	Input       Input       `toml:"input"`
	Output      Output      `toml:"output"`
	Partition   Partition   `toml:"partition"`
	Paths       Paths       `toml:"paths"`
	History     History     `toml:"history"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/takeplan/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("takeplan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and, when configured, the
// report output directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.StateDir}
	if strings.TrimSpace(c.Output.Dir) != "" {
		dirs = append(dirs, c.Output.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath is the SQLite database recording past runs.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LockPath is the lock file held while a run records its results.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "takeplan.lock")
}

// Encode renders the configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
