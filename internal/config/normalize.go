package config

import (
	"fmt"
	"os"
	"strings"

	"takeplan/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInput()
	c.normalizeOutput()
	c.normalizeLogging()
	if c.Partition.Workers < 0 {
		c.Partition.Workers = 0
	}
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("TAKEPLAN_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Output.Dir) != "" {
		if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
			return fmt.Errorf("output.dir: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeInput() {
	if value, ok := os.LookupEnv("TAKEPLAN_DIALOGUE_COLUMN"); ok && strings.TrimSpace(value) != "" {
		c.Input.DialogueColumn = value
	}
	c.Input.DialogueColumn = strings.TrimSpace(c.Input.DialogueColumn)
	if c.Input.DialogueColumn == "" {
		c.Input.DialogueColumn = defaultDialogueColumn
	}
	if c.Input.CSVDelimiter == "" {
		c.Input.CSVDelimiter = defaultCSVDelimiter
	}
	if c.Input.CSVDelimiter == `\t` {
		c.Input.CSVDelimiter = "\t"
	}
	c.Input.ExpectedLanguage = strings.ToLower(strings.TrimSpace(c.Input.ExpectedLanguage))
	if code := language.ToISO2(c.Input.ExpectedLanguage); code != "" {
		c.Input.ExpectedLanguage = code
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	switch c.Output.Format {
	case "":
		c.Output.Format = defaultOutputFormat
	case "md":
		c.Output.Format = "markdown"
	case "text", "txt":
		c.Output.Format = "table"
	}
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("TAKEPLAN_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
