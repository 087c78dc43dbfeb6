package config

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"unicode/utf8"
)

// Validate ensures the configuration is usable. Every returned error wraps
// ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.Constraints.Validate(); err != nil {
		return err
	}
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

// Validate rejects limits that are not positive finite numbers. A run never starts with invalid constraints.
func (c Constraints) Validate() error {
	if err := ensurePositiveMap(map[string]float64{
		"constraints.max_duration":                        c.MaxDuration,
		"constraints.max_silence_between_interventions":   c.MaxSilenceBetweenInterventions,
		"constraints.max_lines_per_take":                  float64(c.MaxLinesPerTake),
		"constraints.max_consecutive_lines_per_character": float64(c.MaxConsecutiveLinesPerCharacter),
		"constraints.max_chars_per_line":                  float64(c.MaxCharsPerLine),
		"constraints.frame_rate":                          float64(c.FrameRate),
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInput() error {
	if utf8.RuneCountInString(c.Input.CSVDelimiter) != 1 {
		return fmt.Errorf("%w: input.csv_delimiter must be a single character", ErrConfiguration)
	}
	if lang := c.Input.ExpectedLanguage; lang != "" && len(lang) != 2 {
		return fmt.Errorf("%w: input.expected_language must be an ISO 639-1 code, got %q", ErrConfiguration, lang)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !slices.Contains(OutputFormats, c.Output.Format) {
		return fmt.Errorf("%w: output.format %q is not one of %v", ErrConfiguration, c.Output.Format, OutputFormats)
	}
	return nil
}

func ensurePositiveMap(values map[string]float64) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if v := values[key]; !(v > 0) || math.IsInf(v, 1) {
			return fmt.Errorf("%w: %s must be a positive number", ErrConfiguration, key)
		}
	}
	return nil
}
