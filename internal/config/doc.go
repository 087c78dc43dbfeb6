// Package config loads, normalizes, and validates takeplan configuration data.
//
// It supplies repository defaults for the studio constraints, expands user paths
// (including tilde shortcuts), reads TOML files, and honours environment
// fallbacks such as TAKEPLAN_DIALOGUE_COLUMN. The Config type centralizes every
// knob the CLI and the planner need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical output formats, and validation errors that wrap
// ErrConfiguration.
package config
