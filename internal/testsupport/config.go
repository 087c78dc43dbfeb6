package testsupport

import (
	"path/filepath"
	"testing"

	"takeplan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with a unique temp state directory per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Partition.Workers = 2

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithConstraints overrides the studio constraints on the test config.
func WithConstraints(c config.Constraints) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Constraints = c
	}
}

// WithOutputDir enables report files under the test base directory.
func WithOutputDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Dir = filepath.Join(b.baseDir, name)
	}
}

// WithHistoryDisabled turns off run recording.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
