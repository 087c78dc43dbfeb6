package config

const (
	defaultMaxDuration                     = 30
	defaultMaxLinesPerTake                 = 10
	defaultMaxConsecutiveLinesPerCharacter = 5
	defaultMaxCharsPerLine                 = 60
	defaultMaxSilence                      = 10
	defaultFrameRate                       = 25
	defaultDialogueColumn                  = "DIALOGO"
	defaultCSVDelimiter                    = ","
	defaultOutputFormat                    = "table"
	defaultStateDir                        = "~/.local/share/takeplan"
	defaultLogFormat                       = "console"
	defaultLogLevel                        = "info"
)

// OutputFormats lists the report formats understood by the renderer.
var OutputFormats = []string{"table", "csv", "markdown", "html", "json"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Constraints: Constraints{
			MaxDuration:                     defaultMaxDuration,
			MaxLinesPerTake:                 defaultMaxLinesPerTake,
			MaxConsecutiveLinesPerCharacter: defaultMaxConsecutiveLinesPerCharacter,
			MaxCharsPerLine:                 defaultMaxCharsPerLine,
			MaxSilenceBetweenInterventions:  defaultMaxSilence,
			FrameRate:                       defaultFrameRate,
		},
		Input: Input{
			DialogueColumn: defaultDialogueColumn,
			CSVDelimiter:   defaultCSVDelimiter,
		},
		Output: Output{
			Format: defaultOutputFormat,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
		History: History{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
