package config

const (
	defaultDataDir    = "~/.local/share/csn/data"
	defaultResultsDir = "~/.local/share/csn/results"
	defaultLogDir     = "~/.local/share/csn/logs"

	// defaultErrorThreshold is the tracker vendor's recommended maximum
	// acceptable average validation error in degrees.
	defaultErrorThreshold = 2.5
	// defaultRevalidationGapMinutes covers task overtime before the
	// post-task validation check is considered authoritative.
	defaultRevalidationGapMinutes = 60

	defaultWorkers = 4

	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			ResultsDir: defaultResultsDir,
			LogDir:     defaultLogDir,
		},
		Quality: Quality{
			ErrorThreshold:         defaultErrorThreshold,
			RevalidationGapMinutes: defaultRevalidationGapMinutes,
		},
		Pipeline: Pipeline{
			Workers: defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
