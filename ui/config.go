package ui

// Config contains TUI-specific configuration.
type Config struct {
	// Language is the target-language code sent to the speech
	// endpoint.
	Language string `env:"WORDSHEET_LANGUAGE" envDefault:"en"`

	// WatchDir, when set, is watched for dropped .tsv sheets which are
	// imported automatically.
	WatchDir string `env:"WORDSHEET_WATCH_DIR"`

	// EnableMouse turns on mouse wheel support.
	EnableMouse bool `env:"WORDSHEET_MOUSE"`

	// Logfile is where debug logs go. The TUI owns the terminal, so
	// logging to stderr would corrupt the screen.
	Logfile string `env:"WORDSHEET_LOGFILE"`

	// Debug lowers the log level to debug.
	Debug bool `env:"WORDSHEET_DEBUG"`
}
