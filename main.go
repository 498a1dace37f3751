// Package main provides the entry point for the wordsheet CLI.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	homedir "github.com/mitchellh/go-homedir"
	gap "github.com/muesli/go-app-paths"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/wordsheet/wordsheet/internal/audio"
	"github.com/wordsheet/wordsheet/internal/playback"
	"github.com/wordsheet/wordsheet/internal/speech"
	"github.com/wordsheet/wordsheet/internal/vocab"
	"github.com/wordsheet/wordsheet/internal/watch"
	"github.com/wordsheet/wordsheet/ui"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	language   string
	watchDir   string
	mouse      bool
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "wordsheet",
		Short: "Learn vocabulary day by day, with audio",
		Long: paragraph(fmt.Sprintf(
			"\nBrowse day sheets of words, mark what you've %s, and hear every entry spoken aloud.",
			keyword("learned"),
		)),
		SilenceErrors: false,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// grab config values from Viper
			language = viper.GetString("language")
			watchDir = viper.GetString("watch")
			mouse = viper.GetBool("mouse")
			debug = viper.GetBool("debug")
			return nil
		},
		RunE: func(*cobra.Command, []string) error {
			return runTUI()
		},
	}
)

func runTUI() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("wordsheet needs a terminal to run")
	}

	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	// Flags and config file win over the environment.
	if language != "" {
		cfg.Language = language
	}
	if watchDir != "" {
		cfg.WatchDir = watchDir
	}
	if mouse {
		cfg.EnableMouse = true
	}

	synth := speech.NewGoogleTranslate(cfg.Language)
	player := audio.NewOtoPlayer()
	defer player.Close() //nolint:errcheck
	ctrl := playback.New(synth, player)

	var watcher *watch.Watcher
	if cfg.WatchDir != "" {
		dir, err := homedir.Expand(cfg.WatchDir)
		if err != nil {
			return fmt.Errorf("unable to expand watch dir: %w", err)
		}
		watcher, err = watch.New(dir)
		if err != nil {
			return fmt.Errorf("unable to watch %s: %w", dir, err)
		}
	}

	if _, err := ui.NewProgram(cfg, vocab.SeedSheets(), ctrl, watcher).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}
	return nil
}

// setupLog sends logs to a file, or nowhere. The TUI owns the
// terminal, so stderr is never an option while it runs.
func setupLog() (func() error, error) {
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if cfg.Debug || viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.Logfile == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.Logfile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("error opening log file: %w", err)
	}
	log.SetOutput(f)
	log.SetReportTimestamp(true)
	return f.Close, nil
}

func paragraph(s string) string {
	return lipgloss.NewStyle().Margin(0, 2).Render(s)
}

func keyword(s string) string {
	return termenv.String(s).Foreground(termenv.ColorProfile().Color("#EE6FF8")).String()
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.Flags().StringVarP(&language, "language", "L", "", "target language code for speech (e.g. en, de, zh-CN)")
	rootCmd.Flags().StringVarP(&watchDir, "watch", "w", "", "directory to watch for dropped .tsv sheets")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "debug logging")

	// Config bindings
	_ = viper.BindPFlag("language", rootCmd.Flags().Lookup("language"))
	_ = viper.BindPFlag("watch", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))

	viper.SetDefault("language", "")
	viper.SetDefault("watch", "")
	viper.SetDefault("mouse", false)

	rootCmd.AddCommand(configCmd, manCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "wordsheet")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find the configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "wordsheet")}, dirs...)
	}

	if c := os.Getenv("WORDSHEET_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("wordsheet")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("wordsheet")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], "wordsheet.yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
