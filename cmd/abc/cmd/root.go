// Package cmd contains all CLI commands for abc.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/llm"
	"github.com/f3rmion/abc/internal/samples"
	"github.com/f3rmion/abc/internal/speech"
	"github.com/f3rmion/abc/internal/tui"
	"github.com/f3rmion/abc/internal/tui/views"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "abc",
	Short: "Trace the letters of the alphabet",
	Long: `abc is a letter tracing game for young children.

Each letter is shown large on screen. The child traces it with the mouse in
one continuous stroke and a freehand recognizer decides whether the shape
matches. A voice says the letter and cheers on success.

Running 'abc' without arguments launches the interactive TUI.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !viper.GetBool("verbose") {
			log.SetOutput(io.Discard)
		}
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config directory (default is $HOME/.config/abc)")
	pf.Bool("verbose", false, "verbose output")
	pf.Bool("debug", false, "write a debug log to abc-debug.log")
	pf.Int("min-points", 0, "minimum points in a stroke (overrides settings)")
	pf.String("lang", "", "language table to use, e.g. fr or en (overrides settings)")
	pf.Bool("no-voice", false, "disable speech")
	pf.String("db", "", "sample database path (default is <config>/samples.db)")

	viper.BindPFlag("verbose", pf.Lookup("verbose"))
	viper.BindPFlag("debug", pf.Lookup("debug"))
	viper.BindPFlag("min_points", pf.Lookup("min-points"))
	viper.BindPFlag("lang", pf.Lookup("lang"))
	viper.BindPFlag("no_voice", pf.Lookup("no-voice"))
	viper.BindPFlag("db", pf.Lookup("db"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.Set("config_dir", cfgFile)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.Set("config_dir", dir)
	}

	viper.SetEnvPrefix("ABC")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// loadConfig reads settings.yaml and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigDir())
	if err != nil {
		return nil, err
	}
	applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

func applyOverrides(cfg *config.Config) {
	if n := viper.GetInt("min_points"); n > 0 {
		cfg.Gesture.MinTracePoints = n
	}
	if lang := viper.GetString("lang"); lang != "" {
		cfg.Voice.Language = lang
	}
	if viper.GetBool("no_voice") {
		cfg.Voice.Enabled = false
	}
}

// newSpeech picks the platform speech command, or a silent stand-in.
func newSpeech() lesson.TextToSpeech {
	sys, err := speech.NewSystem()
	if err != nil {
		log.Printf("speech: %v", err)
		return speech.Nop{}
	}
	log.Printf("speech: using %s", sys.Name())
	return sys
}

// newTones picks the platform audio player, falling back to the terminal bell.
func newTones() lesson.ToneSynthesizer {
	p, err := speech.NewPlayer()
	if err != nil {
		log.Printf("tones: %v", err)
		return speech.Bell{W: os.Stderr}
	}
	return p
}

// dbPath returns the sample database location.
func dbPath() string {
	if p := viper.GetString("db"); p != "" {
		return p
	}
	return filepath.Join(getConfigDir(), "samples.db")
}

// openStore opens the sample database, creating its directory.
func openStore(ctx context.Context) (*samples.Store, error) {
	path := dbPath()
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	return samples.Open(ctx, path)
}

// runTUI launches the TUI application.
func runTUI(cmd *cobra.Command, args []string) error {
	if viper.GetBool("debug") {
		f, err := tea.LogToFile("abc-debug.log", "abc")
		if err != nil {
			return fmt.Errorf("opening debug log: %w", err)
		}
		defer f.Close()
	} else {
		// Anything on stderr would tear the alt screen.
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	deps := views.Deps{
		Config:    cfg,
		ConfigDir: getConfigDir(),
		Speech:    newSpeech(),
		Tones:     newTones(),
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		// The TUI works without samples.
		log.Printf("samples disabled: %v", err)
	} else {
		defer store.Close()
		deps.Samples = store
	}

	if client, err := llm.NewClient(); err == nil {
		deps.Hints = client.LetterHint
	} else {
		log.Printf("hints disabled: %v", err)
	}

	return tui.Run(deps)
}
