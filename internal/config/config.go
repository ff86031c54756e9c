// Package config handles loading and saving user settings for abc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/lesson"
	"gopkg.in/yaml.v3"
)

// SettingsFile is the name of the settings file inside the config directory.
const SettingsFile = "settings.yaml"

// Voice holds the speech assistant settings.
type Voice struct {
	Enabled            bool    `yaml:"enabled"`
	Language           string  `yaml:"language"` // key into Languages, e.g. "fr"
	Locale             string  `yaml:"locale"`   // passed to the speech backend, e.g. "fr-FR"
	Rate               float64 `yaml:"rate"`
	AutoSpeakNewLetter bool    `yaml:"auto_speak_new_letter"`
}

// Gesture holds the recognizer settings.
type Gesture struct {
	Enabled        bool `yaml:"enabled"`
	MinTracePoints int  `yaml:"min_trace_points"`
}

// Config holds all user configuration.
type Config struct {
	Voice              Voice                      `yaml:"voice"`
	Gesture            Gesture                    `yaml:"gesture"`
	CelebrationSeconds float64                    `yaml:"celebration_seconds"`
	Languages          map[string]lesson.Language `yaml:"languages"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultSettings), &cfg); err != nil {
		panic(fmt.Sprintf("parsing built-in settings: %v", err))
	}
	return &cfg
}

// Load reads settings.yaml from dir. A missing file yields the defaults;
// fields absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, SettingsFile)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to settings.yaml in dir, creating dir if needed.
func Save(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling settings: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, SettingsFile), out, 0644); err != nil {
		return fmt.Errorf("writing settings file: %w", err)
	}

	return nil
}

// Validate checks ranges and references.
func (c *Config) Validate() error {
	var problems []string
	if c.Gesture.MinTracePoints < 1 {
		problems = append(problems, "gesture.min_trace_points must be at least 1")
	}
	if c.Voice.Rate <= 0 || c.Voice.Rate > 4 {
		problems = append(problems, "voice.rate must be in (0, 4]")
	}
	if c.CelebrationSeconds < 0 {
		problems = append(problems, "celebration_seconds must not be negative")
	}
	if _, ok := c.Languages[c.Voice.Language]; !ok {
		problems = append(problems, fmt.Sprintf("voice.language %q has no entry in languages", c.Voice.Language))
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Language returns the active language table.
func (c *Config) Language() lesson.Language {
	return c.Languages[c.Voice.Language]
}

// LanguageCodes lists the configured languages in sorted order.
func (c *Config) LanguageCodes() []string {
	codes := make([]string, 0, len(c.Languages))
	for code := range c.Languages {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CelebrationDuration is how long the success banner stays up.
func (c *Config) CelebrationDuration() time.Duration {
	return time.Duration(c.CelebrationSeconds * float64(time.Second))
}

// Recognizer builds a gesture recognizer from the settings.
func (c *Config) Recognizer(opts ...gesture.Option) *gesture.Recognizer {
	opts = append([]gesture.Option{gesture.WithMinPoints(c.Gesture.MinTracePoints)}, opts...)
	return gesture.NewRecognizer(opts...)
}

// LessonOptions returns controller options for the active language. Speech
// and tone backends are left to the caller.
func (c *Config) LessonOptions() lesson.Options {
	return lesson.Options{
		Recognizer:   c.Recognizer(),
		Language:     c.Language(),
		LanguageCode: c.Voice.Locale,
		SpeechRate:   c.Voice.Rate,
		VoiceEnabled: c.Voice.Enabled,
		AutoSpeak:    c.Voice.AutoSpeakNewLetter,
	}
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "abc"), nil
}

// NewController builds a lesson controller from the settings, with tracing
// switched off when gesture.enabled is false.
func (c *Config) NewController(speech lesson.TextToSpeech, tones lesson.ToneSynthesizer) *lesson.Controller {
	opts := c.LessonOptions()
	opts.Speech = speech
	opts.Tones = tones
	ctl := lesson.NewController(opts)
	if !c.Gesture.Enabled {
		ctl.SetTracing(false)
	}
	return ctl
}
