// Package speech reads text aloud and plays feedback tones using whatever
// speech and audio commands the platform provides.
package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
)

// ErrUnavailable is returned when no speech or audio command is installed.
var ErrUnavailable = errors.New("no supported command found")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// backend describes one command line speech program.
type backend struct {
	name string
	args func(text, lang string, rate float64) []string
}

var (
	sayBackend = backend{name: "say", args: func(text, lang string, rate float64) []string {
		args := []string{"-r", strconv.Itoa(wordsPerMinute(rate))}
		if voice, ok := sayVoices[languagePrefix(lang)]; ok {
			args = append(args, "-v", voice)
		}
		return append(args, text)
	}}
	espeakNGBackend = backend{name: "espeak-ng", args: espeakArgs}
	espeakBackend   = backend{name: "espeak", args: espeakArgs}
	spdBackend      = backend{name: "spd-say", args: func(text, lang string, rate float64) []string {
		// spd-say rates run from -100 to 100 around the voice default.
		r := int((rate - 1) * 100)
		r = max(-100, min(100, r))
		args := []string{"-w", "-r", strconv.Itoa(r)}
		if code := languagePrefix(lang); code != "" {
			args = append(args, "-l", code)
		}
		return append(args, text)
	}}
	powershellBackend = backend{name: "powershell", args: func(text, _ string, rate float64) []string {
		// SAPI rates run from -10 to 10.
		r := int((rate - 1) * 10)
		r = max(-10, min(10, r))
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; $s = New-Object System.Speech.Synthesis.SpeechSynthesizer; $s.Rate = %d; $s.Speak('%s')",
			r, strings.ReplaceAll(text, "'", "''"))
		return []string{"-NoProfile", "-Command", script}
	}}
)

// sayVoices maps a language prefix to a macOS voice shipped with the system.
// Other languages use the default voice.
var sayVoices = map[string]string{
	"en": "Samantha",
	"fr": "Thomas",
	"de": "Anna",
	"es": "Monica",
	"it": "Alice",
	"nl": "Xander",
	"pt": "Luciana",
}

func espeakArgs(text, lang string, rate float64) []string {
	args := []string{"-s", strconv.Itoa(wordsPerMinute(rate))}
	if code := languagePrefix(lang); code != "" {
		args = append(args, "-v", code)
	}
	return append(args, text)
}

// wordsPerMinute scales the usual 175 wpm default by rate.
func wordsPerMinute(rate float64) int {
	if rate <= 0 {
		rate = 1
	}
	return int(175 * rate)
}

// languagePrefix turns "fr-FR" into "fr".
func languagePrefix(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return lang
}

func candidates(goos string) []backend {
	switch goos {
	case "darwin":
		return []backend{sayBackend}
	case "linux", "freebsd", "openbsd":
		return []backend{espeakNGBackend, espeakBackend, spdBackend}
	case "windows":
		return []backend{powershellBackend}
	default:
		return []backend{espeakNGBackend, espeakBackend}
	}
}

// System speaks through a platform command such as say or espeak-ng.
type System struct {
	path    string
	backend backend
}

// NewSystem picks the first speech command available on this platform.
func NewSystem() (*System, error) {
	return newSystem(runtime.GOOS)
}

func newSystem(goos string) (*System, error) {
	for _, b := range candidates(goos) {
		if path, err := lookPath(b.name); err == nil {
			return &System{path: path, backend: b}, nil
		}
	}
	return nil, fmt.Errorf("text to speech: %w", ErrUnavailable)
}

// Name returns the command in use.
func (s *System) Name() string { return s.backend.name }

// Speak implements lesson.TextToSpeech. It blocks until the command exits.
func (s *System) Speak(ctx context.Context, text, lang string, rate float64) error {
	cmd := exec.CommandContext(ctx, s.path, s.backend.args(text, lang, rate)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("running %s: %w: %s", s.backend.name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
