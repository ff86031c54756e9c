// Package views contains the TUI screens.
package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/llm"
	"github.com/f3rmion/abc/internal/samples"
)

// SampleStore is the part of samples.Store the views use.
type SampleStore interface {
	Save(ctx context.Context, s *samples.Sample) error
	List(ctx context.Context, letter rune) ([]samples.Sample, error)
	Delete(ctx context.Context, id string) error
	Counts(ctx context.Context) (map[rune]int, error)
	Import(ctx context.Context, list []samples.Sample) (int, error)
}

// HintFunc asks for a tracing hint.
type HintFunc func(ctx context.Context, req llm.HintRequest) (string, error)

// Deps are the collaborators shared by every view. Samples and Hints may
// be nil.
type Deps struct {
	Config    *config.Config
	ConfigDir string
	Speech    lesson.TextToSpeech
	Tones     lesson.ToneSynthesizer
	Samples   SampleStore
	Hints     HintFunc
}

// LetterSelectedMsg asks the trace view to jump to a letter.
type LetterSelectedMsg struct {
	Letter rune
}

// SettingsChangedMsg is sent after the settings view edits the config.
type SettingsChangedMsg struct{}

// SampleSavedMsg reports the result of saving a stroke.
type SampleSavedMsg struct {
	Sample samples.Sample
	Err    error
}

// SamplesImportedMsg reports the result of importing an export file.
type SamplesImportedMsg struct {
	Path  string
	Count int
	Err   error
}

type clearStatusMsg struct {
	view string
	seq  int
}

func clearStatusAfter(view string, seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{view: view, seq: seq}
	})
}

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FF6B6B")).
	Bold(true)

func errorText(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}
