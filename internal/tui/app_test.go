package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/tui/views"
)

func newTestApp(t *testing.T) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.Voice.Language = "en"
	cfg.Voice.AutoSpeakNewLetter = false
	m := NewApp(views.Deps{Config: cfg, ConfigDir: t.TempDir()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func press(m AppModel, s string) (AppModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch s {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestAppSwitchesViews(t *testing.T) {
	m := newTestApp(t)
	assert.Equal(t, ViewTrace, m.currentView)

	for key, want := range map[string]ViewType{"2": ViewAlphabet, "3": ViewSamples, "4": ViewSettings, "1": ViewTrace} {
		m, _ = press(m, key)
		assert.Equal(t, want, m.currentView, "key %s", key)
	}
}

func TestAppSidebarNavigation(t *testing.T) {
	m := newTestApp(t)

	m, _ = press(m, "tab")
	require.True(t, m.sidebarActive)
	m, _ = press(m, "j")
	m, _ = press(m, "j")
	m, _ = press(m, "enter")
	assert.False(t, m.sidebarActive)
	assert.Equal(t, ViewSamples, m.currentView)

	m, _ = press(m, "esc")
	assert.True(t, m.sidebarActive)
	_, cmd := press(m, "esc")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppHelpOverlay(t *testing.T) {
	m := newTestApp(t)
	m, _ = press(m, "?")
	assert.Contains(t, m.View(), "Trace View")
	m, _ = press(m, "x")
	assert.False(t, m.showHelp)
}

func TestAppLetterSelected(t *testing.T) {
	m := newTestApp(t)
	m, _ = press(m, "2")

	next, _ := m.Update(views.LetterSelectedMsg{Letter: 'K'})
	m = next.(AppModel)
	assert.Equal(t, ViewTrace, m.currentView)
	assert.Equal(t, 'K', m.traceView.Controller().Letter())
}

func TestAppSettingsChangeReconfiguresTrace(t *testing.T) {
	m := newTestApp(t)
	m.deps.Config.Gesture.MinTracePoints = 42

	next, _ := m.Update(views.SettingsChangedMsg{})
	m = next.(AppModel)
	assert.Equal(t, 42, m.traceView.Controller().MinPoints())
}

func TestAppMouseOnlyReachesTrace(t *testing.T) {
	m := newTestApp(t)
	m, _ = press(m, "2")

	click := tea.MouseMsg{X: 30, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(click)
	m = next.(AppModel)
	assert.False(t, m.traceView.Controller().Drawing())

	m, _ = press(m, "1")
	next, _ = m.Update(click)
	m = next.(AppModel)
	assert.True(t, m.traceView.Controller().Drawing())
}

func TestAppCapturingSkipsGlobalKeys(t *testing.T) {
	m := newTestApp(t)
	m, _ = press(m, "3")
	m, _ = press(m, "/")
	// Without a store the filter still focuses.
	require.True(t, m.samplesView.Capturing())

	m, _ = press(m, "4")
	assert.Equal(t, ViewSamples, m.currentView)
	assert.True(t, m.samplesView.Capturing())
}

func TestAppView(t *testing.T) {
	m := newTestApp(t)
	view := m.View()
	assert.Contains(t, view, "A B C")
	assert.Contains(t, view, "1. Trace")
	assert.Contains(t, view, "4. Settings")
}
