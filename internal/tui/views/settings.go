package views

import (
	"fmt"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/abc/internal/config"
	"github.com/f3rmion/abc/internal/lesson"
)

// Settings view styles
var (
	settingsTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	settingsPathStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Italic(true).
				MarginBottom(1)

	settingsTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	settingsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 2)

	settingsLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#a8dadc")).
				Width(24)

	settingsRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee"))

	settingsMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	settingsSavedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf")).
				Bold(true)

	settingsHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

var settingsTabs = []string{"Voice", "Gesture", "Letters"}

// SettingsModel shows and edits the settings.
type SettingsModel struct {
	deps Deps

	tab     int
	scrollY int

	status    string
	statusSeq int

	width  int
	height int
}

// NewSettingsModel creates a new settings model.
func NewSettingsModel(deps Deps) SettingsModel {
	return SettingsModel{deps: deps}
}

// SetSize updates the view dimensions.
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func changed() tea.Msg { return SettingsChangedMsg{} }

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	cfg := m.deps.Config
	switch msg := msg.(type) {
	case clearStatusMsg:
		if msg.view == "settings" && msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "right", "l":
			m.tab = (m.tab + 1) % len(settingsTabs)
			m.scrollY = 0
			return m, nil
		case "shift+tab", "left", "h":
			m.tab = (m.tab - 1 + len(settingsTabs)) % len(settingsTabs)
			m.scrollY = 0
			return m, nil
		case "j", "down":
			m.scrollY++
			return m, nil
		case "k", "up":
			if m.scrollY > 0 {
				m.scrollY--
			}
			return m, nil
		case "w":
			return m.save()
		}

		switch m.tab {
		case 0:
			switch msg.String() {
			case "v":
				cfg.Voice.Enabled = !cfg.Voice.Enabled
			case "a":
				cfg.Voice.AutoSpeakNewLetter = !cfg.Voice.AutoSpeakNewLetter
			case "g":
				m.cycleLanguage()
			case "+", "=":
				cfg.Voice.Rate = min(cfg.Voice.Rate+0.1, 4)
			case "-":
				cfg.Voice.Rate = max(cfg.Voice.Rate-0.1, 0.1)
			default:
				return m, nil
			}
			return m, changed
		case 1:
			switch msg.String() {
			case "e":
				cfg.Gesture.Enabled = !cfg.Gesture.Enabled
			case "+", "=":
				cfg.Gesture.MinTracePoints++
			case "-":
				cfg.Gesture.MinTracePoints = max(cfg.Gesture.MinTracePoints-1, 1)
			case "]":
				cfg.CelebrationSeconds++
			case "[":
				cfg.CelebrationSeconds = max(cfg.CelebrationSeconds-1, 0)
			default:
				return m, nil
			}
			return m, changed
		}
	}
	return m, nil
}

// cycleLanguage switches to the next configured language.
func (m *SettingsModel) cycleLanguage() {
	cfg := m.deps.Config
	codes := cfg.LanguageCodes()
	if len(codes) == 0 {
		return
	}
	i := slices.Index(codes, cfg.Voice.Language)
	cfg.Voice.Language = codes[(i+1)%len(codes)]
	if !strings.HasPrefix(cfg.Voice.Locale, cfg.Voice.Language) {
		cfg.Voice.Locale = cfg.Voice.Language
	}
}

func (m SettingsModel) save() (SettingsModel, tea.Cmd) {
	if err := m.deps.Config.Validate(); err != nil {
		m.status = "Not saved: " + err.Error()
	} else if err := config.Save(m.deps.ConfigDir, m.deps.Config); err != nil {
		m.status = "Save failed: " + err.Error()
	} else {
		m.status = "Saved to " + m.deps.ConfigDir
	}
	m.statusSeq++
	return m, clearStatusAfter("settings", m.statusSeq, 3*time.Second)
}

// View renders the settings view.
func (m SettingsModel) View() string {
	var b strings.Builder

	b.WriteString(settingsTitleStyle.Render("Settings"))
	b.WriteString("\n")
	b.WriteString(settingsPathStyle.Render("Config: " + m.deps.ConfigDir))
	b.WriteString("\n\n")

	var tabViews []string
	for i, t := range settingsTabs {
		style := settingsTabStyle
		if i == m.tab {
			style = settingsTabActiveStyle
		}
		tabViews = append(tabViews, style.Render(t))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabViews...))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).Render(strings.Repeat("─", max(min(m.width-4, 60), 0))))
	b.WriteString("\n\n")

	var help string
	switch m.tab {
	case 0:
		b.WriteString(m.renderVoice())
		help = "v: voice • a: auto speak • g: language • +/-: rate"
	case 1:
		b.WriteString(m.renderGesture())
		help = "e: tracing • +/-: min points • [/]: celebration"
	case 2:
		b.WriteString(m.renderLetters())
		help = "j/k: scroll"
	}

	if m.status != "" {
		b.WriteString("\n\n" + settingsSavedStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(settingsHelpStyle.Render("tab/←→: switch tabs • " + help + " • w: write settings"))
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func settingsRow(label, value string) string {
	return settingsLabelStyle.Render(label) + settingsRowStyle.Render(value) + "\n"
}

func (m SettingsModel) renderVoice() string {
	cfg := m.deps.Config
	var b strings.Builder
	b.WriteString(settingsRow("Voice", onOff(cfg.Voice.Enabled)))
	b.WriteString(settingsRow("Language", fmt.Sprintf("%s (%s)", cfg.Language().Name, cfg.Voice.Language)))
	b.WriteString(settingsRow("Speech locale", cfg.Voice.Locale))
	b.WriteString(settingsRow("Rate", fmt.Sprintf("%.1f", cfg.Voice.Rate)))
	b.WriteString(settingsRow("Auto speak new letter", onOff(cfg.Voice.AutoSpeakNewLetter)))
	if m.deps.Speech == nil {
		b.WriteString(settingsMutedStyle.Render("No speech command found; voice is silent."))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m SettingsModel) renderGesture() string {
	cfg := m.deps.Config
	var b strings.Builder
	b.WriteString(settingsRow("Tracing", onOff(cfg.Gesture.Enabled)))
	b.WriteString(settingsRow("Min trace points", fmt.Sprint(cfg.Gesture.MinTracePoints)))
	b.WriteString(settingsRow("Celebration", cfg.CelebrationDuration().String()))
	return strings.TrimSuffix(b.String(), "\n")
}

func (m SettingsModel) renderLetters() string {
	lang := m.deps.Config.Language()
	letters := lesson.Letters()

	visible := max(m.height-12, 5)
	start := min(m.scrollY, max(len(letters)-visible, 0))
	end := min(start+visible, len(letters))

	var b strings.Builder
	b.WriteString(settingsMutedStyle.Render(fmt.Sprintf("%-4s %-16s %s", "", "Pronunciation", "Example")))
	b.WriteString("\n")
	for _, l := range letters[start:end] {
		info := lang.Info(l)
		b.WriteString(settingsRowStyle.Render(fmt.Sprintf("%-4c %-16s %s", l, info.Pronunciation, info.Example)))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
