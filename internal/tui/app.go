package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/abc/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewTrace ViewType = iota
	ViewAlphabet
	ViewSamples
	ViewSettings
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	View     ViewType
	Shortcut string
}

// ViewSwitchMsg requests a view change
type ViewSwitchMsg struct {
	View ViewType
}

// AppModel is the main TUI model
type AppModel struct {
	deps views.Deps

	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	traceView    views.TraceModel
	alphabetView views.AlphabetModel
	samplesView  views.SamplesModel
	settingsView views.SettingsModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(deps views.Deps) AppModel {
	menuItems := []MenuItem{
		{Label: "Trace", View: ViewTrace, Shortcut: "1"},
		{Label: "Alphabet", View: ViewAlphabet, Shortcut: "2"},
		{Label: "Samples", View: ViewSamples, Shortcut: "3"},
		{Label: "Settings", View: ViewSettings, Shortcut: "4"},
	}

	return AppModel{
		deps:         deps,
		sidebarWidth: 18,
		currentView:  ViewTrace,
		menuItems:    menuItems,

		traceView:    views.NewTraceModel(deps),
		alphabetView: views.NewAlphabetModel(deps),
		samplesView:  views.NewSamplesModel(deps),
		settingsView: views.NewSettingsModel(deps),
	}
}

// Run starts the TUI with mouse tracking and blocks until it exits.
func Run(deps views.Deps, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	p := tea.NewProgram(NewApp(deps), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.traceView.Init(),
		m.alphabetView.Init(),
		m.samplesView.Init(),
	)
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	m.sidebarActive = false
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
}

// capturing reports whether the active view wants every key.
func (m AppModel) capturing() bool {
	return m.currentView == ViewSamples && m.samplesView.Capturing()
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Help overlay - any key closes it
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if !m.capturing() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "?":
				m.showHelp = true
				return m, nil
			case "esc":
				// Esc goes back to sidebar or quits
				if m.sidebarActive {
					return m, tea.Quit
				}
				m.sidebarActive = true
				return m, nil
			case "1", "2", "3", "4":
				m.switchTo(ViewType(msg.String()[0] - '1'))
				return m, nil
			case "tab":
				m.sidebarActive = !m.sidebarActive
				return m, nil
			}
		}

		// Sidebar navigation when active
		if m.sidebarActive {
			switch msg.String() {
			case "j", "down":
				if m.selectedMenu < len(m.menuItems)-1 {
					m.selectedMenu++
				}
			case "k", "up":
				if m.selectedMenu > 0 {
					m.selectedMenu--
				}
			case "enter", "l", "right":
				m.switchTo(m.menuItems[m.selectedMenu].View)
			}
			return m, nil
		}

	case tea.MouseMsg:
		// Only the trace canvas takes pointer input.
		if m.showHelp || m.sidebarActive || m.currentView != ViewTrace {
			return m, nil
		}
		var cmd tea.Cmd
		m.traceView, cmd = m.traceView.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Inner size of the content area, inside its padding.
		contentWidth := m.width - m.sidebarWidth - 4 - 2*contentPadLeft
		contentHeight := m.height - 2 - 2*contentPadTop

		m.traceView.SetSize(contentWidth, contentHeight)
		m.alphabetView.SetSize(contentWidth, contentHeight)
		m.samplesView.SetSize(contentWidth, contentHeight)
		m.settingsView.SetSize(contentWidth, contentHeight)

		// The sidebar is sidebarWidth wide plus its right border.
		m.traceView.SetOrigin(m.sidebarWidth+1+contentPadLeft, contentPadTop)
		return m, nil

	case ViewSwitchMsg:
		m.switchTo(msg.View)
		return m, nil

	case views.LetterSelectedMsg:
		cmd := m.traceView.Select(msg.Letter)
		m.switchTo(ViewTrace)
		return m, cmd

	case views.SettingsChangedMsg:
		m.traceView.Reconfigure()
		return m, nil

	case views.SampleSavedMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.traceView, cmd = m.traceView.Update(msg)
		cmds = append(cmds, cmd)
		m.alphabetView, cmd = m.alphabetView.Update(msg)
		cmds = append(cmds, cmd)
		m.samplesView, cmd = m.samplesView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	default:
		// Async results go to every view; each ignores what is not its own.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.traceView, cmd = m.traceView.Update(msg)
		cmds = append(cmds, cmd)
		m.alphabetView, cmd = m.alphabetView.Update(msg)
		cmds = append(cmds, cmd)
		m.samplesView, cmd = m.samplesView.Update(msg)
		cmds = append(cmds, cmd)
		m.settingsView, cmd = m.settingsView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Keys go to the active view.
	var cmd tea.Cmd
	switch m.currentView {
	case ViewTrace:
		m.traceView, cmd = m.traceView.Update(msg)
	case ViewAlphabet:
		m.alphabetView, cmd = m.alphabetView.Update(msg)
	case ViewSamples:
		m.samplesView, cmd = m.samplesView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewTrace:
		content = m.traceView.View()
	case ViewAlphabet:
		content = m.alphabetView.View()
	case ViewSamples:
		content = m.samplesView.View()
	case ViewSettings:
		content = m.settingsView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  A B C  "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Indicate current view but not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	// Current letter under the menu.
	items = append(items, "")
	letter := SidebarLetterStyle.Render(string(m.traceView.Controller().Letter()))
	items = append(items, letter)

	usedHeight := len(items) + 6 // borders, letter padding and help
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F1FAEE"))

	row := func(k, d string) string {
		return keyStyle.Render(k) + descStyle.Render(d) + "\n"
	}

	helpText := titleStyle.Render("abc - trace the alphabet") + "\n\n"

	helpText += sectionStyle.Render("Global Keys") + "\n"
	helpText += row("1-4", "Switch views")
	helpText += row("tab", "Toggle sidebar focus")
	helpText += row("?", "Show this help")
	helpText += row("q", "Quit")

	helpText += sectionStyle.Render("Trace View") + "\n"
	helpText += row("mouse", "Draw the letter in one stroke")
	helpText += row("space", "Say the letter")
	helpText += row("n/p ←/→", "Next/previous letter")
	helpText += row("t", "Toggle tracing")
	helpText += row("c", "Clear the stroke")
	helpText += row("s", "Save the last stroke")
	helpText += row("y", "Copy the last stroke")
	helpText += row("h", "Ask for a hint")

	helpText += sectionStyle.Render("Alphabet View") + "\n"
	helpText += row("hjkl", "Move")
	helpText += row("a-z", "Jump to a letter")
	helpText += row("enter", "Trace the letter")

	helpText += sectionStyle.Render("Samples View") + "\n"
	helpText += row("/", "Filter by letter")
	helpText += row("d", "Delete sample")
	helpText += row("i", "Import a JSON export")

	helpText += sectionStyle.Render("Settings View") + "\n"
	helpText += row("←/→", "Switch tabs")
	helpText += row("w", "Write settings.yaml")

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(1, 2).
		Width(50)

	helpBox := boxStyle.Render(helpText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBox)
}
