package views

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/f3rmion/abc/internal/samples"
	"github.com/f3rmion/abc/internal/tui/components"
)

// Samples view styles
var (
	samplesTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	samplesRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	samplesSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436"))

	samplesMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	samplesMatchStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8e6cf"))

	samplesMissStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6B6B"))

	samplesPreviewStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80"))

	samplesSearchStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#ffe66d")).
				Padding(0, 1)

	samplesHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

const (
	previewCols = 24
	previewRows = 12
)

type samplesLoadedMsg struct {
	list []samples.Sample
	err  error
}

type sampleDeletedMsg struct {
	id  string
	err error
}

// SamplesModel browses the recorded strokes.
type SamplesModel struct {
	deps   Deps
	filter textinput.Model

	picker *FilePickerModel

	list      []samples.Sample
	selected  int
	scrollY   int
	loading   bool
	err       error
	status    string
	statusSeq int

	width  int
	height int
}

// NewSamplesModel creates the samples view.
func NewSamplesModel(deps Deps) SamplesModel {
	ti := textinput.New()
	ti.Placeholder = "letter"
	ti.CharLimit = 1
	ti.Width = 6
	return SamplesModel{deps: deps, filter: ti}
}

// Init loads the samples.
func (m SamplesModel) Init() tea.Cmd { return m.reload() }

// SetSize updates the view dimensions.
func (m *SamplesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.picker != nil {
		m.picker.SetSize(width, height)
	}
}

// Capturing reports whether the filter or the import picker wants every key.
func (m SamplesModel) Capturing() bool { return m.filter.Focused() || m.picker != nil }

// importFile loads an export written by 'abc samples export'.
func (m SamplesModel) importFile(path string) tea.Cmd {
	store := m.deps.Samples
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return SamplesImportedMsg{Path: path, Err: fmt.Errorf("reading export: %w", err)}
		}
		var list []samples.Sample
		if err := json.Unmarshal(data, &list); err != nil {
			return SamplesImportedMsg{Path: path, Err: fmt.Errorf("parsing export: %w", err)}
		}
		n, err := store.Import(context.Background(), list)
		return SamplesImportedMsg{Path: path, Count: n, Err: err}
	}
}

func (m SamplesModel) filterLetter() rune {
	l, err := samples.ParseLetter(m.filter.Value())
	if err != nil {
		return 0
	}
	return l
}

func (m SamplesModel) reload() tea.Cmd {
	if m.deps.Samples == nil {
		return nil
	}
	store, letter := m.deps.Samples, m.filterLetter()
	return func() tea.Msg {
		list, err := store.List(context.Background(), letter)
		return samplesLoadedMsg{list: list, err: err}
	}
}

// Update handles messages.
func (m SamplesModel) Update(msg tea.Msg) (SamplesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case samplesLoadedMsg:
		m.loading = false
		m.list, m.err = msg.list, msg.err
		m.selected = min(m.selected, max(len(m.list)-1, 0))
		return m, nil

	case sampleDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.reload()

	case SampleSavedMsg:
		return m, m.reload()

	case FileSelectedMsg:
		if m.picker == nil {
			return m, nil
		}
		m.picker = nil
		m.loading = true
		return m, m.importFile(msg.Path)

	case FilePickerCancelledMsg:
		m.picker = nil
		return m, nil

	case SamplesImportedMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Imported %d samples from %s", msg.Count, filepath.Base(msg.Path))
		m.statusSeq++
		return m, tea.Batch(m.reload(), clearStatusAfter("samples", m.statusSeq, 4*time.Second))

	case clearStatusMsg:
		if msg.view == "samples" && msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.picker != nil {
			var cmd tea.Cmd
			*m.picker, cmd = m.picker.Update(msg)
			return m, cmd
		}
		if m.filter.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.filter.Blur()
				m.selected, m.scrollY = 0, 0
				m.loading = true
				return m, m.reload()
			}
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "/":
			m.filter.Focus()
			return m, textinput.Blink
		case "j", "down":
			if m.selected < len(m.list)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "g":
			m.selected = 0
		case "G":
			m.selected = max(len(m.list)-1, 0)
		case "r":
			m.loading = true
			return m, m.reload()
		case "i":
			if m.deps.Samples == nil {
				return m, nil
			}
			p := NewFilePickerModel("Import samples (.json)", m.deps.ConfigDir, ".json")
			p.SetSize(m.width, m.height)
			m.picker = &p
			return m, nil
		case "d":
			if m.deps.Samples == nil || len(m.list) == 0 {
				return m, nil
			}
			store, id := m.deps.Samples, m.list[m.selected].ID
			return m, func() tea.Msg {
				return sampleDeletedMsg{id: id, err: store.Delete(context.Background(), id)}
			}
		}
		m.keepVisible()
	}
	return m, nil
}

func (m SamplesModel) visibleRows() int {
	return max(m.height-8, 5)
}

func (m *SamplesModel) keepVisible() {
	rows := m.visibleRows()
	if m.selected < m.scrollY {
		m.scrollY = m.selected
	}
	if m.selected >= m.scrollY+rows {
		m.scrollY = m.selected - rows + 1
	}
}

// View renders the samples view.
func (m SamplesModel) View() string {
	if m.picker != nil {
		return m.picker.View()
	}

	var b strings.Builder
	b.WriteString(samplesTitleStyle.Render("Samples"))
	b.WriteString("\n")

	if m.deps.Samples == nil {
		b.WriteString(samplesMutedStyle.Render("Sample store unavailable. Run with --db to record strokes."))
		return b.String()
	}

	b.WriteString(samplesSearchStyle.Render("Filter: " + m.filter.View()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorText(m.err) + "\n")
	}
	if m.loading {
		b.WriteString(samplesMutedStyle.Render("Loading...") + "\n")
	}
	if m.status != "" {
		b.WriteString(samplesMatchStyle.Render(m.status) + "\n")
	}
	if len(m.list) == 0 {
		b.WriteString(samplesMutedStyle.Render("No samples yet. Press s on the trace view to save one."))
		b.WriteString("\n")
		b.WriteString(samplesHelpStyle.Render("/: filter by letter • i: import • r: refresh"))
		return b.String()
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), "  ", m.renderPreview()))
	b.WriteString("\n")
	b.WriteString(samplesHelpStyle.Render(fmt.Sprintf("%d samples • j/k: move • /: filter • d: delete • i: import • r: refresh", len(m.list))))
	return b.String()
}

func (m SamplesModel) renderList() string {
	var lines []string
	end := min(m.scrollY+m.visibleRows(), len(m.list))
	for i := m.scrollY; i < end; i++ {
		s := m.list[i]
		verdict := samplesMissStyle.Render("✗")
		if s.Matched {
			verdict = samplesMatchStyle.Render("✓")
		}
		line := fmt.Sprintf("%c  %3d pts  %-14s %s", s.Letter, len(s.Stroke), humanize.Time(s.CreatedAt), s.Source)
		style := samplesRowStyle
		if i == m.selected {
			style = samplesSelectedStyle
		}
		lines = append(lines, verdict+" "+style.Render(line))
	}
	return strings.Join(lines, "\n")
}

func (m SamplesModel) renderPreview() string {
	s := m.list[m.selected]
	art, err := components.StrokePreview(s.Stroke, previewCols, previewRows, components.PreviewInk, components.PreviewPaper)
	if err != nil {
		return errorText(err)
	}
	return samplesPreviewStyle.Render(strings.TrimRight(art, "\n"))
}
