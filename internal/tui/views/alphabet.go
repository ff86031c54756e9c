package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/lesson"
	"github.com/f3rmion/abc/internal/tui/bigchar"
	"github.com/f3rmion/abc/internal/tui/components"
)

// Alphabet view styles
var (
	alphabetTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF6B6B")).
				MarginBottom(1)

	alphabetCellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f1faee")).
				Padding(0, 1)

	alphabetDedicatedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4")).
				Padding(0, 1)

	alphabetSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffe66d")).
				Background(lipgloss.Color("#2d3436")).
				Padding(0, 1)

	alphabetCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#3d5a80")).
				Padding(1, 2)

	alphabetLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a8dadc")).
				Bold(true).
				Width(16)

	alphabetBigStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffe66d"))

	alphabetHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				MarginTop(1)
)

const alphabetPerRow = 9

type countsMsg struct {
	counts map[rune]int
	err    error
}

// AlphabetModel lists the letters with their pronunciation and sample counts.
type AlphabetModel struct {
	deps    Deps
	letters []rune
	cursor  int
	counts  map[rune]int
	err     error

	width  int
	height int
}

// NewAlphabetModel creates the alphabet view.
func NewAlphabetModel(deps Deps) AlphabetModel {
	return AlphabetModel{deps: deps, letters: lesson.Letters()}
}

// Init loads the sample counts.
func (m AlphabetModel) Init() tea.Cmd { return m.loadCounts() }

// SetSize updates the view dimensions.
func (m *AlphabetModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the highlighted letter.
func (m AlphabetModel) Selected() rune { return m.letters[m.cursor] }

func (m AlphabetModel) loadCounts() tea.Cmd {
	if m.deps.Samples == nil {
		return nil
	}
	store := m.deps.Samples
	return func() tea.Msg {
		counts, err := store.Counts(context.Background())
		return countsMsg{counts: counts, err: err}
	}
}

// Update handles messages.
func (m AlphabetModel) Update(msg tea.Msg) (AlphabetModel, tea.Cmd) {
	switch msg := msg.(type) {
	case countsMsg:
		m.counts, m.err = msg.counts, msg.err
		return m, nil

	case SampleSavedMsg, SamplesImportedMsg:
		return m, m.loadCounts()

	case tea.KeyMsg:
		n := len(m.letters)
		switch msg.String() {
		case "right", "l":
			m.cursor = (m.cursor + 1) % n
		case "left", "h":
			m.cursor = (m.cursor - 1 + n) % n
		case "down", "j":
			if m.cursor+alphabetPerRow < n {
				m.cursor += alphabetPerRow
			}
		case "up", "k":
			if m.cursor-alphabetPerRow >= 0 {
				m.cursor -= alphabetPerRow
			}
		case "r":
			return m, m.loadCounts()
		case "enter":
			letter := m.Selected()
			return m, func() tea.Msg { return LetterSelectedMsg{Letter: letter} }
		default:
			// Typing a letter jumps to it.
			if r := []rune(msg.String()); len(r) == 1 && r[0] >= 'a' && r[0] <= 'z' {
				m.cursor = int(r[0] - 'a')
			}
		}
	}
	return m, nil
}

// View renders the alphabet view.
func (m AlphabetModel) View() string {
	var b strings.Builder
	b.WriteString(alphabetTitleStyle.Render("Alphabet"))
	b.WriteString("\n")

	var rows []string
	for start := 0; start < len(m.letters); start += alphabetPerRow {
		var cells []string
		for i := start; i < min(start+alphabetPerRow, len(m.letters)); i++ {
			l := m.letters[i]
			style := alphabetCellStyle
			if _, ok := gesture.ClassifierFor(l); ok {
				style = alphabetDedicatedStyle
			}
			if i == m.cursor {
				style = alphabetSelectedStyle
			}
			cells = append(cells, style.Render(string(l)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n\n")

	info := components.DescribeLetter(m.deps.Config.Language(), m.Selected(), m.counts)
	big := alphabetBigStyle.Render(bigchar.RenderBlock(info.Letter, 16, 8))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, alphabetCardStyle.Render(big), "  ", alphabetCardStyle.Render(m.renderInfo(info))))

	if m.err != nil {
		b.WriteString("\n" + errorText(m.err))
	}
	b.WriteString("\n")
	b.WriteString(alphabetHelpStyle.Render("arrows/hjkl: move • a-z: jump • enter: trace • r: refresh counts"))
	return b.String()
}

func (m AlphabetModel) renderInfo(info components.LetterInfo) string {
	row := func(label, value string) string {
		return alphabetLabelStyle.Render(label) + value + "\n"
	}
	var b strings.Builder
	b.WriteString(row("Letter", string(info.Letter)))
	b.WriteString(row("Pronunciation", info.Pronunciation))
	if info.Example != "" {
		b.WriteString(row("Example", info.Example))
	}
	b.WriteString(row("Recognized by", info.Recognition()))
	if m.deps.Samples != nil {
		b.WriteString(row("Samples", fmt.Sprint(info.Samples)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
