package views

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FileSelectedMsg is sent when a file is picked.
type FileSelectedMsg struct {
	Path string
}

// FilePickerCancelledMsg is sent when the picker is closed without a file.
type FilePickerCancelledMsg struct{}

// File picker styles
var (
	fpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	fpPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	fpDirStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4")).
			Bold(true)

	fpFileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	fpSelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436"))

	fpHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)
)

// FileEntry is one row of the picker.
type FileEntry struct {
	Name  string
	IsDir bool
	Path  string
}

// FilePickerModel browses directories for files with given extensions.
type FilePickerModel struct {
	title      string
	dir        string
	extensions []string

	entries  []FileEntry
	selected int
	offset   int
	err      error

	width  int
	height int
}

// NewFilePickerModel opens a picker in dir, listing only files with one of
// the extensions. No extensions lists every file.
func NewFilePickerModel(title, dir string, extensions ...string) FilePickerModel {
	if _, err := os.Stat(dir); err != nil {
		dir, _ = os.UserHomeDir()
	}
	if dir == "" {
		dir = string(filepath.Separator)
	}
	m := FilePickerModel{title: title, dir: dir, extensions: extensions}
	m.load()
	return m
}

// SetSize updates the view dimensions.
func (m *FilePickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Dir returns the directory being listed.
func (m FilePickerModel) Dir() string { return m.dir }

// Entries returns the listed rows, parent first, then directories, then files.
func (m FilePickerModel) Entries() []FileEntry { return m.entries }

func (m *FilePickerModel) load() {
	m.entries, m.selected, m.offset, m.err = nil, 0, 0, nil

	list, err := os.ReadDir(m.dir)
	if err != nil {
		m.err = err
		return
	}

	if parent := filepath.Dir(m.dir); parent != m.dir {
		m.entries = append(m.entries, FileEntry{Name: "..", IsDir: true, Path: parent})
	}

	var dirs, files []FileEntry
	for _, e := range list {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fe := FileEntry{Name: e.Name(), IsDir: e.IsDir(), Path: filepath.Join(m.dir, e.Name())}
		switch {
		case e.IsDir():
			dirs = append(dirs, fe)
		case m.accepts(e.Name()):
			files = append(files, fe)
		}
	}

	byName := func(a, b FileEntry) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)

	m.entries = append(m.entries, dirs...)
	m.entries = append(m.entries, files...)
}

func (m FilePickerModel) accepts(name string) bool {
	if len(m.extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	return slices.ContainsFunc(m.extensions, func(e string) bool {
		return strings.ToLower(e) == ext
	})
}

func (m *FilePickerModel) chdir(dir string) {
	m.dir = dir
	m.load()
}

// Update handles messages.
func (m FilePickerModel) Update(msg tea.Msg) (FilePickerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "j", "down":
		m.selected = min(m.selected+1, max(len(m.entries)-1, 0))
	case "k", "up":
		m.selected = max(m.selected-1, 0)
	case "g":
		m.selected = 0
	case "G":
		m.selected = max(len(m.entries)-1, 0)
	case "ctrl+d":
		m.selected = min(m.selected+m.visibleRows()/2, max(len(m.entries)-1, 0))
	case "ctrl+u":
		m.selected = max(m.selected-m.visibleRows()/2, 0)
	case "enter", "l", "right":
		if m.selected >= len(m.entries) {
			return m, nil
		}
		entry := m.entries[m.selected]
		if entry.IsDir {
			m.chdir(entry.Path)
			return m, nil
		}
		return m, func() tea.Msg { return FileSelectedMsg{Path: entry.Path} }
	case "backspace", "h", "left":
		if parent := filepath.Dir(m.dir); parent != m.dir {
			m.chdir(parent)
		}
	case "~":
		if home, _ := os.UserHomeDir(); home != "" {
			m.chdir(home)
		}
	case "esc", "q":
		return m, func() tea.Msg { return FilePickerCancelledMsg{} }
	}
	m.scroll()
	return m, nil
}

func (m FilePickerModel) visibleRows() int {
	return max(m.height-8, 5)
}

func (m *FilePickerModel) scroll() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
}

// View renders the picker.
func (m FilePickerModel) View() string {
	var b strings.Builder
	rule := lipgloss.NewStyle().Foreground(lipgloss.Color("#3d5a80")).
		Render(strings.Repeat("─", max(min(m.width-4, 60), 0)))

	b.WriteString(fpTitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(fpPathStyle.Render(m.dir))
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(errorText(m.err) + "\n")
	}
	b.WriteString(rule + "\n")

	if len(m.entries) == 0 {
		b.WriteString(fpHelpStyle.Render("  (empty)") + "\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.entries))
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		prefix, style := "  ", fpFileStyle
		if e.IsDir {
			style = fpDirStyle
		}
		if i == m.selected {
			prefix, style = "> ", fpSelectedStyle
		}
		name := e.Name
		if e.IsDir {
			name += string(filepath.Separator)
		}
		b.WriteString(prefix + style.Render(name) + "\n")
	}
	if len(m.entries) > m.visibleRows() {
		b.WriteString(fpPathStyle.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.entries))) + "\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString(fpHelpStyle.Render("enter: open • backspace: parent • ~: home • esc: cancel"))
	return b.String()
}
